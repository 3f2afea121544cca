package identity

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Claim type names. The long-form URI is the primary carrier of the identity
// payload; the short legacy name is still honored for tokens minted by older
// issuers.
const (
	ClaimTypeUserData       = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/userdata"
	ClaimTypeUserDataLegacy = "user_data"
	ClaimTypeName           = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	ClaimTypeNameLegacy     = "name"
	ClaimTypeRole           = "role"
)

// AnonymousUsername is returned when no name claim is present.
const AnonymousUsername = "unauthenticated user"

// ClaimSet is the string claims attached to the current caller, keyed by
// claim type. Values are untrusted input.
type ClaimSet map[string]string

func (c ClaimSet) lookup(primary, legacy string) (string, bool) {
	if v, ok := c[primary]; ok && v != "" {
		return v, true
	}
	if v, ok := c[legacy]; ok && v != "" {
		return v, true
	}
	return "", false
}

// userDataPayload is the JSON structure carried inside the user-data claim.
type userDataPayload struct {
	UserID     string `json:"userId"`
	CustomerID string `json:"customerId"`
}

func decodeUserData(claims ClaimSet) *userDataPayload {
	raw, ok := claims.lookup(ClaimTypeUserData, ClaimTypeUserDataLegacy)
	if !ok {
		return nil
	}
	var payload userDataPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil
	}
	return &payload
}

// UserID extracts the caller's user id from the user-data claim. Missing
// claims, malformed JSON and malformed UUIDs all degrade to nil.
func UserID(claims ClaimSet) *uuid.UUID {
	payload := decodeUserData(claims)
	if payload == nil {
		return nil
	}
	return parseUUID(payload.UserID)
}

// CustomerID extracts the caller's customer (tenant) id from the user-data
// claim, degrading to nil on any malformed input.
func CustomerID(claims ClaimSet) *uuid.UUID {
	payload := decodeUserData(claims)
	if payload == nil {
		return nil
	}
	return parseUUID(payload.CustomerID)
}

// Username resolves the caller's display name from the name claim.
func Username(claims ClaimSet) string {
	if v, ok := claims.lookup(ClaimTypeName, ClaimTypeNameLegacy); ok {
		return v
	}
	return AnonymousUsername
}

func parseUUID(value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &parsed
}
