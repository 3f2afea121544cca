package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/directory-service/internal/domain"
)

// EffectiveIdentity is the resolved (userId, customerId) pair used to scope
// queries and stamp writes for the current operation. A nil field means the
// id could not be resolved from any source; callers that require tenant
// isolation must reject the operation in that case.
type EffectiveIdentity struct {
	UserID      *uuid.UUID
	CustomerID  *uuid.UUID
	DisplayName string
	CanOverride bool
}

// Authenticated reports whether any identity was resolved at all.
func (id EffectiveIdentity) Authenticated() bool {
	return id.UserID != nil || id.CustomerID != nil
}

// Override carries client-supplied identity fields from a request payload.
// They are honored only for callers holding the service role.
type Override struct {
	AuthUserID     string
	AuthCustomerID string
}

// Resolve reconciles token-derived identity with request overrides.
// Precedence: a syntactically valid override wins when the caller may
// override; otherwise the token claim value; otherwise absent.
func Resolve(claims ClaimSet, override Override) EffectiveIdentity {
	id := EffectiveIdentity{
		UserID:      UserID(claims),
		CustomerID:  CustomerID(claims),
		DisplayName: Username(claims),
		CanOverride: claims[ClaimTypeRole] == string(domain.RoleService),
	}
	if id.CanOverride {
		if v := parseUUID(override.AuthUserID); v != nil {
			id.UserID = v
		}
		if v := parseUUID(override.AuthCustomerID); v != nil {
			id.CustomerID = v
		}
	}
	return id
}

// StampCreate fills ownership and audit columns for a new row. Client
// payloads never supply these values.
func StampCreate(meta *domain.RowMeta, id EffectiveIdentity, now time.Time) {
	meta.AuthUserID = id.UserID
	meta.AuthCustomerID = id.CustomerID
	meta.RowIsActive = true
	meta.RowIsDeleted = false
	meta.RowCreatedDate = now
	meta.RowUpdatedDate = now
	meta.CreateUserID = id.UserID
	meta.UpdateUserID = id.UserID
}

// StampUpdate refreshes audit columns for a mutated row.
func StampUpdate(meta *domain.RowMeta, id EffectiveIdentity, now time.Time) {
	meta.RowUpdatedDate = now
	meta.UpdateUserID = id.UserID
}
