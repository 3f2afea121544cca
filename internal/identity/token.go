package identity

import (
	"encoding/json"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/directory-service/internal/domain"
)

// TokenManager handles issuing and validating JWT tokens. The identity
// payload travels as a JSON object inside the user-data claim.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Generate builds and signs a JWT for the account.
func (tm *TokenManager) Generate(account *domain.Account) (string, time.Time, error) {
	payload, err := json.Marshal(userDataPayload{
		UserID:     account.UserID.String(),
		CustomerID: account.CustomerID.String(),
	})
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := jwt.MapClaims{
		"sub":             account.ID.String(),
		"iat":             jwt.NewNumericDate(now),
		"exp":             jwt.NewNumericDate(expiresAt),
		ClaimTypeUserData: string(payload),
		ClaimTypeName:     account.DisplayName,
		ClaimTypeRole:     string(account.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates the token signature and returns its string claims.
func (tm *TokenManager) Parse(tokenStr string) (ClaimSet, error) {
	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	set := make(ClaimSet, len(mapClaims))
	for key, value := range mapClaims {
		if str, ok := value.(string); ok {
			set[key] = str
		}
	}
	return set, nil
}
