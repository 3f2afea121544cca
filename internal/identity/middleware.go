package identity

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

const claimSetKey = "identity_claims"

// Middleware validates bearer tokens and attaches the caller's claim set.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Required enforces authentication for protected routes.
func (m *Middleware) Required(c *fiber.Ctx) error {
	claims, err := m.claimsFromHeader(c)
	if err != nil {
		return err
	}
	if claims == nil {
		return apperrors.NewUnauthorized("missing authorization header")
	}
	c.Locals(claimSetKey, claims)
	return c.Next()
}

// Optional decodes a bearer token when present; anonymous callers proceed
// with an empty claim set.
func (m *Middleware) Optional(c *fiber.Ctx) error {
	claims, err := m.claimsFromHeader(c)
	if err != nil {
		return err
	}
	if claims != nil {
		c.Locals(claimSetKey, claims)
	}
	return c.Next()
}

func (m *Middleware) claimsFromHeader(c *fiber.Ctx) (ClaimSet, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	return claims, nil
}

// ClaimsFromContext retrieves the caller's claim set, empty when anonymous.
func ClaimsFromContext(c *fiber.Ctx) ClaimSet {
	val := c.Locals(claimSetKey)
	if val == nil {
		return ClaimSet{}
	}
	claims, ok := val.(ClaimSet)
	if !ok {
		return ClaimSet{}
	}
	return claims
}
