package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/directory-service/internal/api/dto"
	"github.com/spec-kit/directory-service/internal/authz"
	"github.com/spec-kit/directory-service/internal/identity"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

var validate = validator.New()

// PageDefaults carries configured pagination bounds into handlers.
type PageDefaults struct {
	Default int
	Max     int
}

func bindAndValidate(c *fiber.Ctx, payload any) error {
	if err := c.BodyParser(payload); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validate.Struct(payload); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}
	return nil
}

func resolveIdentity(c *fiber.Ctx, override dto.IdentityOverride) identity.EffectiveIdentity {
	return identity.Resolve(identity.ClaimsFromContext(c), identity.Override{
		AuthUserID:     override.AuthUserID,
		AuthCustomerID: override.AuthCustomerID,
	})
}

func overrideFromQuery(c *fiber.Ctx) dto.IdentityOverride {
	return dto.IdentityOverride{
		AuthUserID:     c.Query("auth_user_id"),
		AuthCustomerID: c.Query("auth_customer_id"),
	}
}

func parsePage(c *fiber.Ctx, defaults PageDefaults) authz.Page {
	return authz.NormalizePage(c.QueryInt("page"), c.QueryInt("size"), defaults.Default, defaults.Max)
}

func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}
