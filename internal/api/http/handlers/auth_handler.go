package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/directory-service/internal/api/dto"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/service"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

// AuthHandler manages registration and login endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var customerID *uuid.UUID
	if req.CustomerID != "" {
		parsed, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return apperrors.NewValidationError("invalid customer_id", nil)
		}
		customerID = &parsed
	}

	account, token, exp, err := h.service.Register(c.Context(), req.Email, req.Password, req.DisplayName, customerID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data":  accountResponse(account),
		"token": tokenResponse(token, exp),
	})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	account, token, exp, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":  accountResponse(account),
		"token": tokenResponse(token, exp),
	})
}

func accountResponse(account *domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:          account.ID.String(),
		Email:       account.Email,
		DisplayName: account.DisplayName,
		UserID:      account.UserID.String(),
		CustomerID:  account.CustomerID.String(),
		Role:        string(account.Role),
	}
}

func tokenResponse(token string, exp time.Time) dto.TokenResponse {
	return dto.TokenResponse{Token: token, ExpiresAt: exp.Format(time.RFC3339)}
}
