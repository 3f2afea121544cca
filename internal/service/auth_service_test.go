package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-service/internal/config"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/identity"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

type fakeAccountRepo struct {
	byEmail map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: map[string]*domain.Account{}}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	r.byEmail[account.Email] = account
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	for _, account := range r.byEmail {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	account, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func newAuthServiceUnderTest() *AuthService {
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 15
	cfg.Auth.BcryptCost = 4
	return NewAuthService(cfg, newFakeAccountRepo())
}

func TestRegisterMintsTenantAndToken(t *testing.T) {
	svc := newAuthServiceUnderTest()

	account, token, exp, err := svc.Register(context.Background(), "  Owner@Example.COM ", "hunter22", "Owner", nil)
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", account.Email)
	assert.Equal(t, domain.RoleMember, account.Role)
	assert.NotEqual(t, uuid.Nil, account.CustomerID)
	assert.NotEqual(t, uuid.Nil, account.UserID)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	gotCustomer := identity.CustomerID(claims)
	require.NotNil(t, gotCustomer)
	assert.Equal(t, account.CustomerID, *gotCustomer)
}

func TestRegisterJoinsExistingTenant(t *testing.T) {
	svc := newAuthServiceUnderTest()
	tenant := uuid.New()

	account, _, _, err := svc.Register(context.Background(), "second@example.com", "hunter22", "Second", &tenant)
	require.NoError(t, err)
	assert.Equal(t, tenant, account.CustomerID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthServiceUnderTest()

	_, _, _, err := svc.Register(context.Background(), "owner@example.com", "hunter22", "Owner", nil)
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "owner@example.com", "other", "Imposter", nil)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestLogin(t *testing.T) {
	svc := newAuthServiceUnderTest()

	registered, _, _, err := svc.Register(context.Background(), "owner@example.com", "hunter22", "Owner", nil)
	require.NoError(t, err)

	account, token, _, err := svc.Login(context.Background(), "owner@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, account.ID)
	assert.NotEmpty(t, token)

	_, _, _, err = svc.Login(context.Background(), "owner@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.Login(context.Background(), "missing@example.com", "hunter22")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}
