package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)
	account := &domain.Account{
		ID:          uuid.New(),
		Email:       "owner@example.com",
		DisplayName: "Owner",
		UserID:      uuid.New(),
		CustomerID:  uuid.New(),
		Role:        domain.RoleMember,
	}

	token, expiresAt, err := tm.Generate(account)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)

	claims, err := tm.Parse(token)
	require.NoError(t, err)

	gotUser := UserID(claims)
	require.NotNil(t, gotUser)
	assert.Equal(t, account.UserID, *gotUser)

	gotCustomer := CustomerID(claims)
	require.NotNil(t, gotCustomer)
	assert.Equal(t, account.CustomerID, *gotCustomer)

	assert.Equal(t, "Owner", Username(claims))
	assert.Equal(t, string(domain.RoleMember), claims[ClaimTypeRole])
}

func TestParseRejectsWrongSecret(t *testing.T) {
	account := &domain.Account{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		CustomerID: uuid.New(),
		Role:       domain.RoleMember,
	}

	token, _, err := NewTokenManager("secret-a", 15).Generate(account)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 15).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("test-secret", 15).Parse("not.a.token")
	assert.Error(t, err)
}
