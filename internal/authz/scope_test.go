package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-service/internal/identity"
)

func TestApplyAlwaysEnforcesVisibilityGate(t *testing.T) {
	clauses, args := Scope{}.Apply(nil, nil)

	assert.Equal(t, []string{"row_is_active = TRUE", "row_is_deleted = FALSE"}, clauses)
	assert.Empty(t, args)
}

func TestApplyAppendsIdentityClauses(t *testing.T) {
	userID := uuid.New()
	customerID := uuid.New()
	scope := Scope{UserID: &userID, CustomerID: &customerID}

	clauses := []string{"id = $1"}
	args := []any{uuid.New()}
	clauses, args = scope.Apply(clauses, args)

	assert.Equal(t, []string{
		"id = $1",
		"row_is_active = TRUE",
		"row_is_deleted = FALSE",
		"auth_customer_id = $2",
		"auth_user_id = $3",
	}, clauses)
	require.Len(t, args, 3)
	assert.Equal(t, customerID, args[1])
	assert.Equal(t, userID, args[2])
}

func TestValidateRejectsMissingTenant(t *testing.T) {
	assert.ErrorIs(t, Scope{RequireTenant: true}.Validate(), ErrTenantRequired)
	assert.NoError(t, Scope{RequireTenant: false}.Validate())

	customerID := uuid.New()
	assert.NoError(t, Scope{CustomerID: &customerID, RequireTenant: true}.Validate())
}

func TestForIdentityAndTenantOnly(t *testing.T) {
	userID := uuid.New()
	customerID := uuid.New()
	id := identity.EffectiveIdentity{UserID: &userID, CustomerID: &customerID}

	scope := ForIdentity(id, true)
	require.NotNil(t, scope.UserID)
	require.NotNil(t, scope.CustomerID)
	assert.True(t, scope.RequireTenant)

	tenant := scope.TenantOnly()
	assert.Nil(t, tenant.UserID)
	require.NotNil(t, tenant.CustomerID)
	assert.Equal(t, customerID, *tenant.CustomerID)
	assert.True(t, tenant.RequireTenant)
}
