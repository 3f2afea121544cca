// Package authz narrows entity queries to the rows visible to an effective
// identity. Scopes render into SQL WHERE clauses so the restriction executes
// inside a single statement, never as client-side filtering.
package authz

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spec-kit/directory-service/internal/identity"
)

// ErrTenantRequired is returned by Validate when a scope demands tenant
// isolation but no customer id was resolved.
var ErrTenantRequired = errors.New("tenant scope required but no customer id resolved")

// Scope is the row-visibility predicate for one query. A nil id places no
// restriction on that dimension; RequireTenant states explicitly whether the
// call site tolerates an unscoped query.
type Scope struct {
	UserID        *uuid.UUID
	CustomerID    *uuid.UUID
	RequireTenant bool
}

// ForIdentity builds a scope from a resolved identity. requireTenant is a
// per-query decision, named at every call site.
func ForIdentity(id identity.EffectiveIdentity, requireTenant bool) Scope {
	return Scope{
		UserID:        id.UserID,
		CustomerID:    id.CustomerID,
		RequireTenant: requireTenant,
	}
}

// TenantOnly keeps the customer restriction and drops the user one, for
// "list by customer" queries where per-user ownership does not apply.
func (s Scope) TenantOnly() Scope {
	return Scope{CustomerID: s.CustomerID, RequireTenant: s.RequireTenant}
}

// Validate rejects scopes that demand a tenant they do not have.
func (s Scope) Validate() error {
	if s.RequireTenant && s.CustomerID == nil {
		return ErrTenantRequired
	}
	return nil
}

// Apply appends the visibility clauses to a WHERE clause under construction,
// numbering placeholders after the existing args. Always enforces the
// active/soft-delete gate; identity clauses are added only for present ids.
func (s Scope) Apply(clauses []string, args []any) ([]string, []any) {
	clauses = append(clauses, "row_is_active = TRUE", "row_is_deleted = FALSE")
	if s.CustomerID != nil {
		args = append(args, *s.CustomerID)
		clauses = append(clauses, fmt.Sprintf("auth_customer_id = $%d", len(args)))
	}
	if s.UserID != nil {
		args = append(args, *s.UserID)
		clauses = append(clauses, fmt.Sprintf("auth_user_id = $%d", len(args)))
	}
	return clauses, args
}
