package dto

// IdentityOverride carries optional caller-supplied identity fields. They
// take effect only for service-role tokens; for everyone else they are
// ignored in favor of the token identity.
type IdentityOverride struct {
	AuthUserID     string `json:"auth_user_id,omitempty"`
	AuthCustomerID string `json:"auth_customer_id,omitempty"`
}

// TokenResponse is returned by register/login.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
