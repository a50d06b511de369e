package auth

import (
	"strings"

	"github.com/spec-kit/crm-api/internal/domain"
)

// RoleResolver maps opaque bearer credentials to roles using a
// pre-provisioned table. Credentials are shared secrets looked up verbatim,
// not cryptographic tokens.
type RoleResolver struct {
	tokens map[string]domain.Role
}

// NewRoleResolver builds a resolver over a token→role table.
func NewRoleResolver(tokens map[string]domain.Role) *RoleResolver {
	table := make(map[string]domain.Role, len(tokens))
	for token, role := range tokens {
		table[token] = role
	}
	return &RoleResolver{tokens: table}
}

// Resolve maps a raw Authorization header value to a role. A missing header,
// a header not of the form "Bearer <token>", and an unrecognized token all
// resolve to RoleNone; Resolve never fails.
func (r *RoleResolver) Resolve(authHeader string) domain.Role {
	if authHeader == "" {
		return domain.RoleNone
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.RoleNone
	}

	role, ok := r.tokens[parts[1]]
	if !ok {
		return domain.RoleNone
	}
	return role
}
