package auth

import (
	"testing"

	"github.com/spec-kit/crm-api/internal/domain"
)

func TestResolveIsTotal(t *testing.T) {
	resolver := NewRoleResolver(map[string]domain.Role{
		"agent123": domain.RoleAgent,
		"admin123": domain.RoleAdmin,
	})

	cases := []struct {
		name   string
		header string
		want   domain.Role
	}{
		{"missing header", "", domain.RoleNone},
		{"not bearer", "Basic dXNlcjpwYXNz", domain.RoleNone},
		{"bearer without token", "Bearer", domain.RoleNone},
		{"unknown token", "Bearer nope", domain.RoleNone},
		{"known agent token", "Bearer agent123", domain.RoleAgent},
		{"known admin token", "Bearer admin123", domain.RoleAdmin},
		{"scheme is case-insensitive", "bearer agent123", domain.RoleAgent},
		{"token is case-sensitive", "Bearer AGENT123", domain.RoleNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolver.Resolve(tc.header); got != tc.want {
				t.Errorf("Resolve(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}
