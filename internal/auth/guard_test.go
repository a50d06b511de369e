package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-api/internal/domain"
	apperrors "github.com/spec-kit/crm-api/pkg/util"
)

func TestCheckRoleAllowsMember(t *testing.T) {
	require.NoError(t, CheckRole(domain.RoleAgent, domain.RoleAgent, domain.RoleAdmin))
	require.NoError(t, CheckRole(domain.RoleAdmin, domain.RoleAgent, domain.RoleAdmin))
}

func TestCheckRoleRejectsNonMember(t *testing.T) {
	err := CheckRole(domain.RoleAgent, domain.RoleAdmin)
	require.True(t, apperrors.IsForbidden(err))
	require.Contains(t, err.Error(), "agent")
}

func TestCheckRoleRejectsUnauthenticated(t *testing.T) {
	err := CheckRole(domain.RoleNone, domain.RoleAgent, domain.RoleAdmin)
	require.True(t, apperrors.IsForbidden(err))
	require.Contains(t, err.Error(), "none")
}

func TestCheckRoleEmptyAllowedSetFailsClosed(t *testing.T) {
	require.True(t, apperrors.IsForbidden(CheckRole(domain.RoleAdmin)))
}
