package auth

import (
	"fmt"

	"github.com/spec-kit/crm-api/internal/domain"
	apperrors "github.com/spec-kit/crm-api/pkg/util"
)

// CheckRole succeeds iff role is a member of allowed; otherwise it returns
// Forbidden carrying the resolved role for diagnostics. An empty allowed set
// fails closed. Handlers must call this before any existence check so that
// unauthorized callers cannot probe for resource ids.
func CheckRole(role domain.Role, allowed ...domain.Role) error {
	for _, candidate := range allowed {
		if role == candidate {
			return nil
		}
	}
	return apperrors.NewForbidden(fmt.Sprintf("role '%s' unauthorized", role))
}
