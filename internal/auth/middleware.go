package auth

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-api/internal/domain"
)

const roleKey = "auth_role"

// ProcessTimeHeader carries per-request wall time in fractional milliseconds.
const ProcessTimeHeader = "X-Process-Time-ms"

// Middleware is the per-request authentication pipeline: it resolves the
// caller's role, attaches it to the request context, and reports handler
// latency on the way out. It never rejects a request itself; enforcement is
// the handlers' job via CheckRole.
type Middleware struct {
	resolver *RoleResolver
}

// NewMiddleware constructs the pipeline middleware.
func NewMiddleware(resolver *RoleResolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// Handle resolves the role and times the downstream handler. The latency
// header is set in a defer so it is attached whether the handler succeeds,
// returns an error, or panics.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	start := time.Now()

	role := m.resolver.Resolve(c.Get(fiber.HeaderAuthorization))
	c.Locals(roleKey, role)

	defer func() {
		elapsed := float64(time.Since(start)) / float64(time.Millisecond)
		c.Set(ProcessTimeHeader, strconv.FormatFloat(elapsed, 'f', 2, 64))
	}()

	return c.Next()
}

// RoleFromContext retrieves the role attached by Handle. Requests that never
// passed through the pipeline read as RoleNone.
func RoleFromContext(c *fiber.Ctx) domain.Role {
	role, ok := c.Locals(roleKey).(domain.Role)
	if !ok {
		return domain.RoleNone
	}
	return role
}
