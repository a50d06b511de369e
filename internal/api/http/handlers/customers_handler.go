package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-api/internal/api/dto"
	"github.com/spec-kit/crm-api/internal/auth"
	"github.com/spec-kit/crm-api/internal/domain"
	"github.com/spec-kit/crm-api/internal/store"
	apperrors "github.com/spec-kit/crm-api/pkg/util"
)

// CustomersHandler manages customer endpoints.
type CustomersHandler struct {
	store *store.Store
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(entityStore *store.Store) *CustomersHandler {
	return &CustomersHandler{store: entityStore}
}

// GetCustomer GET /api/customers/:id.
func (h *CustomersHandler) GetCustomer(c *fiber.Ctx) error {
	if err := auth.CheckRole(auth.RoleFromContext(c), domain.RoleAgent, domain.RoleAdmin); err != nil {
		return err
	}

	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	customer, err := h.store.GetCustomer(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

func customerResponse(customer domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		CreatedAt: customer.CreatedAt,
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": raw})
	}
	return id, nil
}
