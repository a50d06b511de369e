package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-api/internal/api/dto"
	"github.com/spec-kit/crm-api/internal/api/http/handlers"
	"github.com/spec-kit/crm-api/internal/auth"
	"github.com/spec-kit/crm-api/internal/domain"
	"github.com/spec-kit/crm-api/internal/events"
	"github.com/spec-kit/crm-api/internal/observability"
	"github.com/spec-kit/crm-api/internal/store"
)

func newTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()

	entityStore := store.New()
	for _, c := range []struct{ name, email string }{
		{"Jane Doe", "jane@example.com"},
		{"John Smith", "john@example.com"},
	} {
		_, err := entityStore.CreateCustomer(c.name, c.email)
		require.NoError(t, err)
	}

	resolver := auth.NewRoleResolver(map[string]domain.Role{
		"agent123": domain.RoleAgent,
		"admin123": domain.RoleAdmin,
	})
	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("crm-ticketing-api", "test", nil),
		Customers: handlers.NewCustomersHandler(entityStore),
		Tickets:   handlers.NewTicketsHandler(entityStore, dispatcher),
		Notes:     handlers.NewNotesHandler(entityStore, dispatcher),
		Pipeline:  auth.NewMiddleware(resolver),
	})
	return app, entityStore
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *nethttp.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeData[T any](t *testing.T, resp *nethttp.Response) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func errorCode(t *testing.T, resp *nethttp.Response) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Error.Code
}

func TestTicketLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/tickets", "agent123", dto.CreateTicketRequest{
		CustomerID:  1,
		Subject:     "printer on fire",
		Description: "third floor",
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	created := decodeData[dto.TicketResponse](t, resp)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "open", created.Status)

	resp = doRequest(t, app, "PATCH", "/api/tickets/1", "admin123", map[string]string{"status": "closed"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	updated := decodeData[dto.TicketResponse](t, resp)
	require.Equal(t, "closed", updated.Status)
	require.Equal(t, "printer on fire", updated.Subject)
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	resp = doRequest(t, app, "POST", "/api/notes/1", "admin123", dto.CreateNoteRequest{Text: "resolved"})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	note := decodeData[dto.NoteResponse](t, resp)
	require.Equal(t, int64(1), note.ID)
	require.Equal(t, int64(1), note.TicketID)

	resp = doRequest(t, app, "GET", "/api/tickets", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	tickets := decodeData[[]dto.TicketResponse](t, resp)
	require.Len(t, tickets, 1)
	require.Equal(t, int64(1), tickets[0].ID)
}

func TestCreateTicketWithoutAuthIsForbidden(t *testing.T) {
	app, entityStore := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/tickets", "", dto.CreateTicketRequest{CustomerID: 1, Subject: "s"})
	require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	require.Equal(t, "FORBIDDEN", errorCode(t, resp))
	require.Equal(t, 0, entityStore.TicketCount())
}

func TestCreateTicketUnknownCustomerIsNotFound(t *testing.T) {
	app, entityStore := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/tickets", "agent123", dto.CreateTicketRequest{CustomerID: 999, Subject: "s"})
	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	require.Equal(t, 0, entityStore.TicketCount())
}

func TestForbiddenPrecedesNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	// An unrecognized token probing a non-existent ticket must learn nothing
	// about whether the ticket exists.
	resp := doRequest(t, app, "PATCH", "/api/tickets/999", "bogus", map[string]string{"status": "closed"})
	require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	require.Equal(t, "FORBIDDEN", errorCode(t, resp))

	resp = doRequest(t, app, "POST", "/api/notes/999", "bogus", dto.CreateNoteRequest{Text: "hi"})
	require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
}

func TestGetCustomer(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, "GET", "/api/customers/1", "agent123", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	customer := decodeData[dto.CustomerResponse](t, resp)
	require.Equal(t, "Jane Doe", customer.Name)

	resp = doRequest(t, app, "GET", "/api/customers/999", "agent123", nil)
	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	require.Equal(t, "NOT_FOUND", errorCode(t, resp))

	resp = doRequest(t, app, "GET", "/api/customers/1", "", nil)
	require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
}

func TestListTicketsFilterIncludingZero(t *testing.T) {
	app, entityStore := newTestApp(t)
	entityStore.CreateTicket(1, "a", "")
	entityStore.CreateTicket(2, "b", "")
	entityStore.CreateTicket(1, "c", "")

	resp := doRequest(t, app, "GET", "/api/tickets?customer_id=1", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	tickets := decodeData[[]dto.TicketResponse](t, resp)
	require.Len(t, tickets, 2)
	require.Equal(t, "a", tickets[0].Subject)
	require.Equal(t, "c", tickets[1].Subject)

	// customer_id=0 is an explicit filter that matches nothing, not "all".
	resp = doRequest(t, app, "GET", "/api/tickets?customer_id=0", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Empty(t, decodeData[[]dto.TicketResponse](t, resp))
}

func TestValidationErrors(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/tickets", bytes.NewReader([]byte("{not json")))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer agent123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, "VALIDATION_FAILED", errorCode(t, resp))

	resp = doRequest(t, app, "POST", "/api/notes/1", "agent123", dto.CreateNoteRequest{Text: "   "})
	require.Equal(t, nethttp.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLatencyHeaderAlwaysPresent(t *testing.T) {
	app, _ := newTestApp(t)
	pattern := regexp.MustCompile(`^\d+\.\d{2}$`)

	resp := doRequest(t, app, "GET", "/api/tickets", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Regexp(t, pattern, resp.Header.Get(auth.ProcessTimeHeader))

	// Attached on failures too.
	resp = doRequest(t, app, "POST", "/api/tickets", "", nil)
	require.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	require.Regexp(t, pattern, resp.Header.Get(auth.ProcessTimeHeader))
}

func TestHealthEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, "GET", "/health/live", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/health/ready", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
