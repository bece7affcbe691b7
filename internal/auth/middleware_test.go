package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendx/hrms-service/internal/domain"
	apperrors "github.com/attendx/hrms-service/pkg/util"
)

type stubLookup struct {
	accounts map[int64]*domain.Account
	err      error
}

func (s *stubLookup) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	if acc, ok := s.accounts[id]; ok {
		return acc, nil
	}
	return nil, pgx.ErrNoRows
}

func newTestApp(r *Resolver, required bool, guards ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	handlers := []fiber.Handler{r.Authenticate(required)}
	handlers = append(handlers, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		if acc, ok := AccountFromContext(c); ok {
			return c.SendString(acc.Email)
		}
		return c.SendString("anonymous")
	})
	app.Get("/", handlers...)
	return app
}

func doGet(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func fixture(t *testing.T) (*TokenManager, *stubLookup) {
	t.Helper()
	lookup := &stubLookup{accounts: map[int64]*domain.Account{
		1: {ID: 1, Email: "admin@example.com", Role: domain.RoleAdmin, Status: domain.AccountStatusActive},
		2: {ID: 2, Email: "gone@example.com", Role: domain.RoleHR, Status: domain.AccountStatusInactive},
		3: {ID: 3, Email: "emp@example.com", Role: domain.RoleEmployee, Status: domain.AccountStatusActive},
	}}
	return NewTokenManager("secret", 30), lookup
}

func bearer(t *testing.T, tm *TokenManager, acc *domain.Account, ttl time.Duration) string {
	t.Helper()
	token, _, err := tm.Issue(acc, ttl)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthenticate_Required(t *testing.T) {
	tm, lookup := fixture(t)
	app := newTestApp(NewResolver(tm, lookup), true)

	status, body := doGet(t, app, bearer(t, tm, lookup.accounts[1], time.Minute))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "admin@example.com", body)

	cases := map[string]string{
		"missing":      "",
		"wrong scheme": "Basic abc",
		"empty token":  "Bearer ",
		"garbage":      "Bearer not-a-token",
		"expired":      bearer(t, tm, lookup.accounts[1], 0),
		"inactive":     bearer(t, tm, lookup.accounts[2], time.Minute),
		"unknown":      bearer(t, tm, &domain.Account{ID: 99, Role: domain.RoleAdmin}, time.Minute),
		"other secret": bearer(t, NewTokenManager("other", 30), lookup.accounts[1], time.Minute),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := doGet(t, app, header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, apperrors.CodeUnauthorized, body)
		})
	}
}

func TestAuthenticate_Optional(t *testing.T) {
	tm, lookup := fixture(t)
	app := newTestApp(NewResolver(tm, lookup), false)

	status, body := doGet(t, app, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)

	status, body = doGet(t, app, bearer(t, tm, lookup.accounts[2], time.Minute))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)

	status, body = doGet(t, app, bearer(t, tm, lookup.accounts[3], time.Minute))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "emp@example.com", body)
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	tm, lookup := fixture(t)
	lookup.err = errors.New("connection refused")
	app := newTestApp(NewResolver(tm, lookup), false)

	status, body := doGet(t, app, bearer(t, tm, &domain.Account{ID: 1}, time.Minute))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, apperrors.CodeInternal, body)
}

func TestRequirePermission(t *testing.T) {
	tm, lookup := fixture(t)
	app := newTestApp(NewResolver(tm, lookup), true, RequirePermission(ActionListAccounts))

	status, _ := doGet(t, app, bearer(t, tm, lookup.accounts[1], time.Minute))
	assert.Equal(t, http.StatusOK, status)

	status, body := doGet(t, app, bearer(t, tm, lookup.accounts[3], time.Minute))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apperrors.CodeForbidden, body)
}
