package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-labs/incident-service/internal/domain"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

func newTestApp(t *testing.T, role domain.Role) (*fiber.App, string) {
	t.Helper()
	tm := NewTokenManager("test-secret", 1)
	mw := NewMiddleware(tm)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"mensaje": domainErr.Message})
		},
	})
	app.Get("/protegido", mw.RequireAuth, func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"sub": claims.SubjectID})
	})
	app.Get("/solo-admin", mw.RequireAuth, RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	token, _, err := tm.GenerateToken(7, role, "p@example.com")
	require.NoError(t, err)
	return app, token
}

func TestRequireAuthMissingHeader(t *testing.T) {
	app, _ := newTestApp(t, domain.RoleEndUser)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	app, token := newTestApp(t, domain.RoleEndUser)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	app, _ := newTestApp(t, domain.RoleEndUser)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer invalido")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthValidToken(t *testing.T) {
	app, token := newTestApp(t, domain.RoleEndUser)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleForbidsEndUser(t *testing.T) {
	app, token := newTestApp(t, domain.RoleEndUser)

	req := httptest.NewRequest(http.MethodGet, "/solo-admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	app, token := newTestApp(t, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/solo-admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCanAccessIncident(t *testing.T) {
	owner := &Claims{SubjectID: 5, Role: domain.RoleEndUser}
	other := &Claims{SubjectID: 6, Role: domain.RoleEndUser}
	admin := &Claims{SubjectID: 1, Role: domain.RoleAdmin}

	assert.True(t, CanAccessIncident(owner, 5))
	assert.False(t, CanAccessIncident(other, 5))
	assert.True(t, CanAccessIncident(admin, 5))
	assert.False(t, CanAccessIncident(nil, 5))
}
