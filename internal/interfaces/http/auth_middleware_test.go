package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	apphttp "github.com/tu-usuario/resto-backoffice/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/resto-backoffice/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testBranchID  = "00000000-0000-0000-0000-0000000000b1"
	testIssuer    = "resto-backoffice-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar el rbac.Scope en locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			scope := apphttp.GetScope(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": scope.Role,
			})
		},
	)
	return app
}

// tokenFor genera un JWT con el rol (y ubicación para managers) indicados.
func tokenFor(t *testing.T, role, locationKey string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Ana", role, locationKey, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(body) > 0 {
		_ = json.Unmarshal(body, &decoded)
	}
	return resp, decoded
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenAdminValido(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp, body := doRequest(t, app, "/protected", tokenFor(t, entity.RoleAdmin, ""))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestAuthMiddleware_TokenManagerConUbicacion(t *testing.T) {
	app := buildTestApp(entity.RoleManager)
	resp, body := doRequest(t, app, "/protected", tokenFor(t, entity.RoleManager, testBranchID))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.RoleManager, body["role"])
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp, _ := doRequest(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp, _ := doRequest(t, app, "/protected", "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenMalFirmado(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	otro, err := pkgjwt.Generate("otro-secret", testUserID, "Ana", entity.RoleAdmin, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "/protected", "Bearer "+otro)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	expirado, err := pkgjwt.Generate(testJWTSecret, testUserID, "Ana", entity.RoleAdmin, "", testIssuer, -5)
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "/protected", "Bearer "+expirado)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestAuthMiddleware_ManagerSinUbicacion: un token de manager sin clave de
// ubicación es inválido (el scope no puede construirse).
func TestAuthMiddleware_ManagerSinUbicacion(t *testing.T) {
	app := buildTestApp(entity.RoleManager)
	resp, _ := doRequest(t, app, "/protected", tokenFor(t, entity.RoleManager, ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_RolNoPermitido(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin) // solo admin
	resp, _ := doRequest(t, app, "/protected", tokenFor(t, entity.RoleManager, testBranchID))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_VariosRoles(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleManager)
	resp, _ := doRequest(t, app, "/protected", tokenFor(t, entity.RoleManager, testBranchID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// OptionalAuth
// ──────────────────────────────────────────────────────────────────────────────

func buildOptionalApp() *fiber.App {
	app := fiber.New()
	app.Get("/public", apphttp.OptionalAuth(testJWTSecret), func(c *fiber.Ctx) error {
		scope := apphttp.GetScope(c)
		return c.JSON(fiber.Map{"role": scope.Role})
	})
	return app
}

// TestOptionalAuth_SinTokenEsGuest: sin header la petición sigue como guest.
func TestOptionalAuth_SinTokenEsGuest(t *testing.T) {
	app := buildOptionalApp()
	resp, body := doRequest(t, app, "/public", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.RoleGuest, body["role"])
}

// TestOptionalAuth_TokenPresenteSeValida: un token presente pero inválido sí
// corta, no degrada a guest.
func TestOptionalAuth_TokenPresenteSeValida(t *testing.T) {
	app := buildOptionalApp()
	resp, _ := doRequest(t, app, "/public", "Bearer no-es-un-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalAuth_TokenValido(t *testing.T) {
	app := buildOptionalApp()
	resp, body := doRequest(t, app, "/public", tokenFor(t, entity.RoleAdmin, ""))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.RoleAdmin, body["role"])
}
