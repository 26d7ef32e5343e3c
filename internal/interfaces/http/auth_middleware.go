package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-backoffice/internal/application/dto"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/pkg/jwt"
)

// Local key del scope en Fiber.
const LocalScope = "scope"

// AuthMiddleware valida el Bearer Token JWT y deja el rbac.Scope en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope, err := scopeFromHeader(c, jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: err.Error()})
		}
		c.Locals(LocalScope, scope)
		return c.Next()
	}
}

// OptionalAuth como AuthMiddleware, pero sin token la petición sigue como
// guest (solo lectura). Un token presente pero inválido sí corta.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			c.Locals(LocalScope, rbac.Guest())
			return c.Next()
		}
		scope, err := scopeFromHeader(c, jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: err.Error()})
		}
		c.Locals(LocalScope, scope)
		return c.Next()
	}
}

// RequireRole corta con 403 si el scope no tiene ninguno de los roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope := GetScope(c)
		for _, role := range roles {
			if scope.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol insuficiente"})
	}
}

// GetScope devuelve el scope del contexto; guest si no hubo middleware.
func GetScope(c *fiber.Ctx) rbac.Scope {
	if v := c.Locals(LocalScope); v != nil {
		if scope, ok := v.(rbac.Scope); ok {
			return scope
		}
	}
	return rbac.Guest()
}

func scopeFromHeader(c *fiber.Ctx, jwtSecret string) (rbac.Scope, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return rbac.Scope{}, fiber.NewError(fiber.StatusUnauthorized, "Authorization header requerido")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return rbac.Scope{}, fiber.NewError(fiber.StatusUnauthorized, "formato: Bearer <token>")
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return rbac.Scope{}, fiber.NewError(fiber.StatusUnauthorized, "token vacío")
	}
	claims, err := jwt.Parse(jwtSecret, tokenString)
	if err != nil {
		return rbac.Scope{}, fiber.NewError(fiber.StatusUnauthorized, "token inválido o expirado")
	}
	switch claims.Role {
	case entity.RoleAdmin:
		return rbac.Admin(claims.UserID, claims.Name), nil
	case entity.RoleManager:
		home, err := entity.ParseLocationKey(claims.Location)
		if err != nil {
			return rbac.Scope{}, fiber.NewError(fiber.StatusUnauthorized, "ubicación del token inválida")
		}
		return rbac.Manager(claims.UserID, claims.Name, home), nil
	default:
		return rbac.Scope{}, fiber.NewError(fiber.StatusUnauthorized, "rol desconocido")
	}
}
