package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/incident-service/internal/domain"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

// RequireRole ensures the authenticated principal has one of the allowed
// roles. It must run after RequireAuth.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("no autenticado")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[claims.Role]; !exists {
			return apperrors.NewForbidden("no autorizado")
		}
		return c.Next()
	}
}

// CanAccessIncident applies the ownership rule: end users see only
// incidents they own, administrators bypass the check unconditionally.
func CanAccessIncident(claims *Claims, ownerUserID int64) bool {
	if claims == nil {
		return false
	}
	if claims.Role == domain.RoleAdmin {
		return true
	}
	return claims.SubjectID == ownerUserID
}
