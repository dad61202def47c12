package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/incident-service/internal/api/http/handlers"
	"github.com/helpdesk-labs/incident-service/internal/auth"
	"github.com/helpdesk-labs/incident-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Incidents      *handlers.IncidentsHandler
	Audit          *handlers.AuditHandler
	Assistant      *handlers.AssistantHandler
	References     *handlers.ReferencesHandler
	Principals     *handlers.PrincipalsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	requireAuth := cfg.AuthMiddleware.RequireAuth
	adminOnly := auth.RequireRole(domain.RoleAdmin)
	endUserOnly := auth.RequireRole(domain.RoleEndUser)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/me", requireAuth, cfg.Auth.Me)

	incidents := app.Group("/incidencias", requireAuth)
	incidents.Get("/", adminOnly, cfg.Incidents.List)
	incidents.Get("/mias", endUserOnly, cfg.Incidents.ListMine)
	incidents.Post("/", cfg.Incidents.Create)
	incidents.Get("/:id", cfg.Incidents.Get)
	incidents.Put("/:id", adminOnly, cfg.Incidents.Update)
	incidents.Delete("/:id", adminOnly, cfg.Incidents.Delete)

	audits := app.Group("/historiales", requireAuth)
	audits.Get("/", cfg.Audit.List)
	audits.Get("/incidencia/:incidenciaId", cfg.Audit.ListByIncident)
	audits.Post("/", adminOnly, cfg.Audit.Create)
	audits.Get("/:id", cfg.Audit.Get)
	audits.Put("/:id", adminOnly, cfg.Audit.Update)
	audits.Delete("/:id", adminOnly, cfg.Audit.Delete)

	assistant := app.Group("/ia")
	assistant.Post("/sugerir-categoria", requireAuth, cfg.Assistant.SuggestCategory)
	assistant.Post("/chat", cfg.Assistant.Chat)
	assistant.Get("/faqs", cfg.Assistant.ListFAQs)
	assistant.Post("/faqs", requireAuth, adminOnly, cfg.Assistant.CreateFAQ)
	assistant.Put("/faqs/:id", requireAuth, adminOnly, cfg.Assistant.UpdateFAQ)
	assistant.Delete("/faqs/:id", requireAuth, adminOnly, cfg.Assistant.DeleteFAQ)

	categories := app.Group("/categorias")
	categories.Get("/", cfg.References.ListCategories)
	categories.Get("/:id", cfg.References.GetCategory)
	categories.Post("/", requireAuth, adminOnly, cfg.References.CreateCategory)
	categories.Put("/:id", requireAuth, adminOnly, cfg.References.UpdateCategory)
	categories.Delete("/:id", requireAuth, adminOnly, cfg.References.DeleteCategory)

	statuses := app.Group("/estados", requireAuth)
	statuses.Get("/", cfg.References.ListStatuses)
	statuses.Get("/:id", cfg.References.GetStatus)
	statuses.Post("/", adminOnly, cfg.References.CreateStatus)
	statuses.Put("/:id", adminOnly, cfg.References.UpdateStatus)
	statuses.Delete("/:id", adminOnly, cfg.References.DeleteStatus)

	users := app.Group("/usuarios", requireAuth, adminOnly)
	users.Get("/", cfg.Principals.ListUsers)
	users.Get("/:id", cfg.Principals.GetUser)

	admins := app.Group("/administradores", requireAuth, adminOnly)
	admins.Get("/", cfg.Principals.ListAdministrators)
	admins.Get("/:id", cfg.Principals.GetAdministrator)
}
