package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/solicitudes-api/internal/application/analytics"
	"github.com/jhoicas/solicitudes-api/internal/application/auth"
	"github.com/jhoicas/solicitudes-api/internal/application/ports"
	"github.com/jhoicas/solicitudes-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SolicitudUC *usecase.SolicitudUseCase
	UserUC      *usecase.UserUseCase
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	ReportPDF   ports.ReportPDFGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solicitudes (protegido; la política por rol vive en el use case)
	solicitudes := protected.Group("/solicitudes")
	solicitudHandler := NewSolicitudHandler(deps.SolicitudUC)
	solicitudes.Get("/", solicitudHandler.List)
	solicitudes.Post("/", solicitudHandler.Create)
	solicitudes.Get("/:id", solicitudHandler.GetByID)
	solicitudes.Get("/:id/adjuntos/:slot", solicitudHandler.DownloadAttachment)
	solicitudes.Put("/:id", solicitudHandler.Update)
	solicitudes.Patch("/:id/estado", solicitudHandler.UpdateEstado)
	solicitudes.Delete("/:id", solicitudHandler.Delete)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportPDF)
	dashboard.Get("/", dashboardHandler.GetStats)
	dashboard.Get("/reporte.pdf", dashboardHandler.GetReportPDF)

	// Usuarios (protegido, solo super-admin; el use case aplica la política)
	usuarios := protected.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC)
	usuarios.Get("/", userHandler.List)
	usuarios.Patch("/:id/reset-password", userHandler.ResetPassword)
}
