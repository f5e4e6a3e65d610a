package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/fbarbosa/hr-management/internal"
	"github.com/fbarbosa/hr-management/internal/absence"
	"github.com/fbarbosa/hr-management/internal/accesscontrol"
	"github.com/fbarbosa/hr-management/internal/accesslog"
	"github.com/fbarbosa/hr-management/internal/auth"
	"github.com/fbarbosa/hr-management/internal/callup"
	"github.com/fbarbosa/hr-management/internal/company"
	"github.com/fbarbosa/hr-management/internal/employee"
	"github.com/fbarbosa/hr-management/internal/observability"
	"github.com/fbarbosa/hr-management/internal/screen"
	"github.com/fbarbosa/hr-management/internal/transport/middleware"
	"github.com/fbarbosa/hr-management/internal/transport/swagger"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth          *auth.Handler
	AccessControl *accesscontrol.Handler
	Company       *company.Handler
	Screen        *screen.Handler
	Employee      *employee.Handler
	Absence       *absence.Handler
	CallUp        *callup.Handler
	AccessLog     *accesslog.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, handlers Handlers, guard *accesscontrol.Middleware, recorder *accesslog.Recorder, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)

	// The audit trail wraps the whole /api subtree, recovery included, so
	// denied, failed and panicking requests are recorded alongside
	// successful ones.
	router.Use(accesslog.Middleware(recorder))
	router.Use(middleware.RecoveryMiddleware(logger))

	if cfg.Observability.Metrics.Enabled {
		router.Use(observability.Instrument)
	}

	if cfg.Observability.Metrics.Enabled {
		router.Handle(cfg.Observability.Metrics.Path, observability.Handler())
	}

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", handlers.Auth.Login)
			sr.Post("/refresh", handlers.Auth.RefreshToken)

			sr.Group(func(ar chi.Router) {
				ar.Use(handlers.Auth.AuthMiddleware)
				ar.Get("/me", handlers.Auth.Me)
				ar.Post("/change-password", handlers.Auth.ChangePassword)
				ar.Post("/select-company", handlers.AccessControl.SelectCompany)
			})
		})

		// Authenticated routes without a tenant requirement.
		r.Group(func(ar chi.Router) {
			ar.Use(handlers.Auth.AuthMiddleware)

			ar.Get("/screens", handlers.Screen.List)
			ar.Get("/screens/{id}", handlers.Screen.Get)

			// Administrative surface.
			ar.Group(func(admin chi.Router) {
				admin.Use(guard.RequireAdmin)

				admin.Route("/companies", func(cr chi.Router) {
					cr.Post("/", handlers.Company.Create)
					cr.Get("/", handlers.Company.List)
					cr.Get("/{code}", handlers.Company.Get)
					cr.Patch("/{code}", handlers.Company.Update)
					cr.Delete("/{code}", handlers.Company.Delete)
					cr.Get("/{code}/grants", handlers.Company.Grants)
					cr.Post("/{code}/grants", handlers.Company.Grant)
					cr.Delete("/{code}/grants/{userID}", handlers.Company.Revoke)
				})

				admin.Route("/screens/{id}/grants", func(sr chi.Router) {
					sr.Get("/", handlers.Screen.Grants)
					sr.Post("/", handlers.Screen.Grant)
					sr.Delete("/{userID}", handlers.Screen.Revoke)
				})

				admin.Get("/access-logs", handlers.AccessLog.List)
			})
		})

		// Tenant-scoped routes: company context then screen gate.
		r.Group(func(tr chi.Router) {
			tr.Use(handlers.Auth.AuthMiddleware)
			tr.Use(guard.CompanyContext)
			tr.Use(guard.ScreenPermission)

			tr.Route("/employees", func(er chi.Router) {
				er.Post("/", handlers.Employee.Create)
				er.Get("/", handlers.Employee.List)
				er.Get("/metrics", handlers.Employee.Metrics)
				er.Get("/export", handlers.Employee.Export)
				er.Get("/{id}", handlers.Employee.Get)
				er.Patch("/{id}", handlers.Employee.Update)
				er.Delete("/{id}", handlers.Employee.Delete)
			})

			tr.Route("/absences", func(ar chi.Router) {
				ar.Post("/", handlers.Absence.Create)
				ar.Get("/", handlers.Absence.List)
				ar.Get("/types", handlers.Absence.Types)
				ar.Get("/metrics", handlers.Absence.Metrics)
				ar.Get("/export", handlers.Absence.Export)
				ar.Get("/{id}", handlers.Absence.Get)
				ar.Patch("/{id}", handlers.Absence.Update)
				ar.Delete("/{id}", handlers.Absence.Delete)
			})

			tr.Route("/callups", func(cr chi.Router) {
				cr.Post("/", handlers.CallUp.Create)
				cr.Get("/", handlers.CallUp.List)
				cr.Get("/types", handlers.CallUp.Types)
				cr.Get("/metrics", handlers.CallUp.Metrics)
				cr.Get("/export", handlers.CallUp.Export)
				cr.Get("/{id}", handlers.CallUp.Get)
				cr.Patch("/{id}", handlers.CallUp.Update)
				cr.Post("/{id}/respond", handlers.CallUp.Respond)
				cr.Delete("/{id}", handlers.CallUp.Delete)
			})
		})
	})
}
