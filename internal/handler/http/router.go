package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gr1d99/shopping-list-api-sub000/pkg/health"
	"github.com/gr1d99/shopping-list-api-sub000/pkg/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Auth   *AuthHandler
	Lists  *ListHandler
	Items  *ItemHandler
	Guard  *AuthMiddleware
	Health *health.Handler
	Logger *slog.Logger
}

// NewRouter builds the HTTP route tree.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("shopping-list-api"))

	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)
			r.Post("/reset-password/token", deps.Auth.RequestResetToken)
			r.Post("/reset-password", deps.Auth.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(deps.Guard.RequireAccess)
				r.Delete("/logout", deps.Auth.Logout)
				r.Get("/users", deps.Auth.GetAccount)
				r.Put("/users", deps.Auth.UpdateAccount)
				r.Delete("/users", deps.Auth.DeleteAccount)
			})

			r.Group(func(r chi.Router) {
				r.Use(deps.Guard.RequireRefresh)
				r.Post("/refresh-token", deps.Auth.Refresh)
			})
		})

		r.Route("/shopping-lists", func(r chi.Router) {
			r.Use(deps.Guard.RequireAccess)

			r.Get("/", deps.Lists.List)
			r.Post("/", deps.Lists.Create)
			r.Delete("/", deps.Lists.DeleteAll)
			r.Get("/search", deps.Lists.Search)

			r.Route("/{listID}", func(r chi.Router) {
				r.Get("/", deps.Lists.Get)
				r.Put("/", deps.Lists.Update)
				r.Delete("/", deps.Lists.Delete)

				r.Route("/shopping-items", func(r chi.Router) {
					r.Get("/", deps.Items.List)
					r.Post("/", deps.Items.Create)

					r.Route("/{itemID}", func(r chi.Router) {
						r.Get("/", deps.Items.Get)
						r.Put("/", deps.Items.Update)
						r.Delete("/", deps.Items.Delete)
					})
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
