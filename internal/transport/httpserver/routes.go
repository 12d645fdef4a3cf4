package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"scorekeeper/internal/config"
	"scorekeeper/internal/transport/httpserver/handler"
	"scorekeeper/internal/transport/httpserver/middleware"
	"scorekeeper/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	if cfg.HTTP.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.HTTP.RequestTimeout))
	}
	r.Use(middleware.NewCORS(cfg.HTTP.AllowedOrigins))

	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := middleware.NewMetrics(registry)
		r.Use(metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	tokenAuth := middleware.NewTokenAuth(handlers.Tokens, log)
	loginLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.LoginPerSecond), cfg.RateLimit.LoginBurst)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Get("/courses", handlers.ListCourses)
		r.Post("/course", handlers.CreateCourse)
		r.Get("/courses/{courseId}", handlers.GetCourse)
		r.Put("/courses/{courseId}", handlers.UpdateCourse)
		r.Delete("/courses/{courseId}", handlers.DeleteCourse)

		r.Get("/courses/{courseId}/layouts", handlers.ListLayouts)
		r.Post("/courses/{courseId}/layout", handlers.CreateLayout)
		r.Get("/courses/{courseId}/layouts/{layoutId}", handlers.GetLayout)
		r.Put("/courses/{courseId}/layouts/{layoutId}", handlers.UpdateLayout)
		r.Delete("/courses/{courseId}/layouts/{layoutId}", handlers.DeleteLayout)

		r.Post("/user", handlers.RegisterUser)
		r.Get("/users/{userId}", handlers.GetUser)
		r.Put("/users/{userId}", handlers.UpdateUser)
		r.Delete("/users/{userId}", handlers.DeleteUser)

		r.Get("/users/{userId}/scores", handlers.ListScoreCards)
		r.Post("/users/{userId}/score", handlers.CreateScoreCard)
		r.Get("/users/{userId}/scores/{scoreId}", handlers.GetScoreCard)
		r.Put("/users/{userId}/scores/{scoreId}", handlers.UpdateScoreCard)
		r.Delete("/users/{userId}/scores/{scoreId}", handlers.DeleteScoreCard)

		r.With(middleware.RateLimit(loginLimiter)).Post("/login", handlers.Login)
		r.Post("/logout", handlers.Logout)

		r.Group(func(r chi.Router) {
			r.Use(tokenAuth.Middleware)

			r.Get("/auth/me", handlers.Me)
		})
	})

	return r
}
