// Package microloan предоставляет маршруты для основного приложения.
package microloan

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/microlend/microloan/internal/cache"
	admincibil "github.com/microlend/microloan/internal/http/handlers/admin/cibil"
	"github.com/microlend/microloan/internal/http/handlers/admin/listloans"
	"github.com/microlend/microloan/internal/http/handlers/admin/listusers"
	"github.com/microlend/microloan/internal/http/handlers/admin/loanstatus"
	adminregister "github.com/microlend/microloan/internal/http/handlers/admin/register"
	"github.com/microlend/microloan/internal/http/handlers/admin/removeuser"
	"github.com/microlend/microloan/internal/http/handlers/auth/login"
	"github.com/microlend/microloan/internal/http/handlers/auth/register"
	"github.com/microlend/microloan/internal/http/handlers/health"
	"github.com/microlend/microloan/internal/http/handlers/loan/apply"
	"github.com/microlend/microloan/internal/http/handlers/loan/status"
	usercibil "github.com/microlend/microloan/internal/http/handlers/user/cibil"
	"github.com/microlend/microloan/internal/http/handlers/user/profile"
	"github.com/microlend/microloan/internal/http/middlewarectx"
	"github.com/microlend/microloan/internal/models"
	authservice "github.com/microlend/microloan/internal/services/auth"
	loanservice "github.com/microlend/microloan/internal/services/loan"
	userservice "github.com/microlend/microloan/internal/services/user"
	"github.com/microlend/microloan/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	loanService *loanservice.LoanService,
	userService *userservice.UserService,
	db *repository.Storage, rabbit *amqp.Connection, cacheRedis *cache.Cache) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/admin/register", adminregister.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db, rabbit, cacheRedis).ServeHTTP)

		// Группа пользователя
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RequireRole(logger, models.RoleUser))
			r.Post("/loans", apply.New(logger, loanService, userService).ServeHTTP)
			r.Get("/loans/{id}", status.New(logger, loanService, userService).ServeHTTP)
			r.Get("/profile", profile.New(logger, userService).ServeHTTP)
			r.Get("/cibil", usercibil.New(logger, userService).ServeHTTP)
		})

		// Группа администратора
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
			r.Get("/admin/users", listusers.New(logger, userService).ServeHTTP)
			r.Get("/admin/loans", listloans.New(logger, loanService).ServeHTTP)
			r.Put("/admin/loans/{id}/status", loanstatus.New(logger, loanService).ServeHTTP)
			r.Put("/admin/users/{uid}/cibil", admincibil.New(logger, userService).ServeHTTP)
			r.Delete("/admin/users/{uid}", removeuser.New(logger, userService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
