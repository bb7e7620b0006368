package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/microlend/microloan/internal/http/response"
	"github.com/microlend/microloan/internal/models"
)

// RequireRole возвращает middleware, который пропускает запрос дальше,
// только если роль в контексте совпадает с требуемой. Несовпадение роли
// у аутентифицированного запроса — это 403, а не 401.
func RequireRole(log *slog.Logger, required models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(models.Role)
			if !ok {
				log.Error("role missing in request context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			if role != required {
				log.Error("forbidden", slog.String("role", role.String()), slog.String("required", required.String()))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
