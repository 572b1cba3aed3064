package health

import (
	"chappbooking/infras/otel"
	"chappbooking/infras/postgres"
	"chappbooking/shared/cache"
	"chappbooking/shared/constant"
	"chappbooking/transport/http/response"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const checkTimeout = 3 * time.Second

// Check is a named dependency health check.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Handler struct {
	checks []Check
	otel   otel.Otel
}

func New(db *postgres.Connection, cache cache.RedisCache, otel otel.Otel) Handler {
	return NewWithChecks(otel,
		Check{Name: "postgres", Ping: db.Ping},
		Check{Name: "redis", Ping: cache.Ping},
	)
}

func NewWithChecks(otel otel.Otel, checks ...Check) Handler {
	return Handler{
		checks: checks,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports whether every dependency answers.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	for _, check := range handler.checks {
		if err := check.Ping(ctx); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("dependency", check.Name).Msg("health check failed")

			response.WithUnhealthy(w)

			return
		}
	}

	response.WithMessage(w, http.StatusOK, constant.ResponseMessageHealthy)
}
