package wire

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"library-catalog/internal/adaptor"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/usecase"
	"library-catalog/internal/view"
	"library-catalog/pkg/middleware"
	"library-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// PingFunc reports whether the backing store is reachable.
type PingFunc func(ctx context.Context) error

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router over repo.
func Wiring(
	repo *repository.Repository,
	cache usecase.GenreListCache,
	ping PingFunc,
	config *utils.Config,
	logger *zap.Logger,
) (*App, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	service := usecase.NewService(repo, cache, logger)
	handler := adaptor.NewHandler(service, renderer, config.App.Debug, logger)

	return &App{
		Router: setupRouter(handler, ping, config, logger),
	}, nil
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	ping PingFunc,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.LimitFormBody(config.App.MaxFormBytes))

	wireGenre(r, handler.Genre)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.Redirect(w, r, "/catalog/genres")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			logger.Warn("Health check failed",
				zap.Error(err),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			)
			utils.ResponseUnavailable(w, "unavailable", map[string]string{"store": "store unreachable"})
			return
		}
		utils.ResponseSuccess(w, "OK", map[string]string{"store": config.App.Store})
	})

	return r
}
