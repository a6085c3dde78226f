// Package api exposes the catalog, dish and shopping list services over
// HTTP. Routes are versioned under /api/v1 and scoped by profile.
package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/larder/internal/blob"
	"github.com/mesh-intelligence/larder/internal/service"
)

// Config carries the listener settings.
type Config struct {
	Addr string
	Env  string
}

// Pinger reports backend liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP application: services in, chi router out.
type Server struct {
	config   Config
	logger   *zap.SugaredLogger
	catalog  *service.CatalogService
	dishes   *service.DishService
	shopping *service.ShoppingService
	blobs    blob.Store
	db       Pinger
}

// NewServer wires the HTTP server.
func NewServer(
	cfg Config,
	logger *zap.SugaredLogger,
	catalog *service.CatalogService,
	dishes *service.DishService,
	shopping *service.ShoppingService,
	blobs blob.Store,
	db Pinger,
) *Server {
	return &Server{
		config:   cfg,
		logger:   logger,
		catalog:  catalog,
		dishes:   dishes,
		shopping: shopping,
		blobs:    blobs,
		db:       db,
	}
}

func (s *Server) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.healthCheckHandler)

		r.Post("/images", s.uploadImageHandler)
		r.Get("/images/{image_id}", s.getImageHandler)

		r.Route("/profiles/{profile_id}", func(r chi.Router) {
			r.Route("/stores", func(r chi.Router) {
				r.Get("/", s.listStoresHandler)
				r.Post("/", s.createStoreHandler)
				r.Put("/order", s.reorderStoresHandler)
				r.Get("/{store_id}", s.getStoreHandler)
				r.Put("/{store_id}", s.updateStoreHandler)
				r.Delete("/{store_id}", s.removeStoreHandler)
				r.Patch("/{store_id}/color", s.updateStoreColorHandler)
				r.Put("/{store_id}/image", s.updateStoreImageHandler)
				r.Delete("/{store_id}/image", s.removeStoreImageHandler)
			})

			r.Route("/ingredients", func(r chi.Router) {
				r.Get("/", s.listIngredientsHandler)
				r.Post("/", s.createIngredientHandler)
				r.Put("/{ingredient_id}", s.updateIngredientHandler)
				r.Delete("/{ingredient_id}", s.removeIngredientHandler)
			})

			r.Route("/dishes", func(r chi.Router) {
				r.Get("/", s.listDishesHandler)
				r.Get("/detailed", s.listDishesDetailedHandler)
				r.Post("/", s.createDishHandler)
				r.Get("/{dish_id}", s.getDishHandler)
				r.Put("/{dish_id}", s.updateDishHandler)
				r.Delete("/{dish_id}", s.removeDishHandler)
			})

			r.Route("/shopping-list", func(r chi.Router) {
				r.Get("/", s.getShoppingListHandler)
				r.Get("/aggregated", s.getAggregatedListHandler)
				r.Post("/clear", s.clearShoppingListHandler)

				r.Post("/dishes", s.addListDishHandler)
				r.Put("/dishes/{dish_id}", s.setListDishCountHandler)
				r.Delete("/dishes/{dish_id}", s.removeListDishHandler)

				r.Post("/manual", s.addManualIngredientHandler)
				r.Put("/manual/{ingredient_id}", s.setManualQuantityHandler)
				r.Delete("/manual/{ingredient_id}", s.removeManualIngredientHandler)

				r.Post("/exclusions/{ingredient_id}", s.excludeIngredientHandler)
				r.Delete("/exclusions/{ingredient_id}", s.includeIngredientHandler)

				r.Post("/checked/{ingredient_id}", s.checkItemHandler)
				r.Delete("/checked/{ingredient_id}", s.uncheckItemHandler)
				r.Post("/checked/{ingredient_id}/toggle", s.toggleItemHandler)

				r.Post("/misc", s.addMiscItemHandler)
				r.Post("/misc/{item_id}/toggle", s.toggleMiscItemHandler)
				r.Delete("/misc/{item_id}", s.removeMiscItemHandler)
			})
		})
	})

	return r
}

// Run serves HTTP until the context is canceled or a termination signal
// arrives, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.mount(),
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error, 1)
	failed := make(chan struct{})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			s.logger.Infow("signal caught", "signal", sig.String())
		case <-ctx.Done():
			s.logger.Info("context canceled")
		case <-failed:
			return
		}

		drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdown <- srv.Shutdown(drainCtx)
	}()

	s.logger.Infow("server started", "addr", s.config.Addr, "env", s.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		close(failed)
		return err
	}
	if err := <-shutdown; err != nil {
		return err
	}

	s.logger.Infow("server stopped", "addr", s.config.Addr)
	return nil
}
