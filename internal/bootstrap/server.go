package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avelin/flightstore/api"
	"github.com/avelin/flightstore/config"
	"github.com/avelin/flightstore/internal/auth"
	"github.com/avelin/flightstore/internal/middleware"
	"github.com/avelin/flightstore/internal/service/cart"
	"github.com/avelin/flightstore/internal/service/flights"
	"github.com/avelin/flightstore/internal/service/orders"
	"github.com/avelin/flightstore/internal/service/reviews"
	"github.com/avelin/flightstore/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps collects everything the HTTP surface needs.
type Deps struct {
	Pool    *pgxpool.Pool
	Tokens  *auth.TokenManager
	Flights flights.FlightUseCase
	Carts   cart.CartUseCase
	Orders  orders.OrderUseCase
	Users   users.UserUseCase
	Reviews reviews.ReviewUseCase
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	router := NewRouter(deps)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires every handler under /api, matching the public surface of
// the storefront.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.Default()

	requireAuth := middleware.RequireAuth(deps.Tokens)

	root := router.Group("/api")
	root.GET("/health", healthHandler(deps.Pool))

	authPublic := root.Group("/auth")
	authProtected := root.Group("/auth", requireAuth)
	api.NewAuthHandler(deps.Users).Register(authPublic, authProtected)

	api.NewFlightHandler(deps.Flights).Register(root.Group("/flights"))
	api.NewCartHandler(deps.Carts).Register(root.Group("/cart", requireAuth))
	api.NewOrderHandler(deps.Orders).Register(root.Group("/orders", requireAuth))
	api.NewUserHandler(deps.Users).Register(root.Group("/user", requireAuth))

	reviewsPublic := root.Group("/reviews")
	reviewsProtected := root.Group("/reviews", requireAuth)
	api.NewReviewHandler(deps.Reviews).Register(reviewsPublic, reviewsProtected)

	return router
}

func healthHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "connected"})
	}
}
