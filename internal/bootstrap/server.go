package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"flightdesk/api"
	"flightdesk/config"
	"flightdesk/internal/service/airports"
	"flightdesk/internal/service/flights"
	"flightdesk/internal/service/ledger"
	"flightdesk/internal/service/owners"
	"flightdesk/internal/service/users"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Services struct {
	Flights  flights.FlightUseCase
	Ledger   ledger.LedgerUseCase
	Airports airports.AirportUseCase
	Owners   owners.OwnerUseCase
	Users    users.UserUseCase
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	api.NewFlightHandler(svc.Flights, svc.Ledger).Register(v1.Group("/flights"))
	api.NewBookingHandler(svc.Ledger).Register(v1.Group("/bookings"))
	api.NewAirportHandler(svc.Airports).Register(v1.Group("/airports"))
	api.NewOwnerHandler(svc.Owners).Register(v1.Group("/owners"))
	api.NewUserHandler(svc.Users).Register(v1.Group("/users"))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
