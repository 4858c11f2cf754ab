// Package httpapi exposes the PlantKeeper REST API over echo.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmitrijs2005/plantkeeper/internal/logging"
	"github.com/dmitrijs2005/plantkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
	"github.com/dmitrijs2005/plantkeeper/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ResolveUserID(ctx context.Context, email string) (int64, error)
}

type LinkService interface {
	Link(ctx context.Context, userID, plantID, potID int64) error
	Unlink(ctx context.Context, userID, plantID, potID int64) error
}

type PlantService interface {
	Create(ctx context.Context, userID int64, name string) (*models.Plant, error)
	List(ctx context.Context, userID int64) ([]models.Plant, error)
	Get(ctx context.Context, userID, plantID int64) (*models.Plant, error)
	Rename(ctx context.Context, userID, plantID int64, name string) (*models.Plant, error)
	Delete(ctx context.Context, userID, plantID int64) error
}

type PotService interface {
	Create(ctx context.Context, userID int64) (*models.PotView, error)
	List(ctx context.Context, userID int64) ([]models.PotView, error)
	Get(ctx context.Context, userID, potID int64) (*models.PotView, error)
}

type MeasurementService interface {
	Record(ctx context.Context, userID, potID int64, m models.Measurement) (*models.Measurement, error)
	List(ctx context.Context, userID, potID int64) ([]models.Measurement, error)
}

type PhotoService interface {
	RequestUpload(ctx context.Context, userID, plantID int64) (*services.PhotoURL, error)
	Complete(ctx context.Context, userID, plantID, photoID int64) (*models.Photo, error)
	List(ctx context.Context, userID, plantID int64) ([]services.PhotoURL, error)
}

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the API delegates to.
type Deps struct {
	Auth         AuthService
	Links        LinkService
	Plants       PlantService
	Pots         PotService
	Measurements MeasurementService
	Photos       PhotoService
	Tokens       TokenVerifier
	DB           Pinger
	Metrics      *metrics.Metrics
}

type Server struct {
	address string
	echo    *echo.Echo
	logger  logging.Logger
	deps    Deps
}

func NewServer(address string, l logging.Logger, deps Deps) *Server {
	s := &Server{
		address: address,
		echo:    echo.New(),
		logger:  l.With("module", "http_server"),
		deps:    deps,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.handleEchoError
	s.routes()
	return s
}

// Handler returns the routed echo instance.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) routes() {
	e := s.echo
	e.Use(requestID)
	if s.deps.Metrics != nil {
		e.Use(s.observe)
		e.GET("/metrics", echo.WrapHandler(s.deps.Metrics.Handler()))
	}
	e.Use(s.requestLogger)
	e.Use(middleware.Recover())
	e.GET("/health", s.health)

	api := e.Group("/api/v1")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	guard := NewGuard(s.deps.Tokens)
	authed := api.Group("", guard.Middleware, s.resolveIdentity)

	authed.POST("/link", s.link)
	authed.DELETE("/link", s.unlink)

	authed.POST("/plants", s.createPlant)
	authed.GET("/plants", s.listPlants)
	authed.GET("/plants/:id", s.getPlant)
	authed.PUT("/plants/:id", s.renamePlant)
	authed.DELETE("/plants/:id", s.deletePlant)

	authed.POST("/plants/:id/photos", s.requestPhotoUpload)
	authed.GET("/plants/:id/photos", s.listPhotos)
	authed.POST("/plants/:id/photos/:photoId/complete", s.completePhoto)

	authed.POST("/pots", s.createPot)
	authed.GET("/pots", s.listPots)
	authed.GET("/pots/:id", s.getPot)

	authed.POST("/pots/:id/measurements", s.recordMeasurement)
	authed.GET("/pots/:id/measurements", s.listMeasurements)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
