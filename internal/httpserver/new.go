package httpserver

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"engineering-sync/internal/auth"
	"engineering-sync/internal/bulletin"
	"engineering-sync/internal/subscription"
	"engineering-sync/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Bulletin domain
	uc     bulletin.UseCase
	repo   subscription.Repository
	tokens *auth.Manager

	// Admin basic-auth gate
	adminUser string
	adminPass string
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	UseCase bulletin.UseCase
	Repo    subscription.Repository
	Tokens  *auth.Manager

	AdminUser string
	AdminPass string
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.Default(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		uc:          cfg.UseCase,
		repo:        cfg.Repo,
		tokens:      cfg.Tokens,
		adminUser:   cfg.AdminUser,
		adminPass:   cfg.AdminPass,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.uc == nil {
		return errors.New("bulletin usecase is required")
	}
	return nil
}

// Run registers all routes and blocks serving HTTP.
func (srv HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return err
	}
	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
