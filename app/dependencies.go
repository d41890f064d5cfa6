package app

import (
	"fmt"

	"github.com/upb/cafe-directory/config"
	"github.com/upb/cafe-directory/internal/observability"
	"github.com/upb/cafe-directory/middleware"
	"github.com/upb/cafe-directory/repositories"
	"github.com/upb/cafe-directory/repositories/sqlite"
	"github.com/upb/cafe-directory/services"
	"github.com/upb/cafe-directory/web"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies holds all application dependencies. This is the central
// wiring point: every service and middleware is constructed explicitly
// here and passed into the handlers, never referenced as a package
// global.
type Dependencies struct {
	// Infrastructure
	Config   *config.Config
	DB       *gorm.DB
	Logger   *zap.Logger
	Renderer *web.Renderer
	Metrics  *observability.Metrics

	// Repositories
	Cafes    repositories.CafeRepository
	Users    repositories.UserRepository
	Messages repositories.MessageRepository
	Sessions repositories.SessionRepository

	// Services
	AuthService    *services.AuthService
	CafeService    *services.CafeService
	MessageService *services.MessageService
	UserService    *services.UserService

	// Middleware
	Identity *middleware.IdentityMiddleware
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	db, err := sqlite.Open(cfg.Database.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize templates: %w", err)
	}

	deps := &Dependencies{
		Config:   cfg,
		DB:       db,
		Logger:   logger,
		Renderer: renderer,
		Metrics:  observability.NewMetrics(),
	}

	deps.Cafes = sqlite.NewCafeRepository(db, logger)
	deps.Users = sqlite.NewUserRepository(db, logger)
	deps.Messages = sqlite.NewMessageRepository(db, logger)
	deps.Sessions = sqlite.NewSessionRepository(db, logger)

	deps.AuthService = services.NewAuthService(deps.Users, deps.Sessions, cfg.Session.Secret, cfg.Session.TTL, logger)
	deps.CafeService = services.NewCafeService(deps.Cafes, logger)
	deps.MessageService = services.NewMessageService(deps.Messages, logger)
	deps.UserService = services.NewUserService(deps.Users, deps.Sessions, logger)

	deps.Identity = middleware.NewIdentityMiddleware(deps.AuthService, logger)

	logger.Info("all dependencies initialized")
	return deps, nil
}
