package app

import (
	"net/http"

	"gorm.io/gorm"

	"scorekeeper/internal/auth"
	"scorekeeper/internal/config"
	"scorekeeper/internal/db"
	coursedomain "scorekeeper/internal/domain/course"
	layoutdomain "scorekeeper/internal/domain/layout"
	scorecarddomain "scorekeeper/internal/domain/scorecard"
	userdomain "scorekeeper/internal/domain/user"
	courserepo "scorekeeper/internal/repository/course"
	"scorekeeper/internal/repository/inmemory"
	layoutrepo "scorekeeper/internal/repository/layout"
	scorecardrepo "scorekeeper/internal/repository/scorecard"
	userrepo "scorekeeper/internal/repository/user"
	"scorekeeper/internal/transport/httpserver"
	"scorekeeper/internal/transport/httpserver/handler"
	"scorekeeper/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

// New opens the database, applies migrations when enabled and wires the
// HTTP server.
func New(cfg config.Config, log logger.Logger) (*App, error) {
	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(dbConn); err != nil {
			_ = db.Close(dbConn)
			return nil, err
		}
	}

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, NewHandlers(cfg, dbConn, log), log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

type Services struct {
	Courses    *coursedomain.Service
	Layouts    *layoutdomain.Service
	Users      *userdomain.Service
	ScoreCards *scorecarddomain.Service
}

// NewServices builds the gorm repositories and the domain services on top
// of an open database.
func NewServices(cfg config.Config, dbConn *gorm.DB) Services {
	return Services{
		Courses: coursedomain.NewService(courserepo.NewGorm(dbConn)).
			WithListCache(inmemory.NewCourseListCache(), cfg.Cache.CourseListTTL),
		Layouts:    layoutdomain.NewService(layoutrepo.NewGorm(dbConn)),
		Users:      userdomain.NewService(userrepo.NewGorm(dbConn), auth.NewBcryptHasher(auth.DefaultCost)),
		ScoreCards: scorecarddomain.NewService(scorecardrepo.NewGorm(dbConn)),
	}
}

func NewHandlers(cfg config.Config, dbConn *gorm.DB, log logger.Logger) *handler.Handlers {
	services := NewServices(cfg, dbConn)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	return handler.New(services.Courses, services.Layouts, services.Users, services.ScoreCards, tokens, cfg.Auth.SecureCookie, log)
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return db.Close(a.db)
}
