package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/territoria/territoria/internal/config"
	"github.com/territoria/territoria/internal/db"
	"github.com/territoria/territoria/internal/geo"
	"github.com/territoria/territoria/internal/repository"
	"github.com/territoria/territoria/internal/service"
	"github.com/territoria/territoria/internal/storage"
)

// App holds the explicitly constructed dependencies; nothing here is ambient
// global state.
type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	UserRepository repository.UserRepository
	EmailService   *service.EmailService
	AuthService    *service.AuthService
	AdminService   *service.AdminService
	AvatarService  *service.AvatarService
	GeoGateway     geo.Gateway
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	userRepository := repository.NewUserRepository(database)

	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)

	authService := service.NewAuthService(
		userRepository,
		emailService,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.OTPExpiry,
	)
	adminService := service.NewAdminService(userRepository, emailService)
	avatarService := service.NewAvatarService(userRepository, fileStorage)

	geoGateway := geo.NewScriptGateway(
		cfg.GeoInterpreter,
		cfg.GeoBulkScript,
		cfg.GeoPointScript,
		cfg.GeoTimeout,
	)

	return &App{
		Cfg:            cfg,
		DB:             database,
		UserRepository: userRepository,
		EmailService:   emailService,
		AuthService:    authService,
		AdminService:   adminService,
		AvatarService:  avatarService,
		GeoGateway:     geoGateway,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
