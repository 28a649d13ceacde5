package bootstrap

import (
	"context"
	"fmt"

	"github.com/teamly/teamly/internal/api"
	"github.com/teamly/teamly/internal/api/handler"
	"github.com/teamly/teamly/internal/auth"
	"github.com/teamly/teamly/internal/pkg/config"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/pkg/postgres"
	"github.com/teamly/teamly/internal/repository"
	"github.com/teamly/teamly/internal/service"
)

type Application struct {
	Config   *config.Config
	Logger   *logger.Logger
	Postgres *postgres.Connection
	Migrator *postgres.Migrator

	Tokens *auth.TokenManager
	Hasher *auth.PasswordHasher

	UserRepo       repository.UserRepository
	TeamRepo       repository.TeamRepository
	TaskRepo       repository.TaskRepository
	MeetingRepo    repository.MeetingRepository
	EvaluationRepo repository.EvaluationRepository

	AuthService       *service.AuthService
	UserService       *service.UserService
	TeamService       *service.TeamService
	TaskService       *service.TaskService
	MeetingService    *service.MeetingService
	EvaluationService *service.EvaluationService
	CalendarService   *service.CalendarService

	HTTPServer *api.HTTPServer
}

func New() (*Application, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: cfg.LogAddSource,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	pg, err := postgres.New(log, &postgres.Config{
		Host:              cfg.DatabaseHost,
		Port:              cfg.DatabasePort,
		Username:          cfg.DatabaseUser,
		Password:          cfg.DatabasePassword,
		Database:          cfg.DatabaseName,
		Schema:            cfg.DatabaseSchema,
		SSLMode:           cfg.DatabaseSSLMode,
		MaxConns:          cfg.DatabaseMaxConns,
		MinConns:          cfg.DatabaseMinConns,
		MaxConnLifetime:   cfg.DatabaseMaxConnLifetime,
		MaxConnIdleTime:   cfg.DatabaseMaxConnIdleTime,
		HealthCheckPeriod: cfg.DatabaseHealthCheckPeriod,
		ConnectTimeout:    cfg.DatabaseConnectTimeout,
		AcquireTimeout:    cfg.DatabaseAcquireTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres connection: %w", err)
	}

	return &Application{
		Config:   cfg,
		Logger:   log,
		Postgres: pg,
		Tokens:   auth.NewTokenManager(cfg.SecretKey, cfg.AccessTokenTTL),
		Hasher:   auth.NewPasswordHasher(),
	}, nil
}

func (app *Application) Init(ctx context.Context) error {
	app.Logger.Info("initializing application")

	if err := app.Postgres.Connect(ctx); err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}

	app.Migrator = postgres.NewMigrator(app.Postgres.Pool(), &postgres.MigrationConfig{
		Timeout:   app.Config.DatabaseMigrationTimeout,
		TableName: app.Config.DatabaseMigrationTable,
		Enabled:   app.Config.DatabaseMigrationEnabled,
	}, app.Logger)

	if err := app.Migrator.RunMigrations(ctx); err != nil {
		return fmt.Errorf("database migrations failed: %w", err)
	}

	app.UserRepo = repository.NewUserRepo(app.Postgres.Pool(), app.Logger)
	app.TeamRepo = repository.NewTeamRepo(app.Postgres.Pool(), app.Logger)
	app.TaskRepo = repository.NewTaskRepo(app.Postgres.Pool(), app.Logger)
	app.MeetingRepo = repository.NewMeetingRepo(app.Postgres.Pool(), app.Logger)
	app.EvaluationRepo = repository.NewEvaluationRepo(app.Postgres.Pool(), app.Logger)

	app.AuthService = service.NewAuthService(app.UserRepo, app.Hasher, app.Tokens, app.Logger)
	app.UserService = service.NewUserService(app.UserRepo, app.Logger)
	app.TeamService = service.NewTeamService(app.TeamRepo, app.UserRepo, app.Logger)
	app.TaskService = service.NewTaskService(app.TaskRepo, app.UserRepo, app.Logger)
	app.MeetingService = service.NewMeetingService(app.MeetingRepo, app.UserRepo, app.TeamRepo, app.Logger)
	app.EvaluationService = service.NewEvaluationService(app.EvaluationRepo, app.TaskRepo, app.Logger)
	app.CalendarService = service.NewCalendarService(app.TaskRepo, app.MeetingRepo, app.Logger)

	handlers := &api.Handlers{
		Auth:       handler.NewAuthHandler(app.AuthService, app.Logger),
		Team:       handler.NewTeamHandler(app.TeamService, app.Logger),
		User:       handler.NewUserHandler(app.UserService, app.Logger),
		Task:       handler.NewTaskHandler(app.TaskService, app.Logger),
		Meeting:    handler.NewMeetingHandler(app.MeetingService, app.Logger),
		Evaluation: handler.NewEvaluationHandler(app.EvaluationService, app.Logger),
		Calendar:   handler.NewCalendarHandler(app.CalendarService, app.Logger),
	}

	serverConfig := &api.ServerConfig{
		Host:         app.Config.ServerHost,
		Port:         app.Config.ServerPort,
		ReadTimeout:  app.Config.ServerReadTimeout,
		WriteTimeout: app.Config.ServerWriteTimeout,
		IdleTimeout:  app.Config.ServerIdleTimeout,
	}

	app.HTTPServer = api.NewHTTPServer(serverConfig, handlers, app.Tokens, app.UserRepo, app.Logger)

	if err := app.HTTPServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start http server: %w", err)
	}

	app.Logger.Info("application initialized successfully")
	return nil
}

func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("shutting down application")

	if app.HTTPServer != nil {
		if err := app.HTTPServer.Stop(ctx); err != nil {
			app.Logger.Error("error stopping http server", "error", err)
		}
	}

	app.Postgres.Close()

	app.Logger.Info("application shutdown completed")
	return nil
}

func (app *Application) Health(ctx context.Context) error {
	if err := app.Postgres.Health(ctx); err != nil {
		return fmt.Errorf("postgres health check failed: %w", err)
	}
	if err := app.Migrator.Health(ctx); err != nil {
		return fmt.Errorf("migrator health check failed: %w", err)
	}
	return nil
}
