package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fbarbosa/hr-management/internal"
	"github.com/fbarbosa/hr-management/internal/absence"
	absencepg "github.com/fbarbosa/hr-management/internal/absence/postgres"
	"github.com/fbarbosa/hr-management/internal/accesscontrol"
	accesscontrolpg "github.com/fbarbosa/hr-management/internal/accesscontrol/postgres"
	"github.com/fbarbosa/hr-management/internal/accesslog"
	accesslogpg "github.com/fbarbosa/hr-management/internal/accesslog/postgres"
	"github.com/fbarbosa/hr-management/internal/auth"
	authpg "github.com/fbarbosa/hr-management/internal/auth/postgres"
	"github.com/fbarbosa/hr-management/internal/callup"
	calluppg "github.com/fbarbosa/hr-management/internal/callup/postgres"
	"github.com/fbarbosa/hr-management/internal/company"
	companypg "github.com/fbarbosa/hr-management/internal/company/postgres"
	"github.com/fbarbosa/hr-management/internal/employee"
	employeepg "github.com/fbarbosa/hr-management/internal/employee/postgres"
	"github.com/fbarbosa/hr-management/internal/observability"
	"github.com/fbarbosa/hr-management/internal/screen"
	screenpg "github.com/fbarbosa/hr-management/internal/screen/postgres"
	"github.com/fbarbosa/hr-management/internal/transport/rest"
	"github.com/fbarbosa/hr-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Recorder *accesslog.Recorder
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		// Flush buffered audit entries before the DB goes away.
		deps.Recorder.Close()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGormDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	if config.Observability.Metrics.Enabled {
		observability.Init()
	}

	// Authentication
	tokens := auth.NewJWTTokenGenerator(
		config.Security.JWTAccessSecret,
		config.Security.JWTRefreshSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authRepo := authpg.NewRepository(gormDB)
	authService := auth.NewService(authRepo, tokens, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	// Access control
	grants := accesscontrolpg.NewGrantRepository(gormDB)
	sessions := accesscontrol.NewMemorySessionStore()
	resolver := accesscontrol.NewResolver(grants, sessions, config.AccessControl.PersistCompanySelection)
	gate := accesscontrol.NewGate(accesscontrol.RoutesFromConfig(config.AccessControl.ScreenRoutes), grants)
	guard := accesscontrol.NewMiddleware(resolver, gate)
	accessControlHandler := accesscontrol.NewHandler(resolver)

	// Audit trail
	accessLogRepo := accesslogpg.NewRepository(gormDB)
	recorder := accesslog.NewRecorder(accessLogRepo, config.AccessControl.AccessLogBufferSize)
	accessLogHandler := accesslog.NewHandler(accessLogRepo)

	// Administration
	companyHandler := company.NewHandler(company.NewService(companypg.NewCompanyRepository(gormDB), log))
	screenHandler := screen.NewHandler(screen.NewService(screenpg.NewScreenRepository(gormDB), log))

	// Tenant-scoped features
	employeeHandler := employee.NewHandler(employee.NewService(employeepg.NewEmployeeRepository(gormDB), log))
	absenceHandler := absence.NewHandler(absence.NewService(absencepg.NewAbsenceRepository(gormDB), log))
	callupHandler := callup.NewHandler(callup.NewService(calluppg.NewCallUpRepository(gormDB), log))

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, config, rest.Handlers{
		Auth:          authHandler,
		AccessControl: accessControlHandler,
		Company:       companyHandler,
		Screen:        screenHandler,
		Employee:      employeeHandler,
		Absence:       absenceHandler,
		CallUp:        callupHandler,
		AccessLog:     accessLogHandler,
	}, guard, recorder, log)

	return &Dependencies{
		Config:   config,
		Logger:   log,
		DB:       db,
		GormDB:   gormDB,
		Router:   router,
		Recorder: recorder,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGormDB layers the ORM over the already-pooled connection so both
// share a single pool.
func initGormDB(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{})
}
