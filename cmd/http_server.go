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
	"github.com/spf13/cobra"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/auth"
	"github.com/frahmantamala/leave-management/internal/calendar"
	"github.com/frahmantamala/leave-management/internal/core/events"
	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/frahmantamala/leave-management/internal/leave/memory"
	leaveSQLite "github.com/frahmantamala/leave-management/internal/leave/sqlite"
	"github.com/frahmantamala/leave-management/internal/manager"
	"github.com/frahmantamala/leave-management/internal/notification"
	"github.com/frahmantamala/leave-management/internal/seed"
	"github.com/frahmantamala/leave-management/internal/transport/rest"
	"github.com/frahmantamala/leave-management/pkg/logger"
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
	Config              *internal.Config
	Logger              *slog.Logger
	Router              *chi.Mux
	Store               leave.Repository
	AuthHandler         *auth.Handler
	ManagerHandler      *manager.Handler
	LeaveHandler        *leave.Handler
	CalendarHandler     *calendar.Handler
	NotificationHandler *notification.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.Store,
		deps.Config.Storage.Driver,
		deps.AuthHandler,
		deps.ManagerHandler,
		deps.LeaveHandler,
		deps.CalendarHandler,
		deps.NotificationHandler,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Env)
	lg := logger.LoggerWrapper()

	data := seed.Default()
	if config.Seed.File != "" {
		data, err = seed.Load(config.Seed.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed file: %w", err)
		}
	}

	managers, err := data.BuildManagers(config.Security.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to build seed managers: %w", err)
	}

	leaves, err := data.BuildLeaves()
	if err != nil {
		return nil, fmt.Errorf("failed to build seed leave requests: %w", err)
	}

	store, err := initStore(config.Storage, leaves)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	managerService := manager.NewService(manager.NewMemoryRepository(managers), lg)

	bus := events.NewEventBus(lg)
	notificationService := notification.NewService(lg)
	bus.Subscribe(events.EventTypeLeaveCreated, notificationService.HandleLeaveCreated)
	bus.Subscribe(events.EventTypeLeaveStatusChanged, notificationService.HandleLeaveStatusChanged)

	leaveService := leave.NewService(store, managerService, bus, lg)

	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(managerService, tokenGenerator)

	editors := calendar.NewRegistry(leaveService)

	return &Dependencies{
		Config:              config,
		Logger:              lg,
		Router:              chi.NewRouter(),
		Store:               store,
		AuthHandler:         auth.NewHandler(authService, managerService),
		ManagerHandler:      manager.NewHandler(managerService),
		LeaveHandler:        leave.NewHandler(leaveService),
		CalendarHandler:     calendar.NewHandler(leaveService, editors),
		NotificationHandler: notification.NewHandler(notificationService),
	}, nil
}

// initStore picks the repository backend. Both hold state for the life of
// the process only.
func initStore(cfg internal.StorageConfig, seedLeaves []*leave.LeaveRequest) (leave.Repository, error) {
	switch cfg.Driver {
	case internal.StorageDriverSQLite:
		return leaveSQLite.NewRepository(cfg.DSN, seedLeaves)
	default:
		return memory.NewRepository(seedLeaves), nil
	}
}
