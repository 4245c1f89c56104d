package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/crestline/kitforge/internal/chat"
	"github.com/crestline/kitforge/internal/config"
	"github.com/crestline/kitforge/internal/domain/catalog"
	"github.com/crestline/kitforge/internal/domain/concept"
	"github.com/crestline/kitforge/internal/domain/procurement"
	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/domain/threadsync"
	"github.com/crestline/kitforge/internal/domain/voting"
	"github.com/crestline/kitforge/internal/mcp"
	"github.com/crestline/kitforge/internal/sqlite"
	"github.com/crestline/kitforge/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		logWriter = &lumberjack.Logger{
			Filename:   cfg.Log.Path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			logger.Error("failed to load catalog", "error", err)
			os.Exit(1)
		}
	}

	projectRepo := sqlite.NewProjectRepository(db)

	projectSvc := project.NewService(projectRepo, cat, logger)
	conceptSvc := concept.NewService(projectRepo, cat, logger)
	votingSvc := voting.NewService(projectRepo, logger)
	procurementSvc := procurement.NewService(projectRepo, cat, logger)

	var threads threadsync.ThreadService = noopThreadService{}
	if cfg.Chat.BaseURL != "" {
		threads = chat.NewClient(cfg.Chat.BaseURL, logger)
	}
	synchronizer := threadsync.NewSynchronizer(projectRepo, threads, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects:    projectSvc,
			Concepts:    conceptSvc,
			Voting:      votingSvc,
			Procurement: procurementSvc,
			ThreadSync:  synchronizer,
		},
		Logger: logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
	} else {
		runHTTPMode(logger, mcpServer, projectSvc, cat, cfg.Server.Host, cfg.Server.Port)
	}
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	stdio := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, stdio); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, projects *project.Service, cat *catalog.Store, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := transport.Router(projects, cat, logger)
	router.PathPrefix("/mcp").Handler(mcpHandler)

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// noopThreadService stands in when no chat backend is configured; the
// synchronizer then has nothing to link and nothing to write.
type noopThreadService struct{}

func (noopThreadService) ThreadsByTeam(ctx context.Context, teamID string) ([]threadsync.Thread, error) {
	return nil, nil
}

func (noopThreadService) SetThreadMetadata(ctx context.Context, threadID, key, value string) error {
	return nil
}
