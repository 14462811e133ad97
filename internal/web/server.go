package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/IvanShishkin/permlens/internal/config"
	"github.com/IvanShishkin/permlens/internal/filesystem"
	"github.com/IvanShishkin/permlens/internal/report"
	"github.com/IvanShishkin/permlens/pkg/models"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Analyzer produces an inspection result for a path
type Analyzer interface {
	Analyze(path string) (*models.InspectionResult, error)
}

// QuickPath is a one-click path offered on the "Server Path" tab
type QuickPath struct {
	Label string
	Path  string
}

// Server serves the permission analyzer web UI and JSON API
type Server struct {
	config   *config.Config
	analyzer Analyzer
	stager   *filesystem.Stager
	logger   *zap.Logger
	tmpl     *template.Template
	quick    []QuickPath
}

// NewServer creates a new web server
func NewServer(cfg *config.Config, analyzer Analyzer, stager *filesystem.Stager, logger *zap.Logger) (*Server, error) {
	tmpl, err := report.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to load report templates: %w", err)
	}
	if tmpl, err = tmpl.ParseFS(templateFS, "templates/*.tmpl"); err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}

	return &Server{
		config:   cfg,
		analyzer: analyzer,
		stager:   stager,
		logger:   logger,
		tmpl:     tmpl,
		quick:    quickPaths(cfg.QuickPaths),
	}, nil
}

// quickPaths builds button labels and expands "~" in the configured paths
func quickPaths(paths []string) []QuickPath {
	quick := make([]QuickPath, 0, len(paths))
	for _, p := range paths {
		var label string
		switch p {
		case ".":
			label = "📁 Current Dir"
		case "~":
			label = "🏠 Home"
		default:
			label = "📁 " + p
		}
		quick = append(quick, QuickPath{Label: label, Path: filesystem.ExpandHome(p)})
	}
	return quick
}

// Handler returns the routed handler wrapped in request middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /inspect", s.handleInspect)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /api/inspect", s.handleAPIInspect)

	return s.withRequestID(s.withLogging(s.withRecovery(mux)))
}

// Run serves on the configured address until ctx is cancelled or a
// termination signal arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Server.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		ErrorLog:     zap.NewStdLog(s.logger),
	}

	s.logger.Info("Web UI started", zap.String("address", listener.Addr().String()))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Context cancelled, shutting down")
	case sig := <-sigCh:
		s.logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
			return err
		}
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	s.logger.Info("Web UI stopped")
	return nil
}
