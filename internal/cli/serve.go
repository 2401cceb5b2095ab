package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpadapter "github.com/acelabs/ace/internal/adapters/http"
	"github.com/acelabs/ace/internal/config"
)

// ServeOptions are the flags of the serve command.
type ServeOptions struct {
	ConfigPath string
	Debug      bool

	// Addr overrides the configured listen address.
	Addr string
}

// RunServe exposes the assistant over HTTP until interrupted.
func RunServe(opts ServeOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger, logCloser := createLogger(cfg.Logging, opts.Debug)
	defer logCloser.Close()

	assistant, metrics, err := buildAssistant(cfg, logger)
	if err != nil {
		return err
	}

	store, err := buildStore(cfg.Store)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}

	handler := httpadapter.NewHandler(assistant,
		httpadapter.WithLogger(logger),
		httpadapter.WithMetricsHandler(metrics.Handler()),
		httpadapter.WithTranscriptStore(store),
	)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-sigCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		printSystemMessage("Shutting down...")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}
