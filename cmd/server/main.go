package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/promptdesk/assistant/internal/api"
	"github.com/promptdesk/assistant/internal/config"
	"github.com/promptdesk/assistant/internal/core"
	"github.com/promptdesk/assistant/internal/eventlog"
	"github.com/promptdesk/assistant/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "assistant",
		Short:        "Web front end that forwards prompts to Gemini and records feedback",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(config.AppConfig)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(config.AppConfig)
		},
	})
	root.AddCommand(newFeedbackCmd())
	return root
}

func runServer(cfg config.Config) error {
	// Setup logging
	logger, logCloser := eventlog.Open(cfg.EventLogFile, cfg.ErrorLogFile, os.Stdout)
	defer logCloser.Close()
	eventlog.SetLevel(logger, cfg.LogLevel)
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.Debug("Service starting in DEBUG mode")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Errorf("Failed to create data directory %s: %v", cfg.DataDir, err)
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	logger.Info("Application started and data directory ensured.")

	// Initialize feedback store
	feedbackStore, closeStore, err := openFeedbackStore(cfg, logger)
	if err != nil {
		logger.Errorf("Failed to initialize feedback store: %v", err)
		return err
	}
	defer closeStore()

	// Initialize LLM service
	llmService := core.NewLLMService(cfg.GoogleAPIKey, cfg.GeminiModel, logger)
	defer llmService.Close()

	assistant := core.NewAssistantService(llmService, feedbackStore, logger)

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(assistant, logger)
	router := api.NewRouter(apiHandler)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		logger.Errorf("Could not listen on %s: %v", serverAddr, err)
		return err
	case <-quit:
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logger.Info("Server exiting gracefully")
	return nil
}

// openFeedbackStore picks the backend named by FEEDBACK_BACKEND.
func openFeedbackStore(cfg config.Config, logger logrus.FieldLogger) (store.FeedbackStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.FeedbackBackend {
	case config.BackendSQLite:
		s, err := store.NewSQLiteFeedbackStore(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case config.BackendRedis:
		s, err := store.NewRedisFeedbackStore(cfg.RedisURL, logger)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case config.BackendMemory:
		return store.NewMemoryFeedbackStore(logger), noop, nil
	default:
		return store.NewJSONFeedbackStore(cfg.FeedbackFile, logger), noop, nil
	}
}

func printFeedback(w io.Writer, records []store.FeedbackRecord) error {
	data, err := jsonIndent(records)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
