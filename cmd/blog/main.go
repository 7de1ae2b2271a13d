package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"capstone-blog/internal/blog"
	"capstone-blog/internal/config"
	"capstone-blog/internal/events"
	"capstone-blog/internal/metrics"
	"capstone-blog/internal/server"
	"capstone-blog/internal/store"
	"capstone-blog/internal/worker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	configPath string
	addr       string
	backend    string
	redisAddr  string
	production bool
)

var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "blog - A minimal server-rendered blog",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		return serve(cfg, logger)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func serve(cfg config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup Signal Handling (Ctrl+C)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Setup Manual 'q' input handling
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if scanner.Text() == "q" {
				fmt.Println(" 'q' pressed. Stopping...")
				cancel()
				return
			}
		}
	}()

	// Handle shutdown signals
	go func() {
		select {
		case <-sigChan:
			logger.Info("Shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	st, err := store.Open(cfg.Backend)
	if err != nil {
		return fmt.Errorf("failed to init store: %w", err)
	}
	defer st.Close()

	m := metrics.New()

	var publisher events.Publisher = events.Nop{}
	if cfg.EventsEnabled() {
		q, err := events.NewRedisQueue(cfg.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to init event queue: %w", err)
		}
		defer q.Close()
		publisher = q

		// Start Worker
		w := worker.NewWorker(q, logger, m)
		go w.Start(ctx)
	}

	svc := blog.NewService(st, publisher, logger)
	srv, err := server.NewServer(svc, logger, m)
	if err != nil {
		return fmt.Errorf("failed to init server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	logger.Info("Server running.",
		zap.String("addr", cfg.Addr),
		zap.String("backend", cfg.Backend),
		zap.Bool("events", cfg.EventsEnabled()))
	fmt.Println("Press 'q' + Enter or Ctrl+C to stop.")

	// Block until shutdown
	select {
	case <-ctx.Done():
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	logger.Info("Goodbye!")
	return nil
}

// loadConfig reads the config file, then applies any flags set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = addr
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("redis") {
		cfg.RedisAddr = redisAddr
	}
	if flags.Changed("production") {
		cfg.Log.Production = production
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Log.Production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&addr, "addr", ":3000", "HTTP listen address")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", store.BackendMemory, "Post store backend (memory or badger)")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Address of Redis server for post events (disabled when empty)")
	rootCmd.PersistentFlags().BoolVar(&production, "production", false, "Use production JSON logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
