package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bkyoung/review-assistant/internal/adapter/cli"
	"github.com/bkyoung/review-assistant/internal/adapter/git"
	githubadapter "github.com/bkyoung/review-assistant/internal/adapter/github"
	"github.com/bkyoung/review-assistant/internal/adapter/llm/openai"
	"github.com/bkyoung/review-assistant/internal/adapter/llm/static"
	"github.com/bkyoung/review-assistant/internal/config"
	"github.com/bkyoung/review-assistant/internal/observability"
	"github.com/bkyoung/review-assistant/internal/redaction"
	"github.com/bkyoung/review-assistant/internal/review"
	"github.com/bkyoung/review-assistant/internal/server"
	"github.com/bkyoung/review-assistant/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "reviewer",
		EnvPrefix:   "REVIEWER",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	logger := observability.NewLogger(cfg.Logging)

	var sanitizer review.Sanitizer
	if cfg.Redaction.Enabled {
		sanitizer = redaction.NewEngine()
	}

	if cfg.GitHub.WebhookSecret == "" {
		logger.Warn("webhook signature verification is DISABLED; set GITHUB_WEBHOOK_SECRET to enable it")
	}

	provider := buildProvider(cfg, logger)

	githubClient := githubadapter.NewClient(cfg.GitHub.Token)
	githubClient.SetBaseURL(cfg.GitHub.BaseURL)
	githubClient.SetTimeout(parseDuration(cfg.GitHub.Timeout, 30*time.Second))

	orchestrator := review.NewOrchestrator(review.Deps{
		Diff:          githubClient,
		Provider:      provider,
		Prompts:       review.NewPromptBuilder(),
		Sanitizer:     sanitizer,
		Logger:        logger,
		WebhookSecret: cfg.GitHub.WebhookSecret,
	})

	handlers := server.NewHandlers(orchestrator, logger)
	srv := server.New(server.Options{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  parseDuration(cfg.Server.ReadTimeout, 10*time.Second),
		WriteTimeout: parseDuration(cfg.Server.WriteTimeout, 120*time.Second),
	}, handlers, logger)

	repoDir := cfg.Git.RepositoryDir
	if repoDir == "" {
		repoDir = "."
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Reviewer:      orchestrator,
		Git:           git.NewEngine(repoDir),
		Serve:         serveFunc(srv),
		DefaultOutput: cfg.Output.Directory,
		DefaultRepo:   repositoryName(repoDir),
		Version:       version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// serveFunc runs the HTTP server until the context is cancelled, then shuts
// it down gracefully.
func serveFunc(srv *server.Server) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Run()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
}

// buildProvider selects and configures the model provider. A nil return
// means no credential is configured; the orchestrator turns that into a
// configuration-error review result rather than failing startup.
func buildProvider(cfg config.Config, logger *slog.Logger) review.Provider {
	name := cfg.Review.Provider
	providerCfg := cfg.Providers[name]

	switch name {
	case "static":
		if !providerCfg.Enabled {
			logger.Warn("static provider selected but not enabled")
			return nil
		}
		return static.NewProvider()

	case "openai":
		if !providerCfg.Enabled || providerCfg.APIKey == "" {
			logger.Warn("OpenAI API key not configured; reviews will fail with a configuration error")
			return nil
		}
		client := openai.NewHTTPClient(providerCfg.APIKey, providerCfg.Model)
		client.SetBaseURL(providerCfg.BaseURL)
		client.SetTimeout(parseDuration(providerCfg.Timeout, 60*time.Second))
		if providerCfg.BaseURL != "" {
			logger.Info("using custom API base URL", "baseURL", providerCfg.BaseURL)
		}
		return client

	default:
		logger.Warn("unsupported review provider", "provider", name)
		return nil
	}
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func repositoryName(repoDir string) string {
	abs, err := filepath.Abs(repoDir)
	if err != nil {
		return "unknown"
	}
	return filepath.Base(abs)
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "reviewer"))
	}
	return paths
}
