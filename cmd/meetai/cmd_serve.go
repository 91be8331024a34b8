package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	completionimpl "github.com/gparth254/meet-ai/external/completion"
	notifyimpl "github.com/gparth254/meet-ai/external/notify"
	repositoryimpl "github.com/gparth254/meet-ai/external/repository"
	transcriberimpl "github.com/gparth254/meet-ai/external/transcriber"
	transcriptimpl "github.com/gparth254/meet-ai/external/transcript"
	videoimpl "github.com/gparth254/meet-ai/external/video"
	"github.com/gparth254/meet-ai/internal/agent"
	"github.com/gparth254/meet-ai/internal/auth"
	"github.com/gparth254/meet-ai/internal/config"
	"github.com/gparth254/meet-ai/internal/httpapi"
	"github.com/gparth254/meet-ai/internal/meeting"
	"github.com/gparth254/meet-ai/internal/metrics"
	"github.com/gparth254/meet-ai/internal/voice"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	metrics.RegisterDI(injector)
	repositoryimpl.RegisterDI(injector)
	videoimpl.RegisterDI(injector)
	transcriptimpl.RegisterDI(injector)
	completionimpl.RegisterDI(injector)
	transcriberimpl.RegisterDI(injector)
	notifyimpl.RegisterDI(injector)
	auth.RegisterDI(injector)
	agent.RegisterDI(injector)
	meeting.RegisterDI(injector)
	voice.RegisterDI(injector)
	httpapi.RegisterDI(injector)

	return injector
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	pool, err := do.Invoke[*pgxpool.Pool](injector)
	if err != nil {
		return err
	}
	defer pool.Close()

	fanout, err := do.Invoke[*notifyimpl.Fanout](injector)
	if err != nil {
		return err
	}
	defer func() {
		if err := fanout.Close(); err != nil {
			slog.Error("notifier close failed", "error", err)
		}
	}()

	if cfg.SpeechRecognitionEnabled() {
		recognizer, err := do.Invoke[*transcriberimpl.CloudSpeechRecognizer](injector)
		if err != nil {
			return err
		}
		defer func() {
			if err := recognizer.Close(); err != nil {
				slog.Error("speech client close failed", "error", err)
			}
		}()
	}

	server, err := do.Invoke[*http.Server](injector)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
