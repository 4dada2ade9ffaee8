package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jooddae/bojbot/config"
	"github.com/jooddae/bojbot/internal/chat"
	"github.com/jooddae/bojbot/internal/health"
	"github.com/jooddae/bojbot/internal/infrastructure/postgres"
	"github.com/jooddae/bojbot/internal/judge"
	ctxlog "github.com/jooddae/bojbot/internal/log"
	"github.com/jooddae/bojbot/internal/metrics"
	"github.com/jooddae/bojbot/internal/register"
	"github.com/jooddae/bojbot/internal/requestid"
)

const registerCommand = "!register"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := ctxlog.New(cfg.Env, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	logger.Info("db connected")

	metrics.Register()

	userRepo := postgres.NewUserRepository(pool)
	judgeClient := judge.NewClient(judge.NewSafeHTTPClient(cfg.JudgeTimeout), logger, cfg.JudgeBaseURL)
	workflow := register.NewWorkflow(userRepo, judgeClient, logger, cfg.RegisterTimeout, time.Second)

	checker := health.NewChecker(logger, prometheus.DefaultRegisterer).
		Add("postgres", pool).
		Add("judge", judgeClient)

	// The local console stands in for the real chat platform client.
	console := chat.NewConsole(os.Stdout, "local", logger)
	go console.Run(ctx, os.Stdin)

	go dispatch(ctx, logger, console, workflow)

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)
	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	logger.Info("bot started", "register_timeout", cfg.RegisterTimeout)

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}

	logger.Info("bot shut down")
}

// dispatch recognizes exactly the registration command and runs each
// invocation on its own goroutine under a fresh command id.
func dispatch(ctx context.Context, logger *slog.Logger, channel chat.Channel, workflow *register.Workflow) {
	for {
		msg, err := channel.AwaitMessage(ctx, func(m *chat.Message) bool {
			return m.Text == registerCommand || strings.HasPrefix(m.Text, registerCommand+" ")
		})
		if err != nil {
			return
		}

		go func(msg *chat.Message) {
			runCtx := requestid.NewContext(ctx)
			rawArgs := strings.TrimPrefix(msg.Text, registerCommand)

			outcome, err := workflow.Run(runCtx, channel, msg, rawArgs)

			var userErr *register.UserError
			switch {
			case errors.As(err, &userErr):
				if _, err := channel.Reply(runCtx, msg, userErr.Message); err != nil {
					logger.ErrorContext(runCtx, "send user error reply", "error", err)
				}
			case err != nil:
				logger.ErrorContext(runCtx, "registration run failed", "error", err)
			default:
				logger.InfoContext(runCtx, "registration resolved", "outcome", outcome)
			}
		}(msg)
	}
}
