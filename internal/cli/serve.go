package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/quiz-results/internal/config"
	"github.com/pfrederiksen/quiz-results/internal/handler"
	"github.com/pfrederiksen/quiz-results/internal/logger"
	"github.com/pfrederiksen/quiz-results/internal/metrics"
	"github.com/pfrederiksen/quiz-results/internal/notifier"
	"github.com/pfrederiksen/quiz-results/internal/server"
)

func newServeCmd(load configLoader) *cobra.Command {
	var (
		flagAddr   string
		flagDryRun bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the result notifier HTTP service",
		Long: `Serve the result notifier on /api/submit-result, with a liveness
check on /api/ping and Prometheus metrics on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if flagAddr != "" {
				cfg.Server.Addr = flagAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, flagDryRun)
		},
	}

	cmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from QUIZ_LISTEN_ADDR or :8080)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print messages instead of sending them")

	return cmd
}

// runServe builds the handler from cfg and serves it until ctx is done
func runServe(ctx context.Context, cfg *config.Config, dryRun bool) error {
	logger.SetDefault(logger.New(cfg.LogLevel(), os.Stdout))
	if cfg.LogLevel() != logger.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	hcfg, err := cfg.Handler()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := []handler.Option{
		handler.WithMetrics(metrics.NewRecorder(reg)),
	}
	if dryRun {
		opts = append(opts, handler.WithNotifier(notifier.NewDryRunNotifier(os.Stdout)))
	} else if !cfg.Telegram.HasCredentials() {
		logger.Warn("Telegram credentials not set, submissions will fail", logger.Fields{
			"addr": cfg.Server.Addr,
		})
	}

	h := handler.New(hcfg, opts...)

	srv := server.New(cfg.Server.Addr, server.NewRouter(h, reg))

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown requested", nil)
		return nil
	})

	return group.Wait()
}
