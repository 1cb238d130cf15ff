package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/cli/config"
	httpctrl "github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/controller/http"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/advisory"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/memoryindex"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/worker"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/usecase"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/utils/logging"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var refreshInterval time.Duration
	var refreshConcurrency int
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var engineCfg config.Engine

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("AEIP_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "reliability-refresh-interval",
			Usage:       "Interval of the reliability score refresh worker",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("AEIP_RELIABILITY_REFRESH_INTERVAL"),
			Destination: &refreshInterval,
		},
		&cli.IntFlag{
			Name:        "reliability-refresh-concurrency",
			Usage:       "Per-cycle fan-out of the reliability refresh worker",
			Value:       4,
			Sources:     cli.EnvVars("AEIP_RELIABILITY_REFRESH_CONCURRENCY"),
			Destination: &refreshConcurrency,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, engineCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			engine, err := engineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load engine configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}

			ucOpts := []usecase.Option{
				usecase.WithEngineConfig(engine),
			}

			if llmClient != nil {
				index := memoryindex.New(llmClient,
					memoryindex.WithDimension(model.EmbeddingDimension),
					memoryindex.WithOverfetchFactor(engine.OverfetchFactor),
				)
				ucOpts = append(ucOpts, usecase.WithMemoryIndex(index))

				advisoryClient, err := advisory.New(llmClient,
					advisory.WithTimeout(engine.AdvisoryTimeout))
				if err != nil {
					return goerr.Wrap(err, "failed to initialize advisory client")
				}
				ucOpts = append(ucOpts, usecase.WithAdvisory(advisoryClient))

				logging.Default().Info("LLM collaborator enabled")
			} else {
				logging.Default().Info("Gemini project not configured, advisory and memory features disabled")
			}

			uc := usecase.New(repo, ucOpts...)

			// Cold start: rebuild the in-process index from persisted
			// memory records before accepting traffic.
			if uc.MemoryIndex() != nil {
				count, err := uc.ReloadMemories(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to reload memory records")
				}
				logging.Default().Info("Memory index loaded", "records", count)
			}

			refreshWorker := worker.NewReliabilityRefreshWorker(repo, uc.Estimator(), refreshInterval, refreshConcurrency)
			if err := refreshWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start reliability refresh worker")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "backend", repoCfg.Backend())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				refreshWorker.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				refreshWorker.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
