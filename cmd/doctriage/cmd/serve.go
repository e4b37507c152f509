package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/doctriage/internal/api"
	"github.com/dgallion1/doctriage/internal/pipeline"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for asynchronous triage jobs",
	Long: `Start the doctriage HTTP server. Document batches are uploaded with a
persona and job description, processed by a worker pool, and the ranked
report fetched once the job completes.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := pipeline.NewEngine(log, pipeline.Options{
		Workers:              cfg.Pipeline.Workers,
		DocTimeout:           cfg.Pipeline.DocTimeout,
		PDFFallbackPdftotext: cfg.PDF.FallbackPdftotext,
	})

	orch := pipeline.NewOrchestrator(engine, log, cfg.Pipeline.Workers, cfg.Pipeline.MaxQueueSize, cfg.Pipeline.JobTTL)
	orch.Start(ctx)

	srv := api.NewServer(orch, engine, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting doctriage", "port", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
