package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dgallion1/doctriage/internal/config"
	"github.com/dgallion1/doctriage/internal/pipeline"
	"github.com/dgallion1/doctriage/internal/report"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	runInputDir    string
	runOutputDir   string
	runPersona     string
	runJob         string
	runPersonaFile string
	runWatch       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Triage an input directory and write the JSON report",
	Long: `Run the triage pipeline once over every supported document in the
input directory and write the ranked report to the output directory.

The persona and job can be given as flags or read from a JSON file
({"persona": ..., "job_to_be_done": ...}); flags win when both are set.

Examples:
  doctriage run --input ./papers --persona "PhD Researcher" --job "literature review"
  doctriage run --persona-file input/persona.json --watch`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runInputDir, "input", "", "input directory (default from config)")
	runCmd.Flags().StringVar(&runOutputDir, "output", "", "output directory (default from config)")
	runCmd.Flags().StringVar(&runPersona, "persona", "", "persona description")
	runCmd.Flags().StringVar(&runJob, "job", "", "job to be done")
	runCmd.Flags().StringVar(&runPersonaFile, "persona-file", "", "JSON file with persona and job_to_be_done")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "re-run when the input directory changes")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := GetConfig()
	inputDir := cfg.Input.Dir
	if runInputDir != "" {
		inputDir = runInputDir
	}
	outputDir := cfg.Output.Dir
	if runOutputDir != "" {
		outputDir = runOutputDir
	}

	persona, err := resolvePersona(cfg)
	if err != nil {
		return err
	}

	engine := pipeline.NewEngine(slog.Default(), pipeline.Options{
		Workers:              cfg.Pipeline.Workers,
		DocTimeout:           cfg.Pipeline.DocTimeout,
		PDFFallbackPdftotext: cfg.PDF.FallbackPdftotext,
	})

	triage := func() error {
		rep, err := engine.RunDir(ctx, inputDir, persona.Persona, persona.JobToBeDone)
		if err != nil {
			return err
		}
		path, err := report.Write(rep, outputDir, cfg.Output.Filename)
		if err != nil {
			return err
		}
		fmt.Printf("Processing complete. Output saved to %s\n", path)
		fmt.Printf("Processed %d documents for persona: %s\n",
			len(rep.Metadata.InputDocuments), persona.Persona)
		return nil
	}

	if err := triage(); err != nil {
		return err
	}
	if !runWatch {
		return nil
	}
	return watchAndRerun(ctx, inputDir, triage)
}

// resolvePersona merges the flag values over the persona file. Missing
// persona or job aborts before any document is touched.
func resolvePersona(cfg config.Config) (config.Persona, error) {
	p := config.Persona{Persona: runPersona, JobToBeDone: runJob}
	if p.Validate() == nil {
		return p, nil
	}

	personaFile := cfg.Input.PersonaFile
	if runPersonaFile != "" {
		personaFile = runPersonaFile
	}
	loaded, err := config.LoadPersona(personaFile)
	if err != nil {
		return config.Persona{}, err
	}
	if p.Persona != "" {
		loaded.Persona = p.Persona
	}
	if p.JobToBeDone != "" {
		loaded.JobToBeDone = p.JobToBeDone
	}
	return loaded, loaded.Validate()
}

// watchAndRerun re-triages the input directory whenever a document in it
// changes, debouncing bursts of filesystem events.
func watchAndRerun(ctx context.Context, inputDir string, triage func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(inputDir); err != nil {
		return fmt.Errorf("watch %s: %w", inputDir, err)
	}
	slog.Info("watching for changes", "dir", inputDir)

	var debounce *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// Ignore the report itself and editor temp files.
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(500*time.Millisecond, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		case <-pending:
			slog.Info("input changed, re-running triage")
			if err := triage(); err != nil {
				slog.Error("triage run failed", "error", err)
			}
		}
	}
}
