package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/dgallion1/doctriage/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	cfg     config.Config
)

// GetConfig returns the loaded configuration.
func GetConfig() config.Config {
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "doctriage",
	Short: "doctriage: persona-driven document triage",
	Long: `doctriage ingests a batch of documents, segments each into candidate
sections using layout heuristics, and ranks those sections against a
persona + task query to surface the most relevant excerpts.

Commands:
  run    Triage an input directory and write the JSON report
  serve  Start the HTTP API for asynchronous triage jobs`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./doctriage.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func initConfig() {
	// Start with defaults.
	cfg = config.Defaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("doctriage")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/doctriage")
	}

	// Environment variable overrides:
	// DOCTRIAGE_INPUT_DIR -> input.dir, and so on.
	viper.SetEnvPrefix("DOCTRIAGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("input.dir", "DOCTRIAGE_INPUT_DIR")
	viper.BindEnv("input.persona_file", "DOCTRIAGE_INPUT_PERSONA_FILE")
	viper.BindEnv("output.dir", "DOCTRIAGE_OUTPUT_DIR")
	viper.BindEnv("output.filename", "DOCTRIAGE_OUTPUT_FILENAME")
	viper.BindEnv("pipeline.workers", "DOCTRIAGE_PIPELINE_WORKERS")
	viper.BindEnv("pipeline.doc_timeout", "DOCTRIAGE_PIPELINE_DOC_TIMEOUT")
	viper.BindEnv("server.port", "DOCTRIAGE_SERVER_PORT")
	viper.BindEnv("server.api_key", "DOCTRIAGE_SERVER_API_KEY")
	viper.BindEnv("pdf.fallback_pdftotext", "DOCTRIAGE_PDF_FALLBACK_PDFTOTEXT")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("config file error", "error", err)
		}
		// No config file - use defaults + env vars.
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Warn("failed to parse config", "error", err)
	}
}
