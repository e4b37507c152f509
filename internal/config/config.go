// Package config holds runtime configuration and the persona/job input
// record the triage query is built from.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Input    Input    `mapstructure:"input"`
	Output   Output   `mapstructure:"output"`
	Pipeline Pipeline `mapstructure:"pipeline"`
	Server   Server   `mapstructure:"server"`
	PDF      PDF      `mapstructure:"pdf"`
}

// Input locates the document batch and the persona record.
type Input struct {
	Dir         string `mapstructure:"dir"`
	PersonaFile string `mapstructure:"persona_file"`
}

// Output controls where the report is written.
type Output struct {
	Dir      string `mapstructure:"dir"`
	Filename string `mapstructure:"filename"`
}

// Pipeline holds worker-pool and budget knobs.
type Pipeline struct {
	Workers      int           `mapstructure:"workers"`
	DocTimeout   time.Duration `mapstructure:"doc_timeout"`
	MaxQueueSize int           `mapstructure:"max_queue_size"`
	JobTTL       time.Duration `mapstructure:"job_ttl"`
}

// Server holds the HTTP surface configuration.
type Server struct {
	Port           string `mapstructure:"port"`
	APIKey         string `mapstructure:"api_key"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

// PDF holds PDF extraction options.
type PDF struct {
	FallbackPdftotext bool `mapstructure:"fallback_pdftotext"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Input: Input{
			Dir:         "input",
			PersonaFile: "input/persona.json",
		},
		Output: Output{
			Dir:      "output",
			Filename: "triage_report.json",
		},
		Pipeline: Pipeline{
			Workers:      4,
			DocTimeout:   2 * time.Minute,
			MaxQueueSize: 100,
			JobTTL:       1 * time.Hour,
		},
		Server: Server{
			Port:           "8090",
			MaxUploadBytes: 52428800, // 50MB
		},
		PDF: PDF{
			FallbackPdftotext: true,
		},
	}
}

// Persona is the configuration record the ranking query is built from.
// Both fields are required: without them no query exists, so a missing or
// malformed record aborts the run before any document is processed.
type Persona struct {
	Persona     string `json:"persona"`
	JobToBeDone string `json:"job_to_be_done"`
}

// LoadPersona reads and validates the persona record from a JSON file.
func LoadPersona(path string) (Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Persona{}, fmt.Errorf("read persona file: %w", err)
	}
	var p Persona
	if err := json.Unmarshal(data, &p); err != nil {
		return Persona{}, fmt.Errorf("parse persona file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Persona{}, err
	}
	return p, nil
}

// Validate enforces the required fields.
func (p Persona) Validate() error {
	if strings.TrimSpace(p.Persona) == "" {
		return fmt.Errorf("persona is required")
	}
	if strings.TrimSpace(p.JobToBeDone) == "" {
		return fmt.Errorf("job_to_be_done is required")
	}
	return nil
}
