package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Pipeline.Workers != 4 {
		t.Errorf("default workers = %d, want 4", cfg.Pipeline.Workers)
	}
	if cfg.Output.Filename != "triage_report.json" {
		t.Errorf("default report filename = %q", cfg.Output.Filename)
	}
	if cfg.Server.Port != "8090" {
		t.Errorf("default port = %q", cfg.Server.Port)
	}
	if !cfg.PDF.FallbackPdftotext {
		t.Error("pdftotext fallback should default on")
	}
}

func TestLoadPersona(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.json")
	content := `{"persona": "Travel Planner", "job_to_be_done": "Plan a 4-day trip"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPersona(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Persona != "Travel Planner" || p.JobToBeDone != "Plan a 4-day trip" {
		t.Errorf("unexpected persona record: %+v", p)
	}
}

func TestLoadPersona_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPersona(filepath.Join(dir, "absent.json")); err == nil {
		t.Error("expected an error for a missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0o644)
	if _, err := LoadPersona(bad); err == nil {
		t.Error("expected an error for malformed JSON")
	}

	empty := filepath.Join(dir, "empty.json")
	os.WriteFile(empty, []byte(`{"persona": "", "job_to_be_done": "x"}`), 0o644)
	if _, err := LoadPersona(empty); err == nil {
		t.Error("expected a validation error for a blank persona")
	}
}

func TestPersonaValidate(t *testing.T) {
	cases := []struct {
		p       Persona
		wantErr bool
	}{
		{Persona{Persona: "Analyst", JobToBeDone: "Review"}, false},
		{Persona{Persona: "", JobToBeDone: "Review"}, true},
		{Persona{Persona: "Analyst", JobToBeDone: "   "}, true},
		{Persona{}, true},
	}
	for _, tc := range cases {
		err := tc.p.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("Validate(%+v) error = %v, wantErr %v", tc.p, err, tc.wantErr)
		}
	}
}
