package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesComponentDefaults(t *testing.T) {
	cfg := Default()

	if cfg.MarginFactor != 1.1 {
		t.Errorf("MarginFactor = %v, want 1.1", cfg.MarginFactor)
	}
	if cfg.Skew.MinLineSpan != 0.03 {
		t.Errorf("Skew.MinLineSpan = %v, want 0.03", cfg.Skew.MinLineSpan)
	}
	if cfg.Skew.MaxStepDistanceSq != 0.001 {
		t.Errorf("Skew.MaxStepDistanceSq = %v, want 0.001", cfg.Skew.MaxStepDistanceSq)
	}
	if cfg.Skew.MinWindowAverage != 5 {
		t.Errorf("Skew.MinWindowAverage = %v, want 5", cfg.Skew.MinWindowAverage)
	}
	if len(cfg.OCRLanguages) == 0 {
		t.Error("expected at least one default OCR language")
	}
}

func TestLoadOverridesSelectedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutriscan.yaml")
	content := []byte("margin_factor: 1.25\nocr_languages: [eng, deu]\nskew:\n  min_correction_deg: 5\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MarginFactor != 1.25 {
		t.Errorf("MarginFactor = %v, want 1.25", cfg.MarginFactor)
	}
	if len(cfg.OCRLanguages) != 2 || cfg.OCRLanguages[1] != "deu" {
		t.Errorf("OCRLanguages = %v, want [eng deu]", cfg.OCRLanguages)
	}
	if cfg.Skew.MinCorrectionDeg != 5 {
		t.Errorf("Skew.MinCorrectionDeg = %v, want 5", cfg.Skew.MinCorrectionDeg)
	}
	// Untouched fields keep their defaults.
	if cfg.Skew.MinLineSpan != 0.03 {
		t.Errorf("Skew.MinLineSpan = %v, want default 0.03", cfg.Skew.MinLineSpan)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("margin_factor: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Skew.MinCorrectionDeg = 7
	cfg.MinCandidateArea = 1234

	if got := cfg.TraceParams().MinCorrectionDeg; got != 7 {
		t.Errorf("TraceParams.MinCorrectionDeg = %v, want 7", got)
	}
	if got := cfg.DetectionEngine().MinArea; got != 1234 {
		t.Errorf("DetectionEngine.MinArea = %d, want 1234", got)
	}
	if got := cfg.DetectorOptions().MarginFactor; got != cfg.MarginFactor {
		t.Errorf("DetectorOptions.MarginFactor = %v, want %v", got, cfg.MarginFactor)
	}
}
