package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `{"width": 80, "moves_per_second": 10}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 80 || cfg.MovesPerSecond != 10 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Height != DefaultConfig().Height || cfg.FillPercent != DefaultConfig().FillPercent {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults on error, got %+v", cfg)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := []string{
		`{"width": -1}`,
		`{"moves_per_second": 0}`,
		`{"moves_per_second": 5000}`,
		`{"fill_percent": 101}`,
		`{"max_generations": -3}`,
	}
	for _, body := range cases {
		_, err := LoadConfig(writeConfig(t, body))
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: expected ErrInvalidArgument, got %v", body, err)
		}
	}
}

func TestLoadConfigMalformedJSON(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{"width":`))
	if err == nil || errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected unmarshal error, got %v", err)
	}
}

func TestIntervalMillis(t *testing.T) {
	cases := map[int]int{1: 1000, 3: 333, 4: 250, 20: 50, 0: 0}
	for mps, want := range cases {
		cfg := DefaultConfig()
		cfg.MovesPerSecond = mps
		if got := cfg.IntervalMillis(); got != want {
			t.Fatalf("moves_per_second=%d: got %dms, expected %dms", mps, got, want)
		}
	}
}
