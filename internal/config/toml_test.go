package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/drill/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing config to be ignored: %v", err)
	}
	if cfg.Quiz.Delim != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[quiz]\ndelim = '\\t'\nno-shuffle = true\nlog-level = \"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Quiz.Delim == nil || *cfg.Quiz.Delim != `\t` {
		t.Fatalf("unexpected delim: %v", cfg.Quiz.Delim)
	}
	if cfg.Quiz.NoShuffle == nil || !*cfg.Quiz.NoShuffle {
		t.Fatalf("expected no-shuffle to be set")
	}
	if cfg.Quiz.Swap != nil {
		t.Fatalf("expected swap to be unset")
	}
}

func TestParseDeckHeader(t *testing.T) {
	deck := "# [drill]\n# mode = \"cards\"\n# delim = ';'\n\n\nhaus;house\n"
	cfg, err := ParseDeckHeader(strings.NewReader(deck))
	if err != nil {
		t.Fatalf("parse header: %v", err)
	}
	if cfg.Mode == nil || *cfg.Mode != "cards" {
		t.Fatalf("unexpected mode: %v", cfg.Mode)
	}
	if cfg.Delim == nil || *cfg.Delim != ";" {
		t.Fatalf("unexpected delim: %v", cfg.Delim)
	}
}

func TestParseDeckHeaderWithoutTable(t *testing.T) {
	deck := "# just a comment\nhaus;house\n# [drill]\n# mode = \"cards\"\n"
	cfg, err := ParseDeckHeader(strings.NewReader(deck))
	if err != nil {
		t.Fatalf("parse header: %v", err)
	}
	if cfg.Mode != nil || cfg.Delim != nil {
		t.Fatalf("expected header after cards to be ignored")
	}
}

func TestFormatDeckHeaderRoundTrip(t *testing.T) {
	header, err := FormatDeckHeader("cards", "|")
	if err != nil {
		t.Fatalf("format header: %v", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(header), "\n") {
		if !strings.HasPrefix(line, "# ") {
			t.Fatalf("expected commented line, got %q", line)
		}
	}
	cfg, err := ParseDeckHeader(strings.NewReader(header + "\nhaus|house\n"))
	if err != nil {
		t.Fatalf("parse header: %v", err)
	}
	if cfg.Delim == nil || *cfg.Delim != "|" || cfg.Mode == nil || *cfg.Mode != "cards" {
		t.Fatalf("unexpected round trip: %+v", cfg)
	}
}

func TestMergePrefersOverride(t *testing.T) {
	semi, tab := ";", "\t"
	yes := true
	base := QuizConfig{Delim: &semi, Swap: &yes}
	merged := Merge(base, QuizConfig{Delim: &tab})
	if *merged.Delim != "\t" {
		t.Fatalf("expected override delim")
	}
	if merged.Swap == nil || !*merged.Swap {
		t.Fatalf("expected base swap to survive")
	}
}

func TestValidate(t *testing.T) {
	valid := model.Config{DeckPath: "deck.csv", Delim: ";", Mode: model.ModeCards, LogLevel: "info"}
	if err := Validate(valid); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}

	bad := valid
	bad.Delim = ";;"
	if err := Validate(bad); err == nil || !strings.Contains(err.Error(), "--delim") {
		t.Fatalf("expected delim error, got %v", err)
	}

	bad = valid
	bad.Delim = "→"
	if err := Validate(bad); err != nil {
		t.Fatalf("expected multi-byte delimiter to be accepted: %v", err)
	}

	bad = valid
	bad.Mode = "verbs"
	if err := Validate(bad); err == nil || !strings.Contains(err.Error(), "--mode") {
		t.Fatalf("expected mode error, got %v", err)
	}

	bad = valid
	bad.LogLevel = "loud"
	if err := Validate(bad); err == nil || !strings.Contains(err.Error(), "--log-level") {
		t.Fatalf("expected log level error, got %v", err)
	}
}

func TestDefaultPathsHonorOverrides(t *testing.T) {
	t.Setenv("DRILL_CONFIG", "/tmp/custom.toml")
	t.Setenv("DRILL_DATA_DIR", "/tmp/drill-data")
	if DefaultConfigPath() != "/tmp/custom.toml" {
		t.Fatalf("unexpected config path: %s", DefaultConfigPath())
	}
	if DefaultDBPath() != filepath.Join("/tmp/drill-data", "drill.db") {
		t.Fatalf("unexpected db path: %s", DefaultDBPath())
	}
}
