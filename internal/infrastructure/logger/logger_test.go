package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/leondli/npsboard/internal/infrastructure/config"
)

func writeConfig(t *testing.T, path, level string) {
	t.Helper()
	yaml := "log:\n  level: " + level + "\n  format: json\n  output: stderr\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestInit_Level(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	cases := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"error", zerolog.ErrorLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		Init(&config.LogConfig{Level: tc.level, Output: "stderr"})
		if got := zerolog.GlobalLevel(); got != tc.want {
			t.Errorf("Init(%q) level = %s, want %s", tc.level, got, tc.want)
		}
	}
}

func TestWatch_ConfigReloadChangesLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "info")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	Init(&cfg.Log)
	Watch()
	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Fatalf("level = %s, want info", got)
	}

	writeConfig(t, path, "warn")

	deadline := time.Now().Add(5 * time.Second)
	for zerolog.GlobalLevel() != zerolog.WarnLevel {
		if time.Now().After(deadline) {
			t.Fatalf("level = %s after rewriting config, want warn", zerolog.GlobalLevel())
		}
		time.Sleep(20 * time.Millisecond)
	}
	if got := config.Get().Log.Level; got != "warn" {
		t.Errorf("config.Get().Log.Level = %q, want warn", got)
	}
}
