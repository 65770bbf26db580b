package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestRead_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte(`
server:
  host: 127.0.0.1
  port: 9090
  mode: debug
events:
  nats_url: nats://localhost:4222
seed:
  path: config/seed.toml
`)
	if err := os.WriteFile(path, yaml, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SERVER_PORT", "9191")

	c, found, err := read(viper.New(), path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !found {
		t.Fatal("expected the file to be found")
	}
	if c.Server.Port != 9191 {
		t.Errorf("port = %d, want env override 9191", c.Server.Port)
	}
	if c.Server.GetAddress() != "127.0.0.1:9191" {
		t.Errorf("address = %q", c.Server.GetAddress())
	}
	if c.Events.NATSURL != "nats://localhost:4222" || c.Events.NATSSubjectPrefix != "dashboard" {
		t.Errorf("events = %+v", c.Events)
	}
	if c.Seed.Path != "config/seed.toml" {
		t.Errorf("seed = %+v", c.Seed)
	}
	if c.Log.Level != "info" {
		t.Errorf("log level default = %q", c.Log.Level)
	}
}

func TestRead_MissingFileUsesDefaults(t *testing.T) {
	c, found, err := read(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if found {
		t.Fatal("found = true for a missing file")
	}
	if c.Server.Port != 8080 || !c.Events.WebSocket {
		t.Fatalf("defaults not applied: %+v", c)
	}
}

func TestReload_SwapsConfigAndRunsHooks(t *testing.T) {
	mu.Lock()
	prevCfg, prevHooks := cfg, hooks
	hooks = nil
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		cfg, hooks = prevCfg, prevHooks
		mu.Unlock()
	})

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	first, _, err := read(v, path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	mu.Lock()
	cfg = first
	mu.Unlock()

	var seen []string
	OnChange(func(c *Config) { seen = append(seen, c.Log.Level) })

	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}
	reload(v)

	if got := Get().Log.Level; got != "debug" {
		t.Fatalf("Get().Log.Level = %q, want debug", got)
	}
	if first.Log.Level != "info" {
		t.Errorf("previous config mutated to %q", first.Log.Level)
	}
	if len(seen) != 1 || seen[0] != "debug" {
		t.Errorf("hooks saw %v", seen)
	}
}
