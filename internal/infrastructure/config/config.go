package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// DefaultPath is used when CONFIG_PATH is not set
const DefaultPath = "config/config.yaml"

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Events EventsConfig `mapstructure:"events"`
	Seed   SeedConfig   `mapstructure:"seed"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// EventsConfig selects where change events go. Both sinks may be on.
type EventsConfig struct {
	NATSURL           string `mapstructure:"nats_url"`            // empty disables NATS
	NATSSubjectPrefix string `mapstructure:"nats_subject_prefix"` // default: dashboard
	WebSocket         bool   `mapstructure:"websocket"`           // serve /api/v1/ws
}

// SeedConfig points at a TOML file loaded into the empty dashboard at startup
type SeedConfig struct {
	Path string `mapstructure:"path"` // empty starts with an empty dashboard
}

var (
	cfg   *Config
	once  sync.Once
	mu    sync.RWMutex
	hooks []func(*Config)
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("events.nats_url", "")
	v.SetDefault("events.nats_subject_prefix", "dashboard")
	v.SetDefault("events.websocket", true)
	v.SetDefault("seed.path", "")
}

// read fills a Config from configPath, falling back to defaults when the
// file does not exist. It reports whether the file was found.
func read(v *viper.Viper, configPath string) (*Config, bool, error) {
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	found := true
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, fmt.Errorf("failed to read config file: %w", err)
		}
		found = false
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, found, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return c, found, nil
}

// reload replaces the current config with a fresh copy from v and hands it
// to every OnChange hook. Holders of the previous *Config keep a stable value.
func reload(v *viper.Viper) {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		log.Error().Err(err).Msg("Failed to reload config")
		return
	}

	mu.Lock()
	cfg = next
	fns := append(([]func(*Config))(nil), hooks...)
	mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
	log.Info().Msg("Config reloaded successfully")
}

// Load initializes the configuration from config file
func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		v := viper.GetViper()
		c, found, err := read(v, configPath)
		if err != nil {
			loadErr = err
			return
		}
		mu.Lock()
		cfg = c
		mu.Unlock()

		if !found {
			log.Warn().Str("file", configPath).Msg("Config file not found, using defaults")
			return
		}

		// Enable hot reload
		v.OnConfigChange(func(e fsnotify.Event) {
			log.Info().Str("file", e.Name).Msg("Config file changed, reloading...")
			reload(v)
		})
		v.WatchConfig()
	})

	return Get(), loadErr
}

// Get returns the current configuration (thread-safe)
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// OnChange registers fn to run with the new configuration after each hot reload
func OnChange(fn func(*Config)) {
	mu.Lock()
	defer mu.Unlock()
	hooks = append(hooks, fn)
}

// GetAddress returns the server address
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
