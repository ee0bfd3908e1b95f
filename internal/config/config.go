// Package config loads fxgen settings from a YAML, TOML or JSON file plus
// command-line key=value overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/suzuryg/facial-expression-switcher/internal/dto"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/generator"
)

// Store backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendLoam  = "loam"
)

// Config is the complete fxgen configuration.
type Config struct {
	Generator  generator.Settings `mapstructure:"generator"`
	Menus      MenusConfig        `mapstructure:"menus"`
	Store      StoreConfig        `mapstructure:"store"`
	Template   string             `mapstructure:"template"`
	Thumbnails ThumbnailConfig    `mapstructure:"thumbnails"`
	Lock       LockConfig         `mapstructure:"lock"`
	Log        LogConfig          `mapstructure:"log"`
	HTTP       HTTPConfig         `mapstructure:"http"`
	// MetricsTextfile, when set, receives the metrics after every CLI pass.
	MetricsTextfile string `mapstructure:"metrics_textfile"`
}

// MenusConfig selects where menu documents are read from.
type MenusConfig struct {
	Backend string `mapstructure:"backend"` // "file" or "loam"
	Dir     string `mapstructure:"dir"`
}

// StoreConfig selects where outputs and the installation record live.
type StoreConfig struct {
	Backend      string      `mapstructure:"backend"` // "file" or "redis"
	Dir          string      `mapstructure:"dir"`
	Installation string      `mapstructure:"installation"`
	Redis        RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type ThumbnailConfig struct {
	PreviewDir string `mapstructure:"preview_dir"`
	Size       int    `mapstructure:"size"`
}

// LockConfig enables the distributed pass lock. It requires the redis store.
type LockConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Generator: generator.DefaultSettings(),
		Menus:     MenusConfig{Backend: BackendFile, Dir: "menus"},
		Store: StoreConfig{
			Backend:      BackendFile,
			Dir:          ".fxgen/outputs",
			Installation: ".fxgen/installed.json",
			Redis:        RedisConfig{Addr: "localhost:6379", Prefix: "fxgen:"},
		},
		Template:   "template.json",
		Thumbnails: ThumbnailConfig{Size: 256},
		Lock:       LockConfig{TTL: 30 * time.Second},
		Log:        LogConfig{Level: "info", Format: "text"},
		HTTP:       HTTPConfig{Addr: ":8080"},
	}
}

// Load reads path (if not empty) over the defaults, then applies overrides of the
// form "generator.emote_budget=64". Unknown keys are rejected.
func Load(path string, overrides []string) (Config, error) {
	raw := make(map[string]any)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if raw, err = dto.Unmarshal(filepath.Ext(path), data); err != nil {
			return Config{}, &domain.ConfigurationError{Path: path, Reason: err.Error()}
		}
	}
	for _, o := range overrides {
		if err := apply(raw, o); err != nil {
			return Config{}, err
		}
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			animationRefHook,
		),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, &domain.ConfigurationError{Path: path, Reason: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Menus.Backend {
	case BackendFile, BackendLoam:
	default:
		return &domain.ConfigurationError{Path: "menus.backend", Reason: fmt.Sprintf("unknown backend %q", c.Menus.Backend)}
	}
	switch c.Store.Backend {
	case BackendFile, BackendRedis:
	default:
		return &domain.ConfigurationError{Path: "store.backend", Reason: fmt.Sprintf("unknown backend %q", c.Store.Backend)}
	}
	if c.Lock.Enabled && c.Store.Backend != BackendRedis {
		return &domain.ConfigurationError{Path: "lock.enabled", Reason: "the pass lock needs the redis store"}
	}
	if c.Generator.EmoteBudget < 0 {
		return &domain.ConfigurationError{Path: "generator.emote_budget", Reason: "must not be negative"}
	}
	return nil
}

// apply sets a dotted key in raw, creating intermediate maps.
func apply(raw map[string]any, override string) error {
	key, value, ok := strings.Cut(override, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return &domain.ConfigurationError{Path: override, Reason: "override must look like key=value"}
	}

	parts := strings.Split(key, ".")
	cur := raw
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = strings.TrimSpace(value)
	return nil
}

var animationRefType = reflect.TypeOf(domain.AnimationRef{})

// animationRefHook lets a clip be written as its bare GUID.
func animationRefHook(from, to reflect.Type, data any) (any, error) {
	if to != animationRefType || from.Kind() != reflect.String {
		return data, nil
	}
	return domain.AnimationRef{GUID: data.(string)}, nil
}
