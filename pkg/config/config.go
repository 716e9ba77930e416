// Package config loads searchviz settings from a TOML file.
//
// The file is looked up at $SEARCHVIZ_CONFIG, then ./searchviz.toml, then
// $XDG_CONFIG_HOME/searchviz/config.toml (falling back to ~/.config). A
// missing file is not an error: Default values apply. Command-line flags
// override whatever the file sets.
//
//	[viewport]
//	width = 800
//	height = 450
//
//	[animation]
//	algorithm = "bidi"
//	delay = "10ms"
//
//	[palette]
//	source = "#1e90ff"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/searchviz/pkg/errors"
	"github.com/matzehuels/searchviz/pkg/render"
)

// EnvPath names the environment variable holding an explicit config path.
const EnvPath = "SEARCHVIZ_CONFIG"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	Viewport  Viewport         `toml:"viewport"`
	Animation Animation        `toml:"animation"`
	Palette   render.Overrides `toml:"palette"`
	Roads     Roads            `toml:"roads"`
	Cache     Cache            `toml:"cache"`
	Server    Server           `toml:"server"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

type Viewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type Animation struct {
	Algorithm string   `toml:"algorithm"`
	Delay     Duration `toml:"delay"`
}

type Roads struct {
	MaxDistSquared float64 `toml:"max_dist_squared"`
	Limit          int     `toml:"limit"`
}

type Cache struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string ("4ms").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Viewport:  Viewport{Width: 600, Height: 350},
		Animation: Animation{Algorithm: "bfs", Delay: Duration{4 * time.Millisecond}},
		Cache:     Cache{Backend: BackendFile, RedisAddr: "localhost:6379"},
		Server:    Server{Addr: ":8080"},
	}
}

// Load reads the first configuration file found. An explicit path, or one
// named by $SEARCHVIZ_CONFIG, must exist; the implicit locations are skipped
// when missing.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path != "" {
		return LoadFile(path)
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return Default(), nil
}

// LoadFile decodes path over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, err
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	cfg.Path = path
	return cfg, cfg.Validate()
}

// Decode parses TOML data into cfg, leaving unset keys untouched.
func Decode(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "unknown config key %q", undecoded[0].String())
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := apperrors.ValidateViewport(c.Viewport.Width, c.Viewport.Height); err != nil {
		return err
	}
	if c.Animation.Delay.Duration < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "delay must not be negative, got %s", c.Animation.Delay)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"unknown cache backend %q (must be 'file', 'redis' or 'none')", c.Cache.Backend)
	}
	if _, err := render.DefaultPalette().With(c.Palette); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "palette")
	}
	return nil
}

// ColorPalette returns the default palette with the configured overrides.
func (c Config) ColorPalette() render.Palette {
	p, err := render.DefaultPalette().With(c.Palette)
	if err != nil {
		return render.DefaultPalette()
	}
	return p
}

// SearchPaths lists the implicit config locations in lookup order.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvPath); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, "searchviz.toml")

	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		}
	}
	if dir != "" {
		paths = append(paths, filepath.Join(dir, "searchviz", "config.toml"))
	}
	return paths
}
