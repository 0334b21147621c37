package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flipkit/pkg/errors"
	"github.com/matzehuels/flipkit/pkg/render/term"
)

// Config holds user preferences read from config.toml. Flags override it.
//
//	fps = 60
//	columns = 80
//	color = true
//	scale = 2.0
//	cache_dir = "/tmp/flipkit"
type Config struct {
	// FPS is the frame rate of playback and the demo.
	FPS int `toml:"fps"`

	// Columns is the width of terminal renders in cells.
	Columns int `toml:"columns"`

	// Color enables lipgloss styling of terminal renders.
	Color bool `toml:"color"`

	// Scale is the pixel scale of PNG frames.
	Scale float64 `toml:"scale"`

	// CacheDir holds rendered diagrams. Empty means the user cache dir.
	CacheDir string `toml:"cache_dir"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		FPS:     defaultFPS,
		Columns: term.DefaultColumns,
		Color:   true,
		Scale:   1,
	}
}

// LoadConfig reads the config file at path over the defaults. An empty path
// means the default location, where a missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > 240 {
		return errors.New(errors.ErrCodeInvalidConfig, "fps must be between 1 and 240, got %d", c.FPS)
	}
	if c.Columns < 8 {
		return errors.New(errors.ErrCodeInvalidConfig, "columns must be at least 8, got %d", c.Columns)
	}
	if c.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %g", c.Scale)
	}
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the diagram cache directory (~/.cache/flipkit/ on Linux).
func (c Config) cacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/flipkit/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
