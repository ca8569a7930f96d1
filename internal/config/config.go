package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/cefnav/internal/config/loader"
	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/platform"
)

// Measurer names accepted by layout.measurer.
const (
	MeasurerCell = "cell"
	MeasurerFont = "font"
)

// DefaultLayoutWidth is the wrap width used when none is configured.
const DefaultLayoutWidth = 80

// Config holds the merged configuration.
// It is safe for concurrent use.
type Config struct {
	mu sync.RWMutex

	path      string
	fs        loader.FileSystem
	envPrefix string
	useEnv    bool

	data map[string]any
}

// Option configures a Config.
type Option func(*Config)

// WithPath sets the TOML file to load. An empty path skips the file layer.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem sets the file system the TOML layer reads from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnv enables or disables the environment layer.
func WithEnv(enable bool) Option {
	return func(c *Config) {
		c.useEnv = enable
	}
}

// New creates a configuration holding the defaults. Call Load to apply the
// file and environment layers.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        loader.DefaultFS(),
		envPrefix: loader.EnvPrefix,
		useEnv:    true,
		data:      defaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load rebuilds the configuration from defaults, the TOML file and the
// environment, then validates it. On error the previous values are kept.
func (c *Config) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := defaultConfig()

	fileCfg, err := loader.NewTOMLLoaderWithFS(c.fs, c.path).Load()
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	data = loader.DeepMerge(data, fileCfg)

	if c.useEnv {
		envCfg, err := loader.NewEnvLoader(c.envPrefix).Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		data = loader.DeepMerge(data, envCfg)
	}

	if err := validate(data); err != nil {
		return err
	}

	c.mu.Lock()
	c.data = data
	c.mu.Unlock()
	return nil
}

// Path returns the TOML file path, or "" when no file is configured.
func (c *Config) Path() string {
	return c.path
}

// Validate checks the current values.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return validate(c.data)
}

// Get returns the value at the given path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.GetByPath(c.data, path)
}

// Set sets the value at path. The change is not validated until Validate
// is called.
func (c *Config) Set(path string, value any) error {
	if path == "" || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") {
		return ErrInvalidPath
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	loader.SetByPath(c.data, path, value)
	return nil
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.data)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	n, ok := toInt(v)
	if !ok {
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
	return n, nil
}

// GetStringSlice returns a string slice at the given path. A single string
// is returned as a one element slice.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}
	s, ok := toStrings(v)
	if !ok {
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
	return s, nil
}

func (c *Config) getStringOr(path, def string) string {
	if s, err := c.GetString(path); err == nil {
		return s
	}
	return def
}

func (c *Config) getIntOr(path string, def int) int {
	if n, err := c.GetInt(path); err == nil {
		return n
	}
	return def
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cefnav")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cefnav")
}

// DefaultPath returns the user config file path.
func DefaultPath() string {
	return filepath.Join(defaultUserConfigDir(), "config.toml")
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"platform": string(platform.Auto),
		"content": map[string]any{
			"atomicSelector":         dom.DefaultAtomicSelector,
			"inlineBoundarySelector": dom.DefaultInlineBoundarySelector,
		},
		"layout": map[string]any{
			"width":    DefaultLayoutWidth,
			"measurer": MeasurerCell,
		},
		"log": map[string]any{
			"level": "info",
		},
		"keymap": map[string]any{
			"files": []any{},
		},
	}
}

func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		if val != float64(int(val)) {
			return 0, false
		}
		return int(val), true
	default:
		return 0, false
	}
}

func toStrings(v any) ([]string, bool) {
	switch val := v.(type) {
	case string:
		return []string{val}, true
	case []string:
		return val, true
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
