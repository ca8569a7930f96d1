package config

import (
	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/logging"
	"github.com/dshills/cefnav/internal/platform"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration.

// ContentConfig controls how content is classified at parse time.
type ContentConfig struct {
	// AtomicSelector matches non-editable islands.
	AtomicSelector string

	// InlineBoundarySelector matches inline elements whose edges are caret
	// boundaries.
	InlineBoundarySelector string
}

// ParseOptions returns the dom options for the section.
func (cc ContentConfig) ParseOptions() []dom.Option {
	return []dom.Option{
		dom.WithAtomicSelector(cc.AtomicSelector),
		dom.WithInlineBoundarySelector(cc.InlineBoundarySelector),
	}
}

// LayoutConfig controls content layout.
type LayoutConfig struct {
	// Width is the wrap width in cells. Font layouts scale it by the advance
	// of "M".
	Width int

	// Measurer is "cell" or "font".
	Measurer string
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is the minimum level name.
	Level string
}

// ParsedLevel returns the logging level.
func (lc LogConfig) ParsedLevel() logging.Level {
	return logging.ParseLevel(lc.Level)
}

// KeymapConfig lists keymap override files.
type KeymapConfig struct {
	Files []string
}

// Platform returns the resolved OS family. Invalid values fall back to
// detection.
func (c *Config) Platform() platform.OS {
	p, err := platform.Resolve(c.getStringOr("platform", string(platform.Auto)))
	if err != nil {
		return platform.Detect()
	}
	return p
}

// Content returns the content section.
func (c *Config) Content() ContentConfig {
	return ContentConfig{
		AtomicSelector:         c.getStringOr("content.atomicSelector", dom.DefaultAtomicSelector),
		InlineBoundarySelector: c.getStringOr("content.inlineBoundarySelector", dom.DefaultInlineBoundarySelector),
	}
}

// Layout returns the layout section.
func (c *Config) Layout() LayoutConfig {
	return LayoutConfig{
		Width:    c.getIntOr("layout.width", DefaultLayoutWidth),
		Measurer: c.getStringOr("layout.measurer", MeasurerCell),
	}
}

// Log returns the log section.
func (c *Config) Log() LogConfig {
	return LogConfig{
		Level: c.getStringOr("log.level", "info"),
	}
}

// Keymap returns the keymap section.
func (c *Config) Keymap() KeymapConfig {
	files, err := c.GetStringSlice("keymap.files")
	if err != nil {
		files = nil
	}
	return KeymapConfig{Files: files}
}
