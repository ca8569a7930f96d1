package editor

import (
	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/layout"
	"github.com/dshills/cefnav/internal/logging"
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) Option {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithParseOptions sets the options used to parse content.
func WithParseOptions(opts ...dom.Option) Option {
	return func(e *Editor) {
		e.parseOpts = append(e.parseOpts, opts...)
	}
}

// WithLayout sets the layout width and measurer.
func WithLayout(opts layout.Options) Option {
	return func(e *Editor) {
		e.layoutOpts = opts
	}
}

// WithViewportHeight sets the visible height ScrollIntoView keeps the
// selection within. Zero disables scrolling.
func WithViewportHeight(h float64) Option {
	return func(e *Editor) {
		if h >= 0 {
			e.viewHeight = h
		}
	}
}
