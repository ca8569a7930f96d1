// Package keyboard wires the navigation key binding tables to an editor.
//
// Each setup registers one keydown handler. For an event nobody has
// prevented yet it walks the table in order and runs the first binding
// whose key matches exactly and whose action succeeds; the event is then
// default-prevented so the editor skips its native movement.
package keyboard

import (
	"errors"
	"fmt"

	"github.com/dshills/cefnav/internal/caret"
	"github.com/dshills/cefnav/internal/editor"
	"github.com/dshills/cefnav/internal/fakecaret"
	"github.com/dshills/cefnav/internal/input/key"
	"github.com/dshills/cefnav/internal/input/keymap"
	"github.com/dshills/cefnav/internal/line"
	"github.com/dshills/cefnav/internal/logging"
	"github.com/dshills/cefnav/internal/nav"
	"github.com/dshills/cefnav/internal/platform"
)

// ErrUnknownAction is returned for a binding naming no known action.
var ErrUnknownAction = errors.New("unknown action")

// Host is an editor that accepts keydown handlers.
type Host interface {
	nav.Editor
	OnKeyDown(h editor.KeyHandler)
}

// Action runs a navigation command in one direction and reports whether
// it applied.
type Action func(forward bool) bool

// Actions maps binding action names to commands.
type Actions map[string]Action

// NewActions returns the commands of p by action name.
func NewActions(p *nav.Policy) Actions {
	return Actions{
		keymap.ActionAtomicLineEndPoint:   p.AtomicLineEndPoint,
		keymap.ActionSelectToEndPoint:     p.SelectToEndPoint,
		keymap.ActionMediaLineEndPoint:    p.MediaLineEndPoint,
		keymap.ActionBoundaryLineEndPoint: p.BoundaryLineEndPoint,
		keymap.ActionAtomicHorizontal: func(forward bool) bool {
			if forward {
				return p.AtomicHorizontal(caret.Forwards)
			}
			return p.AtomicHorizontal(caret.Backwards)
		},
		keymap.ActionAtomicVertical: func(forward bool) bool {
			if forward {
				return p.AtomicVertical(line.Down)
			}
			return p.AtomicVertical(line.Up)
		},
	}
}

// Validate reports the first binding of km whose action is not in a.
func (a Actions) Validate(km *keymap.Keymap) error {
	for i, b := range km.Bindings {
		if _, ok := a[b.Action]; !ok {
			return fmt.Errorf("keymap %q binding %d (%s): %w: %s", km.Name, i, b.Keys, ErrUnknownAction, b.Action)
		}
	}
	return nil
}

// Execute runs the bindings of km matching ev in order and returns the
// first one whose action succeeds.
func Execute(km *keymap.ParsedKeymap, actions Actions, ev key.Event) (*keymap.ParsedBinding, bool) {
	for _, pb := range km.Matching(ev) {
		run, ok := actions[pb.Action]
		if !ok {
			continue
		}
		if run(pb.Forward()) {
			return pb, true
		}
	}
	return nil, false
}

type options struct {
	os     platform.OS
	keymap *keymap.ParsedKeymap
	log    *logging.Logger
}

// Option configures a setup.
type Option func(*options)

// WithPlatform selects the platform of the default table.
func WithPlatform(os platform.OS) Option {
	return func(o *options) {
		o.os = os
	}
}

// WithKeymap replaces the default table.
func WithKeymap(km *keymap.ParsedKeymap) Option {
	return func(o *options) {
		if km != nil {
			o.keymap = km
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// SetupHomeEnd installs the Home/End table on host.
func SetupHomeEnd(host Host, overlay *fakecaret.Controller, opts ...Option) (*nav.Policy, error) {
	return setup(host, overlay, keymap.HomeEndTable, opts)
}

// SetupArrows installs the arrow key table on host.
func SetupArrows(host Host, overlay *fakecaret.Controller, opts ...Option) (*nav.Policy, error) {
	return setup(host, overlay, keymap.ArrowTable, opts)
}

func setup(host Host, overlay *fakecaret.Controller, table func(platform.OS) *keymap.Keymap, opts []Option) (*nav.Policy, error) {
	o := options{os: platform.Detect(), log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.keymap == nil {
		km, err := table(o.os).Parse()
		if err != nil {
			return nil, err
		}
		o.keymap = km
	}

	p := nav.New(host, overlay, o.log)
	actions := NewActions(p)
	if err := actions.Validate(o.keymap.Keymap); err != nil {
		return nil, err
	}

	log := o.log.WithComponent("keyboard").WithField("keymap", o.keymap.Name)
	km := o.keymap
	host.OnKeyDown(func(ev *editor.KeyEvent) {
		if ev.IsDefaultPrevented() {
			return
		}
		if pb, ok := Execute(km, actions, ev.Event); ok {
			log.Debug("%s -> %s forward=%v", ev.Event, pb.Action, pb.Forward())
			ev.PreventDefault()
		}
	})
	return p, nil
}
