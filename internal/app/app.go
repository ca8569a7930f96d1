// Package app wires configuration, logging, keymaps, the editor and the
// terminal front end together and runs the event loop.
package app

import (
	"context"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dshills/cefnav/internal/config"
	"github.com/dshills/cefnav/internal/editor"
	"github.com/dshills/cefnav/internal/input/key"
	"github.com/dshills/cefnav/internal/input/keymap"
	"github.com/dshills/cefnav/internal/logging"
	"github.com/dshills/cefnav/internal/platform"
	"github.com/dshills/cefnav/internal/renderer"
	"github.com/dshills/cefnav/internal/watch"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML configuration file. Empty selects the user
	// config file.
	ConfigPath string

	// File is the HTML content to navigate. Empty starts with no content.
	File string

	// LogLevel overrides log.level when set.
	LogLevel string

	// LogOutput receives log lines. Defaults to io.Discard, since the
	// terminal owns stderr while running.
	LogOutput io.Writer

	// Platform overrides the configured platform when set.
	Platform string

	// Watch reloads File when it changes on disk.
	Watch bool
}

// Application is the central coordinator for all cefnav components.
type Application struct {
	mu sync.RWMutex

	opts Options

	config   *config.Config
	log      *logging.Logger
	platform platform.OS
	keymaps  *keymap.Registry
	editor   *editor.Editor
	watcher  *watch.Watcher

	term     *renderer.Terminal
	renderer *renderer.Renderer

	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// reloadEvent is posted to the event loop when the content file changes.
type reloadEvent struct {
	path string
}

// New creates an Application and initializes every component.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// SetTerminal sets the terminal. Must be called before Run.
func (app *Application) SetTerminal(t *renderer.Terminal) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.term = t
	return nil
}

// Run initializes the terminal and processes events until a quit key is
// pressed, the context is canceled or Shutdown is called.
func (app *Application) Run(ctx context.Context) (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	term := app.term
	app.mu.Unlock()
	if term == nil {
		return ErrNoTerminal
	}

	if err := term.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer term.Shutdown()
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	app.mu.Lock()
	app.renderer = renderer.New(term, app.rendererOptions())
	app.mu.Unlock()

	app.editor.SetViewportHeight(app.renderer.ContentHeight())
	app.draw()

	stop := make(chan struct{})
	defer close(stop)
	go app.forwardReloads(term)
	go func() {
		select {
		case <-ctx.Done():
			term.Interrupt(ctx.Err())
		case <-app.done:
			term.Interrupt(ErrQuit)
		case <-stop:
		}
	}()

	return app.eventLoop(ctx, term)
}

func (app *Application) eventLoop(ctx context.Context, term *renderer.Terminal) error {
	for {
		ev, ok := term.PollEvent()
		if !ok {
			return nil
		}
		switch ev.Type {
		case renderer.EventKey:
			if isQuitKey(ev.Key) {
				return nil
			}
			if !app.editor.Dispatch(ev.Key) {
				app.log.Debug("no binding for %s", ev.Key)
			}

		case renderer.EventResize:
			app.editor.SetViewportHeight(app.renderer.ContentHeight())

		case renderer.EventFocus:
			if ev.Focused {
				app.editor.Focus()
			} else {
				app.editor.Blur()
			}

		case renderer.EventInterrupt:
			switch data := ev.Data.(type) {
			case reloadEvent:
				if err := app.Reload(); err != nil {
					app.log.Warn("reload %s: %v", data.path, err)
				}
			case error:
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return nil
			}

		default:
			continue
		}
		app.draw()
	}
}

// forwardReloads turns file change events into interrupts for the event
// loop, so content is only replaced between key events.
func (app *Application) forwardReloads(term *renderer.Terminal) {
	if app.watcher == nil {
		return
	}
	for ev := range app.watcher.Events() {
		if ev.Op.Has(watch.OpWrite) || ev.Op.Has(watch.OpCreate) {
			term.Interrupt(reloadEvent{path: ev.Path})
		}
	}
}

func (app *Application) draw() {
	app.mu.RLock()
	r := app.renderer
	app.mu.RUnlock()
	if r != nil {
		r.Draw(app.editor.Snapshot())
	}
}

// isQuitKey reports whether ev ends the session.
func isQuitKey(ev key.Event) bool {
	return ev.Matches("Ctrl+q") || ev.Matches("Ctrl+c") || ev.Matches("Escape")
}

// Reload reads the content file again. The selection returns to the start
// and any overlay caret is hidden.
func (app *Application) Reload() error {
	if app.opts.File == "" {
		return nil
	}
	if err := app.editor.LoadFile(app.opts.File); err != nil {
		return err
	}
	app.log.Info("reloaded %s", app.opts.File)
	return nil
}

// Shutdown stops the event loop and releases resources. It is safe to
// call more than once.
func (app *Application) Shutdown() {
	app.closeOnce.Do(func() {
		close(app.done)
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				app.log.Warn("closing watcher: %v", err)
			}
		}
	})
}

// IsRunning returns true if the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Editor returns the editor.
func (app *Application) Editor() *editor.Editor {
	return app.editor
}

// Keymaps returns the keymap registry.
func (app *Application) Keymaps() *keymap.Registry {
	return app.keymaps
}

// Platform returns the resolved platform.
func (app *Application) Platform() platform.OS {
	return app.platform
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.log
}
