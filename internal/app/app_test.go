package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cefnav/internal/caret"
	"github.com/dshills/cefnav/internal/editor"
	"github.com/dshills/cefnav/internal/input/key"
	"github.com/dshills/cefnav/internal/input/keymap"
	"github.com/dshills/cefnav/internal/keyboard"
	"github.com/dshills/cefnav/internal/platform"
	"github.com/dshills/cefnav/internal/renderer"
)

type fixture struct {
	dir     string
	config  string
	content string
}

func newFixture(t *testing.T, cfg, html string) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:     dir,
		config:  filepath.Join(dir, "config.toml"),
		content: filepath.Join(dir, "doc.html"),
	}
	if cfg != "" {
		write(t, f.config, cfg)
	}
	if html != "" {
		write(t, f.content, html)
	}
	return f
}

func write(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newApp(t *testing.T, opts Options) *Application {
	t.Helper()
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(app.Shutdown)
	return app
}

// waitFor polls cond until it holds or a second passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// start runs app on a simulation screen and returns the terminal and the
// channel receiving Run's result.
func start(t *testing.T, app *Application, ctx context.Context) (*renderer.Terminal, <-chan error) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := renderer.NewTerminalWithScreen(sim)
	if err := app.SetTerminal(term); err != nil {
		t.Fatalf("SetTerminal() error = %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	waitFor(t, "renderer", func() bool {
		app.mu.RLock()
		defer app.mu.RUnlock()
		return app.renderer != nil
	})
	return term, done
}

func result(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return")
		return nil
	}
}

func TestNewDefaults(t *testing.T) {
	f := newFixture(t, "", "")
	app := newApp(t, Options{ConfigPath: f.config})

	if app.Editor() == nil || app.Config() == nil || app.Logger() == nil {
		t.Fatal("components not initialized")
	}
	if got := app.Platform(); got != platform.Detect() {
		t.Errorf("Platform() = %v, want %v", got, platform.Detect())
	}
	names := app.Keymaps().Names()
	for _, want := range []string{keymap.Arrows, keymap.HomeEnd} {
		found := false
		for _, n := range names {
			found = found || n == want
		}
		if !found {
			t.Errorf("Keymaps() = %v, missing %s", names, want)
		}
	}
	if app.IsRunning() {
		t.Error("IsRunning() should be false before Run")
	}
}

func TestNewWithContent(t *testing.T) {
	f := newFixture(t, "platform = \"windows\"\n[content]\natomicSelector = \".island\"\n",
		`<p>a<span class="island">XY</span>b</p>`)
	app := newApp(t, Options{ConfigPath: f.config, File: f.content, Platform: "mac"})

	if got := app.Platform(); got != platform.MacOS {
		t.Errorf("Platform() = %v, want the macos override", got)
	}
	p := app.Editor().Root().Child(0)
	if got := p.TextContent(); got != "aXYb" {
		t.Errorf("content = %q", got)
	}
	if !p.Child(1).IsAtomic() {
		t.Error("configured atomic selector not applied")
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name      string
		cfg       string
		opts      func(fixture) Options
		component string
		is        error
	}{
		{
			name:      "invalid toml",
			cfg:       "[layout\n",
			component: "config",
		},
		{
			name:      "invalid selector",
			cfg:       "[content]\natomicSelector = \"[[\"\n",
			component: "config",
		},
		{
			name:      "platform override",
			opts:      func(f fixture) Options { return Options{ConfigPath: f.config, Platform: "plan9"} },
			component: "platform",
			is:        platform.ErrUnknownPlatform,
		},
		{
			name:      "missing keymap file",
			cfg:       "[keymap]\nfiles = [\"nope.yaml\"]\n",
			component: "keymap",
		},
		{
			name:      "missing content",
			opts:      func(f fixture) Options { return Options{ConfigPath: f.config, File: filepath.Join(f.dir, "nope.html")} },
			component: "content",
			is:        editor.ErrNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.cfg, "")
			opts := Options{ConfigPath: f.config}
			if tt.opts != nil {
				opts = tt.opts(f)
			}
			_, err := New(opts)
			var ierr *InitError
			if !errors.As(err, &ierr) {
				t.Fatalf("New() error = %v, want *InitError", err)
			}
			if ierr.Component != tt.component {
				t.Errorf("component = %q, want %q", ierr.Component, tt.component)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestKeymapDirectoryOverride(t *testing.T) {
	f := newFixture(t, "", "")
	path := filepath.Join(f.dir, "keymaps", "home-end.yaml")
	write(t, path, `
name: home-end
bindings:
  - keys: Ctrl+e
    action: caret.atomicLineEndPoint
    args: {forward: true}
`)
	app := newApp(t, Options{ConfigPath: f.config})
	pk := app.Keymaps().Get(keymap.HomeEnd)
	if pk == nil || pk.Source != path || len(pk.Bindings) != 1 {
		t.Fatalf("home-end table not replaced by %s: %+v", path, pk)
	}

	write(t, path, "name: home-end\nbindings:\n  - keys: End\n    action: caret.teleport\n")
	_, err := New(Options{ConfigPath: f.config})
	if !errors.Is(err, keyboard.ErrUnknownAction) {
		t.Errorf("New() error = %v, want ErrUnknownAction", err)
	}
}

func TestKeymapFilesRelativeToConfig(t *testing.T) {
	f := newFixture(t, "[keymap]\nfiles = [\"extra.yaml\"]\n", "")
	write(t, filepath.Join(f.dir, "extra.yaml"), "name: extra\nbindings:\n  - keys: Ctrl+e\n    action: caret.atomicHorizontal\n")

	app := newApp(t, Options{ConfigPath: f.config})
	if app.Keymaps().Get("extra") == nil {
		t.Errorf("Keymaps() = %v, want extra loaded next to the config", app.Keymaps().Names())
	}
}

func TestRunProcessesKeys(t *testing.T) {
	f := newFixture(t, "", `<p>abc</p><p>def</p>`)
	app := newApp(t, Options{ConfigPath: f.config, File: f.content})
	term, done := start(t, app, context.Background())

	term.PostKey(key.NewSpecialEvent(key.KeyDown, key.ModNone))
	term.PostKey(key.NewSpecialEvent(key.KeyEnd, key.ModNone))
	term.PostKey(key.NewRuneEvent('q', key.ModCtrl))

	if err := result(t, done); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	def := app.Editor().Root().Child(1).Child(0)
	if got, want := app.Editor().Selection(), caret.Collapsed(caret.At(def, 3)); got != want {
		t.Errorf("selection = %v, want %v", got, want)
	}
	if app.IsRunning() {
		t.Error("IsRunning() should be false after Run returns")
	}
}

func TestRunStops(t *testing.T) {
	tests := []struct {
		name string
		stop func(*Application, context.CancelFunc)
		want error
	}{
		{"shutdown", func(a *Application, _ context.CancelFunc) { a.Shutdown() }, nil},
		{"cancel", func(_ *Application, cancel context.CancelFunc) { cancel() }, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "", "")
			app := newApp(t, Options{ConfigPath: f.config})
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			_, done := start(t, app, ctx)

			tt.stop(app, cancel)
			if err := result(t, done); !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunWithoutTerminal(t *testing.T) {
	f := newFixture(t, "", "")
	app := newApp(t, Options{ConfigPath: f.config})
	if err := app.Run(context.Background()); !errors.Is(err, ErrNoTerminal) {
		t.Errorf("Run() error = %v, want ErrNoTerminal", err)
	}
}

func TestReloadHidesOverlay(t *testing.T) {
	f := newFixture(t, "", `<p>a<span contenteditable="false">X</span></p>`)
	app := newApp(t, Options{ConfigPath: f.config, File: f.content})
	ed := app.Editor()
	ed.Overlay().ShowAfter(ed.Root().Child(0).Child(1))

	write(t, f.content, `<p>fresh</p>`)
	if err := app.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := ed.Root().TextContent(); got != "fresh" {
		t.Errorf("content = %q after reload", got)
	}
	if ed.Overlay().IsShown() {
		t.Error("overlay should be hidden after reload")
	}
}

func TestWatchReloadsContent(t *testing.T) {
	f := newFixture(t, "", `<p>old</p>`)
	app := newApp(t, Options{ConfigPath: f.config, File: f.content, Watch: true})
	_, done := start(t, app, context.Background())

	write(t, f.content, `<p>new</p>`)
	waitFor(t, "reload", func() bool {
		return strings.Contains(app.Editor().Snapshot().Root.TextContent(), "new")
	})

	app.Shutdown()
	if err := result(t, done); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestRendererOptionsFontScale(t *testing.T) {
	f := newFixture(t, "[layout]\nmeasurer = \"font\"\nwidth = 10\n", "")
	app := newApp(t, Options{ConfigPath: f.config})

	opts := app.rendererOptions()
	if opts.ScaleX != 1.0/7 || opts.ScaleY != 1.0/13 {
		t.Errorf("scale = %v x %v, want 1/7 x 1/13", opts.ScaleX, opts.ScaleY)
	}
	if got := app.Editor().Snapshot().Layout.Width(); got != 70 {
		t.Errorf("layout width = %v, want 10 cells of 7px", got)
	}
}
