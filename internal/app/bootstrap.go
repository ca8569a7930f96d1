package app

import (
	"context"
	"io"
	"path/filepath"

	"github.com/dshills/cefnav/internal/config"
	"github.com/dshills/cefnav/internal/editor"
	"github.com/dshills/cefnav/internal/fakecaret"
	"github.com/dshills/cefnav/internal/input/keymap"
	"github.com/dshills/cefnav/internal/keyboard"
	"github.com/dshills/cefnav/internal/layout"
	"github.com/dshills/cefnav/internal/logging"
	"github.com/dshills/cefnav/internal/platform"
	"github.com/dshills/cefnav/internal/renderer"
	"github.com/dshills/cefnav/internal/watch"
)

// bootstrapper initializes components in dependency order, cleaning up
// what was already started when a later step fails.
type bootstrapper struct {
	app  *Application
	opts Options
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{app: app, opts: app.opts}
}

func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogger,
		b.initPlatform,
		b.initKeymaps,
		b.initEditor,
		b.initKeyboard,
		b.initContent,
		b.initWatcher,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

func (b *bootstrapper) configPath() string {
	if b.opts.ConfigPath != "" {
		return b.opts.ConfigPath
	}
	return config.DefaultPath()
}

func (b *bootstrapper) initConfig() error {
	cfg := config.New(config.WithPath(b.configPath()))
	if err := cfg.Load(context.Background()); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	b.app.config = cfg
	return nil
}

func (b *bootstrapper) initLogger() error {
	level := b.app.config.Log().ParsedLevel()
	if b.opts.LogLevel != "" {
		level = logging.ParseLevel(b.opts.LogLevel)
	}
	out := b.opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	b.app.log = logging.New(logging.Config{Level: level, Output: out, Prefix: "cefnav"})
	b.app.log.Debug("config loaded from %s", b.configPath())
	return nil
}

func (b *bootstrapper) initPlatform() error {
	p := b.app.config.Platform()
	if b.opts.Platform != "" {
		var err error
		if p, err = platform.Resolve(b.opts.Platform); err != nil {
			return &InitError{Component: "platform", Err: err}
		}
	}
	b.app.platform = p
	b.app.log.Debug("platform %s", p)
	return nil
}

// initKeymaps registers the default tables, then files from the keymaps
// directory next to the config file and from keymap.files. Relative
// keymap.files entries resolve against the config directory. A file whose
// keymap name matches a default table replaces it.
func (b *bootstrapper) initKeymaps() error {
	reg := keymap.NewRegistry()
	if err := reg.LoadDefaults(b.app.platform); err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	dir := filepath.Dir(b.configPath())
	loader := keymap.NewLoader()
	loader.AddSearchPath(filepath.Join(dir, "keymaps"))

	var files []string
	for _, f := range b.app.config.Keymap().Files {
		if !filepath.IsAbs(f) {
			f = filepath.Join(dir, f)
		}
		files = append(files, f)
	}
	if err := loader.LoadAndRegister(reg, files...); err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	b.app.keymaps = reg
	b.app.log.Debug("keymaps %v", reg.Names())
	return nil
}

func (b *bootstrapper) initEditor() error {
	lc := b.app.config.Layout()
	var m layout.Measurer = layout.CellMeasurer{}
	if lc.Measurer == config.MeasurerFont {
		m = layout.NewFontMeasurer(nil)
	}

	ed := editor.New(
		editor.WithLogger(b.app.log),
		editor.WithParseOptions(b.app.config.Content().ParseOptions()...),
		editor.WithLayout(layout.Options{
			Width:    float64(lc.Width) * m.Advance("M"),
			Measurer: m,
		}),
	)
	log := b.app.log.WithComponent("app")
	ed.OnNodeChange(func(nc editor.NodeChange) {
		if nc.Element != nil {
			log.Debug("node change <%s> depth %d", nc.Element.Tag, len(nc.Parents))
		}
	})
	ed.Overlay().OnChange(func(st fakecaret.State) {
		if st.Visible {
			log.Debug("overlay %s <%s>", st.Side, st.Anchor.Tag)
		}
	})
	b.app.editor = ed
	return nil
}

func (b *bootstrapper) initKeyboard() error {
	ed := b.app.editor
	common := []keyboard.Option{
		keyboard.WithPlatform(b.app.platform),
		keyboard.WithLogger(b.app.log),
	}

	if _, err := keyboard.SetupHomeEnd(ed, ed.Overlay(),
		append(common, keyboard.WithKeymap(b.app.keymaps.Get(keymap.HomeEnd)))...); err != nil {
		return &InitError{Component: "keyboard", Err: err}
	}
	if _, err := keyboard.SetupArrows(ed, ed.Overlay(),
		append(common, keyboard.WithKeymap(b.app.keymaps.Get(keymap.Arrows)))...); err != nil {
		return &InitError{Component: "keyboard", Err: err}
	}
	return nil
}

func (b *bootstrapper) initContent() error {
	if b.opts.File == "" {
		return nil
	}
	if err := b.app.editor.LoadFile(b.opts.File); err != nil {
		return &InitError{Component: "content", Err: err}
	}
	b.app.log.Info("loaded %s", b.opts.File)
	return nil
}

func (b *bootstrapper) initWatcher() error {
	if !b.opts.Watch || b.opts.File == "" {
		return nil
	}
	w, err := watch.New(watch.WithLogger(b.app.log))
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	if err := w.Add(b.opts.File); err != nil {
		_ = w.Close()
		return &InitError{Component: "watcher", Err: err}
	}
	b.app.watcher = w
	return nil
}

// rendererOptions scales layout units to cells: one for cell layouts, the
// glyph box for font layouts.
func (app *Application) rendererOptions() renderer.Options {
	opts := renderer.DefaultOptions()
	opts.Logger = app.log
	if m := app.editor.Snapshot().Layout.Measurer(); m != nil {
		opts.ScaleX = 1 / m.Advance("M")
		opts.ScaleY = 1 / m.LineHeight()
	}
	return opts
}

func (b *bootstrapper) cleanup() {
	if b.app.watcher != nil {
		_ = b.app.watcher.Close()
		b.app.watcher = nil
	}
}
