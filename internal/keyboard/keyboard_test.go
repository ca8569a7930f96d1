package keyboard

import (
	"errors"
	"testing"

	"github.com/dshills/cefnav/internal/caret"
	"github.com/dshills/cefnav/internal/editor"
	"github.com/dshills/cefnav/internal/fakecaret"
	"github.com/dshills/cefnav/internal/input/key"
	"github.com/dshills/cefnav/internal/input/keymap"
	"github.com/dshills/cefnav/internal/platform"
)

func setupEditor(t *testing.T, html string, os platform.OS) *editor.Editor {
	t.Helper()
	e := editor.New()
	if err := e.SetContent(html); err != nil {
		t.Fatalf("SetContent() error = %v", err)
	}
	if _, err := SetupHomeEnd(e, e.Overlay(), WithPlatform(os)); err != nil {
		t.Fatalf("SetupHomeEnd() error = %v", err)
	}
	if _, err := SetupArrows(e, e.Overlay(), WithPlatform(os)); err != nil {
		t.Fatalf("SetupArrows() error = %v", err)
	}
	return e
}

func pos(e *editor.Editor, off int, path ...int) caret.Position {
	return caret.At(e.Root().Path(path...), off)
}

func TestHomeEndKeys(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		os      platform.OS
		sel     func(e *editor.Editor) caret.Range
		k       key.Key
		mods    key.Modifier
		handled bool
		want    func(e *editor.Editor) caret.Range
	}{
		{
			name:    "home moves before atomic node in the same block",
			html:    `<p>123</p><p><span contenteditable="false">CEF</span>456</p>`,
			sel:     func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 3, 1, 1)) },
			k:       key.KeyHome,
			handled: true,
			want:    func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 0, 1)) },
		},
		{
			name:    "home from after atomic node",
			html:    `<p><span contenteditable="false">CEF</span></p>`,
			sel:     func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 1, 0)) },
			k:       key.KeyHome,
			handled: true,
			want:    func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 0, 0)) },
		},
		{
			name: "home stops at a line break and moves natively",
			html: `<p>123</p><p><span contenteditable="false">CEF</span><br>456</p>`,
			sel:  func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 3, 1, 2)) },
			k:    key.KeyHome,
			want: func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 0, 1, 2)) },
		},
		{
			name: "home without atomic node moves natively",
			html: `<p>123</p>`,
			sel:  func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 1, 0, 0)) },
			k:    key.KeyHome,
			want: func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 0, 0, 0)) },
		},
		{
			name:    "end moves after atomic node in the same block",
			html:    `<p>123<span contenteditable="false">CEF</span></p><p>456</p>`,
			sel:     func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 0, 0, 0)) },
			k:       key.KeyEnd,
			handled: true,
			want:    func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 2, 0)) },
		},
		{
			name:    "end from the end of a range",
			html:    `<p>123<br>456<span contenteditable="false">CEF</span></p>`,
			sel:     func(e *editor.Editor) caret.Range { return caret.Range{Start: pos(e, 0, 0, 0), End: pos(e, 0, 0, 2)} },
			k:       key.KeyEnd,
			handled: true,
			want:    func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 4, 0)) },
		},
		{
			name:    "ctrl shift home selects to an atomic block",
			html:    `<p contenteditable="false">CEF</p><p>abc</p>`,
			os:      platform.Windows,
			sel:     func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 2, 1, 0)) },
			k:       key.KeyHome,
			mods:    key.ModCtrl | key.ModShift,
			handled: true,
			want:    func(e *editor.Editor) caret.Range { return caret.Range{Start: pos(e, 0), End: pos(e, 2, 1, 0)} },
		},
		{
			name:    "shift home selects to an atomic block on macos",
			html:    `<p contenteditable="false">CEF</p><p>abc</p>`,
			os:      platform.MacOS,
			sel:     func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 2, 1, 0)) },
			k:       key.KeyHome,
			mods:    key.ModShift,
			handled: true,
			want:    func(e *editor.Editor) caret.Range { return caret.Range{Start: pos(e, 0), End: pos(e, 2, 1, 0)} },
		},
		{
			name:    "cmd shift down selects to an atomic block on macos",
			html:    `<p>abc</p><p contenteditable="false">CEF</p>`,
			os:      platform.MacOS,
			sel:     func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 1, 0, 0)) },
			k:       key.KeyDown,
			mods:    key.ModMeta | key.ModShift,
			handled: true,
			want:    func(e *editor.Editor) caret.Range { return caret.Range{Start: pos(e, 1, 0, 0), End: pos(e, 2)} },
		},
		{
			name:    "end moves after trailing media",
			html:    `<p>abc<video></video></p>`,
			sel:     func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 0, 0, 0)) },
			k:       key.KeyEnd,
			handled: true,
			want:    func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 2, 0)) },
		},
		{
			name:    "home leaves a link",
			html:    `<p><a href="google.com">link</a>test</p>`,
			sel:     func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 2, 0, 0, 0)) },
			k:       key.KeyHome,
			handled: true,
			want:    func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 0, 0)) },
		},
		{
			name:    "end leaves a trailing link",
			html:    `<p>test<a href="google.com">link 2</a></p>`,
			sel:     func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 0, 0, 0)) },
			k:       key.KeyEnd,
			handled: true,
			want:    func(e *editor.Editor) caret.Range { return caret.Collapsed(pos(e, 2, 0)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os := tt.os
			if os == "" {
				os = platform.Linux
			}
			e := setupEditor(t, tt.html, os)
			e.SetSelection(tt.sel(e))

			handled := e.Dispatch(key.NewSpecialEvent(tt.k, tt.mods))
			if handled != tt.handled {
				t.Errorf("Dispatch() = %v, want %v", handled, tt.handled)
			}
			if got, want := e.Selection(), tt.want(e); got != want {
				t.Errorf("selection = %v, want %v", got, want)
			}
		})
	}
}

func TestArrowKeysAroundAtomicNode(t *testing.T) {
	e := setupEditor(t, `<p>ab<span contenteditable="false">X</span>cd</p>`, platform.Linux)
	cef := e.Root().Path(0, 1)
	e.SetSelection(caret.Collapsed(pos(e, 1, 0, 0)))

	steps := []struct {
		name    string
		handled bool
		overlay fakecaret.State
		sel     caret.Range
	}{
		{"overlay before", true, fakecaret.State{Anchor: cef, Side: fakecaret.SideBefore, Visible: true}, caret.Collapsed(caret.Before(cef))},
		{"select node", true, fakecaret.State{}, caret.SelectNode(cef)},
		{"overlay after", true, fakecaret.State{Anchor: cef, Side: fakecaret.SideAfter, Visible: true}, caret.Collapsed(caret.After(cef))},
		{"native into text", false, fakecaret.State{}, caret.Collapsed(pos(e, 1, 0, 2))},
	}

	for _, st := range steps {
		handled := e.Dispatch(key.NewSpecialEvent(key.KeyRight, key.ModNone))
		if handled != st.handled {
			t.Errorf("%s: Dispatch() = %v, want %v", st.name, handled, st.handled)
		}
		if got := e.Overlay().State(); got != st.overlay {
			t.Errorf("%s: overlay = %+v, want %+v", st.name, got, st.overlay)
		}
		if got := e.Selection(); got != st.sel {
			t.Errorf("%s: selection = %v, want %v", st.name, got, st.sel)
		}
	}
}

func TestHandlerSkipsPreventedEvents(t *testing.T) {
	e := editor.New()
	if err := e.SetContent(`<p>123<span contenteditable="false">CEF</span></p>`); err != nil {
		t.Fatal(err)
	}
	e.OnKeyDown(func(ev *editor.KeyEvent) { ev.PreventDefault() })
	if _, err := SetupHomeEnd(e, e.Overlay(), WithPlatform(platform.Linux)); err != nil {
		t.Fatal(err)
	}

	start := caret.Collapsed(pos(e, 0, 0, 0))
	e.SetSelection(start)
	e.Dispatch(key.NewSpecialEvent(key.KeyEnd, key.ModNone))
	if got := e.Selection(); got != start {
		t.Errorf("selection = %v, want %v", got, start)
	}
}

func TestCustomKeymap(t *testing.T) {
	km := keymap.NewKeymap(keymap.HomeEnd).
		Add(keymap.NewBinding("Ctrl+E", keymap.ActionAtomicLineEndPoint).WithArgs(map[string]any{keymap.ArgForward: true}))
	parsed, err := km.Parse()
	if err != nil {
		t.Fatal(err)
	}

	e := editor.New()
	if err := e.SetContent(`<p>123<span contenteditable="false">CEF</span></p>`); err != nil {
		t.Fatal(err)
	}
	if _, err := SetupHomeEnd(e, e.Overlay(), WithKeymap(parsed)); err != nil {
		t.Fatal(err)
	}

	if !e.Dispatch(key.NewRuneEvent('E', key.ModCtrl)) {
		t.Fatal("Ctrl+E should be handled")
	}
	if got, want := e.Selection(), caret.Collapsed(pos(e, 2, 0)); got != want {
		t.Errorf("selection = %v, want %v", got, want)
	}
}

func TestUnknownAction(t *testing.T) {
	km := keymap.NewKeymap("bad").Add(keymap.NewBinding("End", "caret.teleport"))
	parsed, err := km.Parse()
	if err != nil {
		t.Fatal(err)
	}
	e := editor.New()
	if _, err := SetupHomeEnd(e, e.Overlay(), WithKeymap(parsed)); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("SetupHomeEnd() error = %v, want ErrUnknownAction", err)
	}
}
