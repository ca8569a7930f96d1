package nav

import (
	"testing"

	"github.com/dshills/cefnav/internal/caret"
	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/fakecaret"
	"github.com/dshills/cefnav/internal/layout"
	"github.com/dshills/cefnav/internal/line"
)

type testEditor struct {
	root    *dom.Node
	lay     *layout.Layout
	sel     caret.Range
	sets    int
	scrolls int
}

func (e *testEditor) Root() *dom.Node              { return e.root }
func (e *testEditor) Geometry() caret.Geometry     { return e.lay }
func (e *testEditor) Selection() caret.Range       { return e.sel }
func (e *testEditor) SetSelection(r caret.Range)   { e.sel = r; e.sets++ }
func (e *testEditor) ScrollIntoView(_ caret.Range) { e.scrolls++ }

func setup(html string) (*testEditor, *Policy) {
	root := dom.MustParse(html)
	ed := &testEditor{root: root, lay: layout.New(root, layout.Options{})}
	return ed, New(ed, fakecaret.New(ed, nil), nil)
}

func (e *testEditor) cursor(off int, path ...int) {
	e.sel = caret.Collapsed(caret.At(e.root.Path(path...), off))
}

func (e *testEditor) at(off int, path ...int) caret.Position {
	return caret.At(e.root.Path(path...), off)
}

func TestAtomicLineEndPoint(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		forward bool
		setup   func(e *testEditor)
		ok      bool
		want    func(e *testEditor) caret.Position
	}{
		{
			name:  "home moves before atomic node in the same block",
			html:  `<p>123</p><p><span contenteditable="false">CEF</span>456</p>`,
			setup: func(e *testEditor) { e.cursor(3, 1, 1) },
			ok:    true,
			want:  func(e *testEditor) caret.Position { return e.at(0, 1) },
		},
		{
			name:  "home from after atomic node",
			html:  `<p><span contenteditable="false">CEF</span></p>`,
			setup: func(e *testEditor) { e.cursor(1, 0) },
			ok:    true,
			want:  func(e *testEditor) caret.Position { return e.at(0, 0) },
		},
		{
			name:  "home uses the start of the range",
			html:  `<p>123</p><p><span contenteditable="false">CEF</span>456<br>789</p>`,
			setup: func(e *testEditor) { e.cursor(3, 1, 1) },
			ok:    true,
			want:  func(e *testEditor) caret.Position { return e.at(0, 1) },
		},
		{
			name:  "home does not cross a line break",
			html:  `<p>123</p><p><span contenteditable="false">CEF</span><br>456</p>`,
			setup: func(e *testEditor) { e.cursor(3, 1, 2) },
		},
		{
			name:  "home without atomic node",
			html:  `<p>123</p>`,
			setup: func(e *testEditor) { e.cursor(1, 0, 0) },
		},
		{
			name:    "end moves after atomic node in the same block",
			html:    `<p>123<span contenteditable="false">CEF</span></p><p>456</p>`,
			forward: true,
			setup:   func(e *testEditor) { e.cursor(0, 0, 0) },
			ok:      true,
			want:    func(e *testEditor) caret.Position { return e.at(2, 0) },
		},
		{
			name:    "end from before atomic node",
			html:    `<p><span contenteditable="false">CEF</span></p>`,
			forward: true,
			setup:   func(e *testEditor) { e.cursor(0, 0) },
			ok:      true,
			want:    func(e *testEditor) caret.Position { return e.at(1, 0) },
		},
		{
			name:    "end uses the end of the range",
			html:    `<p>123<br>456<span contenteditable="false">CEF</span></p>`,
			forward: true,
			setup: func(e *testEditor) {
				e.sel = caret.Range{Start: e.at(0, 0, 0), End: e.at(0, 0, 2)}
			},
			ok:   true,
			want: func(e *testEditor) caret.Position { return e.at(4, 0) },
		},
		{
			name:    "end does not cross a line break",
			html:    `<p>123<br><span contenteditable="false">CEF</span></p><p>456</p>`,
			forward: true,
			setup:   func(e *testEditor) { e.cursor(0, 0, 0) },
		},
		{
			name:    "end without atomic node",
			html:    `<p>123</p>`,
			forward: true,
			setup:   func(e *testEditor) { e.cursor(1, 0, 0) },
		},
	}
	for _, tt := range tests {
		ed, p := setup(tt.html)
		tt.setup(ed)
		before := ed.sel

		ok := p.AtomicLineEndPoint(tt.forward)
		if ok != tt.ok {
			t.Errorf("%s: got %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if !ok {
			if ed.sel != before || ed.sets != 0 {
				t.Errorf("%s: declined but selection changed to %v", tt.name, ed.sel)
			}
			continue
		}
		if want := caret.Collapsed(tt.want(ed)); ed.sel != want {
			t.Errorf("%s: selection = %v, want %v", tt.name, ed.sel, want)
		}

		// Repeating the command from the end point has nothing left to do.
		if p.AtomicLineEndPoint(tt.forward) {
			t.Errorf("%s: second call should decline", tt.name)
		}
	}
}

func TestSelectToEndPoint(t *testing.T) {
	t.Run("forward to atomic block", func(t *testing.T) {
		ed, p := setup(`<p>abc</p><p contenteditable="false">CEF</p>`)
		ed.cursor(1, 0, 0)
		if !p.SelectToEndPoint(true) {
			t.Fatal("expected selection to extend")
		}
		want := caret.Range{Start: ed.at(1, 0, 0), End: ed.at(2)}
		if ed.sel != want {
			t.Errorf("selection = %v, want %v", ed.sel, want)
		}
		if ed.scrolls == 0 {
			t.Error("selection was not scrolled into view")
		}
	})

	t.Run("backward to atomic block", func(t *testing.T) {
		ed, p := setup(`<p contenteditable="false">CEF</p><p>abc</p>`)
		ed.cursor(2, 1, 0)
		if !p.SelectToEndPoint(false) {
			t.Fatal("expected selection to extend")
		}
		want := caret.Range{Start: ed.at(0), End: ed.at(2, 1, 0)}
		if ed.sel != want {
			t.Errorf("selection = %v, want %v", ed.sel, want)
		}
	})

	t.Run("plain paragraphs are left to native selection", func(t *testing.T) {
		ed, p := setup(`<p>abc</p><p>def</p>`)
		ed.cursor(0, 0, 0)
		if p.SelectToEndPoint(true) || p.SelectToEndPoint(false) {
			t.Error("expected decline")
		}
	})
}

func TestMediaLineEndPoint(t *testing.T) {
	ed, p := setup(`<p>abc<video></video></p>`)
	ed.cursor(0, 0, 0)

	if p.AtomicLineEndPoint(true) {
		t.Fatal("media element is not atomic")
	}
	if !p.MediaLineEndPoint(true) {
		t.Fatal("expected end to move after the media element")
	}
	if want := caret.Collapsed(ed.at(2, 0)); ed.sel != want {
		t.Errorf("selection = %v, want %v", ed.sel, want)
	}
}

func TestBoundaryLineEndPoint(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		forward bool
		cursor  []int
		off     int
		want    []int
		wantOff int
	}{
		{"home leaves link from inside", `<p><a href="google.com">link</a>test</p>`, false, []int{0, 0, 0}, 2, []int{0}, 0},
		{"home leaves leading link", `<p><a href="google.com">link1</a>test</p>`, false, []int{0, 1}, 3, []int{0}, 0},
		{"end leaves link from inside", `<p>test<a href="google.com">link</a></p>`, true, []int{0, 1, 0}, 0, []int{0}, 2},
		{"end leaves trailing link", `<p>test<a href="google.com">link 2</a></p>`, true, []int{0, 0}, 0, []int{0}, 2},
	}
	for _, tt := range tests {
		ed, p := setup(tt.html)
		ed.cursor(tt.off, tt.cursor...)
		if !p.BoundaryLineEndPoint(tt.forward) {
			t.Errorf("%s: declined", tt.name)
			continue
		}
		if want := caret.Collapsed(ed.at(tt.wantOff, tt.want...)); ed.sel != want {
			t.Errorf("%s: selection = %v, want %v", tt.name, ed.sel, want)
		}
		if p.BoundaryLineEndPoint(tt.forward) {
			t.Errorf("%s: second call should decline", tt.name)
		}
	}

	ed, p := setup(`<p>plain</p>`)
	ed.cursor(2, 0, 0)
	if p.BoundaryLineEndPoint(true) {
		t.Error("plain text should decline")
	}
}

func TestMoveHorizontally(t *testing.T) {
	const html = `<p>ab<span contenteditable="false">X</span>cd</p>`

	tests := []struct {
		name   string
		dir    caret.Direction
		sel    func(e *testEditor) caret.Range
		ok     bool
		kind   ResultKind
		before bool
	}{
		{
			name: "step onto atomic boundary shows overlay",
			dir:  caret.Forwards,
			sel:  func(e *testEditor) caret.Range { return caret.Collapsed(e.at(1, 0, 0)) },
			ok:   true, kind: OverlayShown, before: true,
		},
		{
			name: "peek ahead shows overlay",
			dir:  caret.Forwards,
			sel:  func(e *testEditor) caret.Range { return caret.Collapsed(e.at(0, 0, 0)) },
			ok:   true, kind: OverlayShown, before: true,
		},
		{
			name: "backward onto atomic boundary",
			dir:  caret.Backwards,
			sel:  func(e *testEditor) caret.Range { return caret.Collapsed(e.at(1, 0, 2)) },
			ok:   true, kind: OverlayShown, before: false,
		},
		{
			name: "adjacent caret selects the node",
			dir:  caret.Forwards,
			sel:  func(e *testEditor) caret.Range { return caret.Collapsed(e.at(2, 0, 0)) },
			ok:   true, kind: Selected,
		},
		{
			name: "selected node forwards",
			dir:  caret.Forwards,
			sel:  func(e *testEditor) caret.Range { return caret.SelectNode(e.root.Path(0, 1)) },
			ok:   true, kind: OverlayShown, before: false,
		},
		{
			name: "selected node backwards",
			dir:  caret.Backwards,
			sel:  func(e *testEditor) caret.Range { return caret.SelectNode(e.root.Path(0, 1)) },
			ok:   true, kind: OverlayShown, before: true,
		},
		{
			name: "moving away from atomic node is native",
			dir:  caret.Forwards,
			sel:  func(e *testEditor) caret.Range { return caret.Collapsed(e.at(2, 0)) },
		},
		{
			name: "text selection is native",
			dir:  caret.Forwards,
			sel:  func(e *testEditor) caret.Range { return caret.Range{Start: e.at(0, 0, 2), End: e.at(2, 0, 2)} },
		},
	}
	for _, tt := range tests {
		ed, p := setup(html)
		cef := ed.root.Path(0, 1)
		rng := tt.sel(ed)
		ed.sel = rng

		r, ok := p.MoveHorizontally(tt.dir, rng, caret.IsBeforeAtomic, caret.IsAfterAtomic, caret.IsAtomic)
		if ok != tt.ok {
			t.Errorf("%s: got %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if !ok {
			if ed.sets != 0 {
				t.Errorf("%s: declined but selection was set", tt.name)
			}
			continue
		}
		if r.Kind != tt.kind || r.Node != cef {
			t.Errorf("%s: result = %s on %v, want %s on atomic node", tt.name, r.Kind, r.Node, tt.kind)
		}
		if r.Kind == OverlayShown {
			st := p.Overlay().State()
			wantSide := fakecaret.SideAfter
			if tt.before {
				wantSide = fakecaret.SideBefore
			}
			if !st.Visible || st.Anchor != cef || st.Side != wantSide {
				t.Errorf("%s: overlay = %+v, want %s", tt.name, st, wantSide)
			}
			if r.Before != tt.before || ed.sel != r.Range || !ed.sel.IsCollapsed() {
				t.Errorf("%s: selection %v does not park the caret %v", tt.name, ed.sel, r.Range)
			}
		}
		if r.Kind == Selected && ed.sel != caret.SelectNode(cef) {
			t.Errorf("%s: selection = %v", tt.name, ed.sel)
		}
	}
}

func TestMoveHorizontallyPlainText(t *testing.T) {
	ed, p := setup(`<p>abc</p>`)
	for _, off := range []int{1, 3} {
		ed.cursor(off, 0, 0)
		before := ed.sel
		if _, ok := p.MoveHorizontally(caret.Forwards, ed.sel, caret.IsBeforeAtomic, caret.IsAfterAtomic, caret.IsAtomic); ok {
			t.Errorf("offset %d: expected decline", off)
		}
		if ed.sel != before {
			t.Errorf("offset %d: selection changed to %v", off, ed.sel)
		}
	}
}

func TestMoveHorizontallyBoundaryContainer(t *testing.T) {
	ed, p := setup(`<p data-caret-container="">abc</p>`)

	ed.cursor(3, 0, 0)
	r, ok := p.MoveHorizontally(caret.Forwards, ed.sel, caret.IsBeforeAtomic, caret.IsAfterAtomic, caret.IsAtomic)
	if !ok || r.Kind != Reselected || r.Range != caret.Collapsed(ed.at(3, 0, 0)) {
		t.Errorf("at end of container: %+v, %v", r, ok)
	}

	ed.cursor(1, 0, 0)
	r, ok = p.MoveHorizontally(caret.Forwards, ed.sel, caret.IsBeforeAtomic, caret.IsAfterAtomic, caret.IsAtomic)
	if !ok || r.Kind != Moved || ed.sel != caret.Collapsed(ed.at(2, 0, 0)) {
		t.Errorf("inside container: %+v, %v, selection %v", r, ok, ed.sel)
	}
}

func TestMoveVertically(t *testing.T) {
	t.Run("closest candidate is atomic", func(t *testing.T) {
		tests := []struct {
			off    int
			before bool
		}{
			{1, true},
			{2, false},
		}
		for _, tt := range tests {
			ed, p := setup(`<p>abc</p><p><span contenteditable="false">CEF</span>def</p>`)
			ed.cursor(tt.off, 0, 0)
			r, ok := p.MoveVertically(line.Down, ed.sel, caret.IsBeforeAtomic, caret.IsAfterAtomic, caret.IsAtomic)
			if !ok || r.Kind != OverlayShown || r.Node != ed.root.Path(1, 0) {
				t.Fatalf("offset %d: result %+v, %v", tt.off, r, ok)
			}
			if r.Before != tt.before {
				t.Errorf("offset %d: before = %v, want %v", tt.off, r.Before, tt.before)
			}
		}
	})

	t.Run("plain lines are native", func(t *testing.T) {
		ed, p := setup(`<p>abc</p><p>def</p>`)
		ed.cursor(1, 0, 0)
		if _, ok := p.MoveVertically(line.Down, ed.sel, caret.IsBeforeAtomic, caret.IsAfterAtomic, caret.IsAtomic); ok {
			t.Error("expected decline")
		}
	})

	t.Run("last line falls back to line end point", func(t *testing.T) {
		ed, p := setup(`<p>abc<span contenteditable="false">X</span></p>`)
		ed.cursor(1, 0, 0)
		r, ok := p.MoveVertically(line.Down, ed.sel, caret.IsBeforeAtomic, caret.IsAfterAtomic, caret.IsAtomic)
		if !ok || r.Kind != OverlayShown || r.Before {
			t.Fatalf("result %+v, %v", r, ok)
		}
		if ed.sel != caret.Collapsed(ed.at(2, 0)) {
			t.Errorf("selection = %v", ed.sel)
		}
	})

	t.Run("from overlay caret to next line", func(t *testing.T) {
		ed, p := setup(`<p><span contenteditable="false">CEF</span>abc</p><p>defgh</p>`)
		ed.cursor(0, 0)
		r, ok := p.MoveVertically(line.Down, ed.sel, caret.IsBeforeAtomic, caret.IsAfterAtomic, caret.IsAtomic)
		if !ok || r.Kind != Moved {
			t.Fatalf("result %+v, %v", r, ok)
		}
		if ed.sel != caret.Collapsed(ed.at(0, 1, 0)) {
			t.Errorf("selection = %v", ed.sel)
		}
	})

	t.Run("unrendered endpoint declines", func(t *testing.T) {
		_, p := setup(`<p>abc</p>`)
		if _, ok := p.MoveVertically(line.Up, caret.Range{}, caret.IsBeforeAtomic, caret.IsAfterAtomic, caret.IsAtomic); ok {
			t.Error("expected decline")
		}
	})
}

func TestCommandsHideOverlay(t *testing.T) {
	ed, p := setup(`<p>abc<span contenteditable="false">X</span></p>`)
	p.Overlay().ShowAfter(ed.root.Path(0, 1))
	ed.cursor(1, 0, 0)

	p.AtomicLineEndPoint(false)
	if p.Overlay().IsShown() {
		t.Error("navigation command should hide the overlay caret")
	}
}

func TestMoveToRange(t *testing.T) {
	ed, p := setup(`<p>abc</p>`)
	rng := caret.Range{Start: ed.at(0, 0, 0), End: ed.at(2, 0, 0)}
	p.MoveToRange(rng)
	if ed.sel != rng || ed.scrolls != 1 {
		t.Errorf("selection = %v, scrolls = %d", ed.sel, ed.scrolls)
	}
}
