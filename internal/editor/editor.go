package editor

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dshills/cefnav/internal/caret"
	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/fakecaret"
	"github.com/dshills/cefnav/internal/geom"
	"github.com/dshills/cefnav/internal/layout"
	"github.com/dshills/cefnav/internal/logging"
)

// Editor is a navigable content surface.
type Editor struct {
	mu sync.Mutex

	log        *logging.Logger
	parseOpts  []dom.Option
	layoutOpts layout.Options
	viewHeight float64

	root    *dom.Node
	layout  *layout.Layout
	walker  *caret.Walker
	sel     Selection
	overlay *fakecaret.Controller
	focused bool

	scrollTop float64
	scrolled  caret.Range

	keydown    []KeyHandler
	nodeChange []func(NodeChange)
	lastPath   []*dom.Node
}

// New creates an editor with empty content.
func New(opts ...Option) *Editor {
	e := &Editor{log: logging.Nop(), focused: true}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithComponent("editor")
	e.root = dom.NewElement("body", nil)
	e.layout = layout.New(e.root, e.layoutOpts)
	e.walker = caret.NewWalker(e.root)
	e.overlay = fakecaret.New(e, e.log)
	e.sel = Cursor(caret.At(e.root, 0))
	return e
}

// Overlay returns the overlay caret controller of this editor.
func (e *Editor) Overlay() *fakecaret.Controller {
	return e.overlay
}

// SetContent replaces the content with parsed HTML. The selection moves
// to the start of the new content and the overlay caret is hidden.
func (e *Editor) SetContent(src string) error {
	root, err := dom.Parse(strings.NewReader(src), e.parseOpts...)
	if err != nil {
		return fmt.Errorf("parsing content: %w", err)
	}

	e.mu.Lock()
	e.root = root
	e.layout.SetRoot(root)
	e.walker = caret.NewWalker(root)
	start, ok := e.walker.First()
	if !ok {
		start = caret.At(root, 0)
	}
	e.sel = Cursor(start)
	e.scrollTop = 0
	e.lastPath = nil
	e.mu.Unlock()

	e.overlay.Hide()
	e.log.Debug("content set: %d bytes", len(src))
	e.NodeChanged()
	return nil
}

// LoadFile reads HTML content from path.
func (e *Editor) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoContent, err)
	}
	return e.SetContent(string(data))
}

// Focus gives the editor focus. A focus change hides the overlay caret.
func (e *Editor) Focus() {
	e.setFocus(true)
}

// Blur removes focus. A focus change hides the overlay caret.
func (e *Editor) Blur() {
	e.setFocus(false)
}

func (e *Editor) setFocus(focused bool) {
	e.mu.Lock()
	changed := e.focused != focused
	e.focused = focused
	e.mu.Unlock()
	if changed {
		e.overlay.Hide()
		e.log.Debug("focus=%v", focused)
	}
}

// View is a consistent snapshot for drawing.
type View struct {
	Root      *dom.Node
	Layout    *layout.Layout
	Walker    *caret.Walker
	Selection Selection
	Overlay   fakecaret.State
	ScrollTop float64
	Focused   bool
}

// Snapshot returns the current view.
func (e *Editor) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return View{
		Root:      e.root,
		Layout:    e.layout,
		Walker:    e.walker,
		Selection: e.sel,
		Overlay:   e.overlay.State(),
		ScrollTop: e.scrollTop,
		Focused:   e.focused,
	}
}

// Root returns the content root.
func (e *Editor) Root() *dom.Node {
	return e.root
}

// Geometry returns the layout of the content.
func (e *Editor) Geometry() caret.Geometry {
	return e.layout
}

// Selection returns the selection in document order.
func (e *Editor) Selection() caret.Range {
	return e.sel.Range()
}

// RawSelection returns the selection with its direction.
func (e *Editor) RawSelection() Selection {
	return e.sel
}

// SetSelection selects r. A range ending at the current anchor grows
// backward from it.
func (e *Editor) SetSelection(r caret.Range) {
	e.sel = fromRange(r, e.sel)
}

// ScrollIntoView scrolls so the top of r is visible.
func (e *Editor) ScrollIntoView(r caret.Range) {
	e.scrolled = r
	if e.viewHeight <= 0 {
		return
	}
	rect, ok := e.rangeRect(r)
	if !ok {
		return
	}
	switch {
	case rect.Top < e.scrollTop:
		e.scrollTop = rect.Top
	case rect.Bottom > e.scrollTop+e.viewHeight:
		e.scrollTop = rect.Bottom - e.viewHeight
	}
}

// SetViewportHeight changes the visible height, for example after a
// terminal resize, and keeps the selection head in view.
func (e *Editor) SetViewportHeight(h float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewHeight = h
	e.ScrollIntoView(caret.Collapsed(e.sel.Head))
}

// ScrollTop returns the vertical scroll offset.
func (e *Editor) ScrollTop() float64 {
	return e.scrollTop
}

func (e *Editor) rangeRect(r caret.Range) (geom.Rect, bool) {
	if n := r.SelectedNode(); n != nil {
		rects := e.layout.NodeRects(n)
		if len(rects) == 0 {
			return geom.Rect{}, false
		}
		u := rects[0]
		for _, rc := range rects[1:] {
			u = u.Union(rc)
		}
		return u, true
	}
	cr, ok := e.walker.ClientRect(e.layout, r.Start)
	return cr.Rect, ok
}
