package renderer

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/dshills/cefnav/internal/caret"
	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/editor"
	"github.com/dshills/cefnav/internal/fakecaret"
	"github.com/dshills/cefnav/internal/geom"
	"github.com/dshills/cefnav/internal/logging"
)

const (
	mediaGlyph = '▣'
	ruleGlyph  = '─'
)

// Options configures a Renderer.
type Options struct {
	// ScaleX and ScaleY convert layout units to cells. Cell layouts use 1.
	ScaleX, ScaleY float64

	// StatusLine reserves the last row for the caret position.
	StatusLine bool

	Styles Styles
	Logger *logging.Logger
}

// DefaultOptions returns options for a cell measured layout.
func DefaultOptions() Options {
	return Options{
		ScaleX:     1,
		ScaleY:     1,
		StatusLine: true,
		Styles:     DefaultStyles(),
	}
}

// Renderer paints editor views.
type Renderer struct {
	term *Terminal
	opts Options
	log  *logging.Logger

	// overlay is the overlay caret instance the bar cursor style was set
	// for; nil while the default cursor style is active.
	overlay uuid.UUID
}

// New creates a renderer drawing to term.
func New(term *Terminal, opts Options) *Renderer {
	if opts.ScaleX <= 0 {
		opts.ScaleX = 1
	}
	if opts.ScaleY <= 0 {
		opts.ScaleY = 1
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Renderer{term: term, opts: opts, log: log.WithComponent("renderer")}
}

// ContentHeight returns the rows available to content in layout units.
func (r *Renderer) ContentHeight() float64 {
	_, h := r.term.Size()
	if r.opts.StatusLine {
		h--
	}
	return float64(max(h, 0)) / r.opts.ScaleY
}

// Draw paints v.
func (r *Renderer) Draw(v editor.View) {
	r.term.draw(func(s tcell.Screen) {
		s.Clear()
		s.HideCursor()
		if v.Root == nil || v.Layout == nil {
			return
		}
		p := &painter{r: r, screen: s, view: v, opts: r.opts, sel: v.Selection.Range()}
		p.width, p.height = s.Size()
		if r.opts.StatusLine {
			p.height--
		}
		p.node(v.Root, r.opts.Styles.Text)
		p.cursor()
		if r.opts.StatusLine {
			p.status()
		}
	})
}

// painter holds the state of one Draw call.
type painter struct {
	r             *Renderer
	screen        tcell.Screen
	view          editor.View
	opts          Options
	sel           caret.Range
	width, height int
}

func (p *painter) node(n *dom.Node, style tcell.Style) {
	st := p.opts.Styles
	switch {
	case n.IsText():
		p.text(n, style)
		return
	case n.IsAtomic():
		p.unit(n, n.TextContent(), 0, st.Atomic)
		return
	case n.IsRule():
		p.unit(n, "", ruleGlyph, st.Text)
		return
	case n.IsIndivisible() && n != p.view.Root:
		p.unit(n, "", mediaGlyph, st.Media)
		return
	case n.IsInlineBoundary():
		style = st.Boundary
	}
	for _, c := range n.Children {
		p.node(c, style)
	}
}

func (p *painter) text(n *dom.Node, style tcell.Style) {
	for _, b := range p.view.Layout.TextBoxes(n) {
		s := style
		if p.selected(caret.At(n, b.Start), caret.At(n, b.End)) {
			s = p.opts.Styles.Selection
		}
		p.put(b.Rect, n.Data[b.Start:b.End], s)
	}
}

// unit paints an indivisible node, either its text or a repeated glyph.
func (p *painter) unit(n *dom.Node, label string, glyph rune, style tcell.Style) {
	switch ov := p.view.Overlay; {
	case p.selected(caret.Before(n), caret.After(n)):
		style = p.opts.Styles.Selection
	case ov.Visible && ov.Anchor == n:
		style = p.opts.Styles.Overlay
	}
	for _, rect := range p.view.Layout.NodeRects(n) {
		col, row := p.cell(rect.Left, rect.Top)
		end, _ := p.cell(rect.Right, rect.Top)
		if label != "" {
			p.puts(col, row, end, label, style)
			continue
		}
		for x := col; x < max(end, col+1); x++ {
			p.set(x, row, string(glyph), style)
		}
	}
}

func (p *painter) selected(start, end caret.Position) bool {
	if p.sel.IsCollapsed() {
		return false
	}
	return caret.Compare(p.sel.Start, start) <= 0 && caret.Compare(end, p.sel.End) <= 0
}

// cursor places the terminal cursor on the selection head. An overlay
// caret uses a bar cursor on the anchor edge instead, since the real
// selection parked next to an atomic node has no text cell of its own.
func (p *painter) cursor() {
	ov := p.view.Overlay
	if ov.Visible && ov.Anchor != nil {
		rects := p.view.Layout.NodeRects(ov.Anchor)
		if len(rects) == 0 {
			return
		}
		var col, row int
		if ov.Side == fakecaret.SideBefore {
			col, row = p.cell(rects[0].Left, rects[0].Top)
		} else {
			last := rects[len(rects)-1]
			col, row = p.cell(last.Right, last.Top)
		}
		if ov.ID != p.r.overlay {
			p.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
			p.r.overlay = ov.ID
			p.r.log.Debug("overlay cursor %s %s", ov.ID.String()[:8], ov.Side)
		}
		p.show(col, row)
		return
	}
	p.restoreCursorStyle()

	if p.view.Walker == nil {
		return
	}
	cr, ok := p.view.Walker.ClientRect(p.view.Layout, p.view.Selection.Head)
	if !ok {
		return
	}
	col, row := p.cell(cr.Rect.Left, cr.Rect.Top)
	p.show(col, row)
}

// restoreCursorStyle switches back to the default cursor once the overlay
// instance it was set for is gone.
func (p *painter) restoreCursorStyle() {
	if p.r.overlay == uuid.Nil {
		return
	}
	p.screen.SetCursorStyle(tcell.CursorStyleDefault)
	p.r.overlay = uuid.Nil
}

func (p *painter) show(col, row int) {
	if p.view.Focused && row >= 0 && row < p.height {
		p.screen.ShowCursor(col, row)
	}
}

func (p *painter) status() {
	sel := p.view.Selection
	text := fmt.Sprintf(" %s", sel.Head)
	if !sel.IsEmpty() {
		text = fmt.Sprintf(" %s .. %s", sel.Anchor, sel.Head)
	}
	if ov := p.view.Overlay; ov.Visible && ov.Anchor != nil {
		text += fmt.Sprintf("  overlay %s <%s>", ov.Side, ov.Anchor.Tag)
	}
	// The status row lies below p.height, outside the content clip of set.
	row := p.height
	for x := 0; x < p.width; x++ {
		p.screen.SetContent(x, row, ' ', nil, p.opts.Styles.Status)
	}
	col := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() && col < p.width {
		runes := g.Runes()
		p.screen.SetContent(col, row, runes[0], runes[1:], p.opts.Styles.Status)
		col += max(g.Width(), 1)
	}
}

// cell converts a layout point to a screen cell, applying scroll.
func (p *painter) cell(x, y float64) (int, int) {
	col := int(math.Floor(x * p.opts.ScaleX))
	row := int(math.Floor((y - p.view.ScrollTop) * p.opts.ScaleY))
	return col, row
}

func (p *painter) put(rect geom.Rect, grapheme string, style tcell.Style) {
	col, row := p.cell(rect.Left, rect.Top)
	p.set(col, row, grapheme, style)
}

// puts writes s from col, stopping before end.
func (p *painter) puts(col, row, end int, s string, style tcell.Style) {
	g := uniseg.NewGraphemes(s)
	for g.Next() && col < end {
		p.set(col, row, g.Str(), style)
		col += max(g.Width(), 1)
	}
}

func (p *painter) set(col, row int, grapheme string, style tcell.Style) {
	if row < 0 || row >= p.height || col < 0 || col >= p.width || grapheme == "" {
		return
	}
	runes := []rune(grapheme)
	p.screen.SetContent(col, row, runes[0], runes[1:], style)
}
