// Package layout computes client rectangles for a content tree.
//
// It is the layout surface consumed by the caret engine: block elements
// stack vertically, inline content flows into line boxes and wraps at the
// configured width, <br> forces a new line and indivisible elements
// (atomic nodes, media, images) occupy a single box. Every grapheme of
// every text node gets its own box so positions resolve to exact carets.
//
// A Layout is a snapshot. Call Reflow after the tree changes.
package layout

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/geom"
)

// DefaultWidth is the content width used when none is configured.
const DefaultWidth = 80

// Box is the rectangle of one grapheme cluster of a text node.
type Box struct {
	Start int // byte offset of the cluster
	End   int // byte offset after the cluster
	Rect  geom.Rect
}

// Options configures a Layout.
type Options struct {
	Width    float64
	Measurer Measurer
}

// Layout holds the geometry of a content tree.
type Layout struct {
	root  *dom.Node
	opts  Options
	boxes map[*dom.Node][]Box
	rects map[*dom.Node][]geom.Rect

	// flow state
	x, y      float64
	lineEmpty bool
}

// New lays out root.
func New(root *dom.Node, opts Options) *Layout {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Measurer == nil {
		opts.Measurer = CellMeasurer{}
	}
	l := &Layout{root: root, opts: opts}
	l.Reflow()
	return l
}

// Root returns the laid out tree.
func (l *Layout) Root() *dom.Node {
	return l.root
}

// SetRoot replaces the tree and reflows.
func (l *Layout) SetRoot(root *dom.Node) {
	l.root = root
	l.Reflow()
}

// Width returns the content width.
func (l *Layout) Width() float64 {
	return l.opts.Width
}

// Measurer returns the measurer in use.
func (l *Layout) Measurer() Measurer {
	return l.opts.Measurer
}

// Reflow recomputes all geometry.
func (l *Layout) Reflow() {
	l.boxes = make(map[*dom.Node][]Box)
	l.rects = make(map[*dom.Node][]geom.Rect)
	l.x, l.y, l.lineEmpty = 0, 0, true
	if l.root != nil {
		l.layoutBlock(l.root)
	}
}

// Height returns the total content height.
func (l *Layout) Height() float64 {
	if l.root == nil {
		return 0
	}
	var h float64
	for _, r := range l.rects[l.root] {
		h = max(h, r.Bottom)
	}
	return h
}

// NodeRects returns the client rectangles of n, one per line it spans.
// Nodes inside atomic elements have no rectangles of their own.
func (l *Layout) NodeRects(n *dom.Node) []geom.Rect {
	return l.rects[n]
}

// TextBoxes returns the grapheme boxes of text node t in order.
func (l *Layout) TextBoxes(t *dom.Node) []Box {
	return l.boxes[t]
}

// TextRects returns the rectangles covering bytes [start, end) of text
// node t, merged per line.
func (l *Layout) TextRects(t *dom.Node, start, end int) []geom.Rect {
	var out []geom.Rect
	for _, b := range l.boxes[t] {
		if b.End <= start || b.Start >= end {
			continue
		}
		out = appendMerged(out, b.Rect)
	}
	return out
}

func (l *Layout) lineHeight() float64 {
	return l.opts.Measurer.LineHeight()
}

func (l *Layout) newLine() {
	l.y += l.lineHeight()
	l.x = 0
	l.lineEmpty = true
}

func (l *Layout) ensureLineStart() {
	if !l.lineEmpty {
		l.newLine()
	}
}

// place reserves w units on the current line, wrapping first when the
// box would overflow a non-empty line.
func (l *Layout) place(w float64) geom.Rect {
	if l.x > 0 && l.x+w > l.opts.Width {
		l.newLine()
	}
	r := geom.NewRect(l.x, l.y, l.x+w, l.y+l.lineHeight())
	l.x += w
	l.lineEmpty = false
	return r
}

func (l *Layout) layoutNode(n *dom.Node) {
	switch {
	case n.IsText():
		l.layoutText(n)
	case n.IsIndivisible():
		l.layoutUnit(n)
	case n.IsLineBreak():
		l.layoutBreak(n)
	case n.IsBlock():
		l.layoutBlock(n)
	default:
		l.layoutInline(n)
	}
}

func (l *Layout) layoutText(n *dom.Node) {
	boxes := make([]Box, 0, len(n.Data))
	var rects []geom.Rect
	g := uniseg.NewGraphemes(n.Data)
	for g.Next() {
		from, to := g.Positions()
		r := l.place(l.opts.Measurer.Advance(g.Str()))
		boxes = append(boxes, Box{Start: from, End: to, Rect: r})
		rects = appendMerged(rects, r)
	}
	l.boxes[n] = boxes
	l.rects[n] = rects
}

func (l *Layout) layoutUnit(n *dom.Node) {
	w := MeasureString(l.opts.Measurer, n.TextContent())
	if w == 0 {
		w = l.opts.Measurer.Advance("M")
	}
	if n.IsBlock() || n.IsRule() {
		l.ensureLineStart()
		if n.IsRule() {
			w = l.opts.Width
		}
		l.rects[n] = []geom.Rect{l.place(min(w, l.opts.Width))}
		l.newLine()
		return
	}
	l.rects[n] = []geom.Rect{l.place(w)}
}

func (l *Layout) layoutBreak(n *dom.Node) {
	r := geom.NewRect(l.x, l.y, l.x, l.y+l.lineHeight())
	l.rects[n] = []geom.Rect{r}
	if n.IsBogusBr() {
		l.lineEmpty = false
		return
	}
	l.newLine()
}

func (l *Layout) layoutBlock(n *dom.Node) {
	l.ensureLineStart()
	top := l.y
	for _, c := range n.Children {
		l.layoutNode(c)
	}
	if !l.lineEmpty || l.y == top {
		l.newLine()
	}
	l.rects[n] = []geom.Rect{geom.NewRect(0, top, l.opts.Width, l.y)}
}

func (l *Layout) layoutInline(n *dom.Node) {
	startX, startY := l.x, l.y
	var rects []geom.Rect
	for _, c := range n.Children {
		l.layoutNode(c)
		for _, r := range l.rects[c] {
			rects = appendMerged(rects, r)
		}
	}
	if len(rects) == 0 {
		rects = []geom.Rect{geom.NewRect(startX, startY, startX, startY+l.lineHeight())}
	}
	l.rects[n] = rects
}

// appendMerged appends r, merging it into the last rectangle when both sit
// on the same line.
func appendMerged(rects []geom.Rect, r geom.Rect) []geom.Rect {
	if n := len(rects); n > 0 && rects[n-1].Top == r.Top && rects[n-1].Bottom == r.Bottom {
		rects[n-1] = rects[n-1].Union(r)
		return rects
	}
	return append(rects, r)
}
