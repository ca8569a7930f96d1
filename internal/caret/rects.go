package caret

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/geom"
)

// Geometry is the layout surface: client rectangles of nodes and text.
type Geometry interface {
	// NodeRects returns the rectangles of n, one per line it spans.
	NodeRects(n *dom.Node) []geom.Rect

	// TextRects returns the rectangles covering bytes [start, end) of
	// text node t.
	TextRects(t *dom.Node, start, end int) []geom.Rect
}

// ClientRect is the collapsed caret rectangle of a position together with
// the node it was measured from.
type ClientRect struct {
	Rect geom.Rect
	Node *dom.Node
}

// ClientRect returns the caret rectangle of p. A text position uses the
// grapheme after it, or the one before it at the end of the text. An
// element position uses the adjacent indivisible node or line break, then
// the nearest text in the same block, then the container itself. It
// reports false for positions that are not rendered.
func (w *Walker) ClientRect(g Geometry, p Position) (ClientRect, bool) {
	if p.IsZero() {
		return ClientRect{}, false
	}
	if p.IsText() {
		if r, ok := textRect(g, p.container, p.offset); ok {
			return r, true
		}
		p = Before(p.container)
	}

	if n := p.NodeAfter(); n != nil && (n.IsIndivisible() || n.IsLineBreak()) {
		if rects := g.NodeRects(n); len(rects) > 0 {
			return ClientRect{Rect: rects[0].CollapseLeft(), Node: n}, true
		}
	}
	if n := p.NodeBefore(); n != nil && n.IsIndivisible() {
		if rects := g.NodeRects(n); len(rects) > 0 {
			return ClientRect{Rect: rects[len(rects)-1].CollapseRight(), Node: n}, true
		}
	}

	key := p.key()
	idx := w.search(key)
	for i := idx; i < len(w.items); i++ {
		if r, ok, done := itemRect(g, &w.items[i], true); done {
			if ok {
				return r, true
			}
			break
		}
	}
	for i := idx - 1; i >= 0; i-- {
		if r, ok, done := itemRect(g, &w.items[i], false); done {
			if ok {
				return r, true
			}
			break
		}
	}

	if rects := g.NodeRects(p.container); len(rects) > 0 {
		return ClientRect{Rect: rects[0].CollapseLeft(), Node: p.container}, true
	}
	return ClientRect{}, false
}

// itemRect measures the content item nearest to a position. done is true
// when the search must stop, either with a rectangle or at a block edge.
func itemRect(g Geometry, it *item, leading bool) (r ClientRect, ok, done bool) {
	switch it.kind {
	case itemEnter, itemExit:
		return ClientRect{}, false, true
	case itemGrapheme:
		rects := g.TextRects(it.node, it.pos.offset, it.end)
		if len(rects) == 0 {
			return ClientRect{}, false, false
		}
		if leading {
			return ClientRect{Rect: rects[0].CollapseLeft(), Node: it.node}, true, true
		}
		return ClientRect{Rect: rects[len(rects)-1].CollapseRight(), Node: it.node}, true, true
	case itemUnit:
		if !leading && it.node.IsLineBreak() {
			return ClientRect{}, false, true
		}
		rects := g.NodeRects(it.node)
		if len(rects) == 0 {
			return ClientRect{}, false, false
		}
		if leading {
			return ClientRect{Rect: rects[0].CollapseLeft(), Node: it.node}, true, true
		}
		return ClientRect{Rect: rects[len(rects)-1].CollapseRight(), Node: it.node}, true, true
	}
	return ClientRect{}, false, false
}

func textRect(g Geometry, t *dom.Node, offset int) (ClientRect, bool) {
	if end, ok := graphemeAfter(t.Data, offset); ok {
		if rects := g.TextRects(t, offset, end); len(rects) > 0 {
			return ClientRect{Rect: rects[0].CollapseLeft(), Node: t}, true
		}
	}
	if start, ok := graphemeBefore(t.Data, offset); ok {
		if rects := g.TextRects(t, start, offset); len(rects) > 0 {
			return ClientRect{Rect: rects[len(rects)-1].CollapseRight(), Node: t}, true
		}
	}
	return ClientRect{}, false
}

// graphemeAfter returns the end of the grapheme cluster starting at offset.
func graphemeAfter(s string, offset int) (int, bool) {
	if offset < 0 || offset >= len(s) {
		return 0, false
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[offset:], -1)
	return offset + len(cluster), true
}

// graphemeBefore returns the start of the grapheme cluster ending at offset.
func graphemeBefore(s string, offset int) (int, bool) {
	if offset <= 0 || offset > len(s) {
		return 0, false
	}
	pos, state := 0, -1
	for pos < offset {
		cluster, _, _, next := uniseg.FirstGraphemeClusterInString(s[pos:], state)
		if pos+len(cluster) >= offset {
			return pos, true
		}
		pos += len(cluster)
		state = next
	}
	return 0, false
}
