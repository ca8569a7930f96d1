package editor

import "github.com/dshills/cefnav/internal/caret"

// Selection is the editor selection. Anchor is where it started and Head
// is the moving end. When Anchor == Head it is a caret.
type Selection struct {
	Anchor caret.Position
	Head   caret.Position
}

// Cursor returns a collapsed selection at p.
func Cursor(p caret.Position) Selection {
	return Selection{Anchor: p, Head: p}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// IsBackward returns true if the head precedes the anchor.
func (s Selection) IsBackward() bool {
	return caret.Compare(s.Head, s.Anchor) < 0
}

// Range returns the selection in document order.
func (s Selection) Range() caret.Range {
	return caret.NewRange(s.Anchor, s.Head)
}

// Extend returns a selection with the anchor kept and the head at p.
func (s Selection) Extend(p caret.Position) Selection {
	return Selection{Anchor: s.Anchor, Head: p}
}

// MoveTo returns a caret at p.
func (s Selection) MoveTo(p caret.Position) Selection {
	return Cursor(p)
}

// CollapseToStart collapses the selection to its start.
func (s Selection) CollapseToStart() Selection {
	return Cursor(s.Range().Start)
}

// CollapseToEnd collapses the selection to its end.
func (s Selection) CollapseToEnd() Selection {
	return Cursor(s.Range().End)
}

// fromRange orients r against the previous selection: a range that ends
// at the old anchor keeps that anchor, so it grows backward.
func fromRange(r caret.Range, prev Selection) Selection {
	if !r.IsCollapsed() && r.End == prev.Anchor && r.Start != prev.Anchor {
		return Selection{Anchor: r.End, Head: r.Start}
	}
	return Selection{Anchor: r.Start, Head: r.End}
}
