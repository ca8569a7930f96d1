package caret

import (
	"fmt"

	"github.com/dshills/cefnav/internal/dom"
)

// Direction is a horizontal movement direction.
type Direction int8

const (
	// Backwards moves toward the start of the document.
	Backwards Direction = -1

	// Forwards moves toward the end of the document.
	Forwards Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Forwards {
		return "forwards"
	}
	return "backwards"
}

// Range is a pair of positions with Start at or before End.
type Range struct {
	Start Position
	End   Position
}

// NewRange returns the range between a and b in document order.
func NewRange(a, b Position) Range {
	if Compare(a, b) > 0 {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Collapsed returns the empty range at p.
func Collapsed(p Position) Range {
	return Range{Start: p, End: p}
}

// SelectNode returns the range enclosing n.
func SelectNode(n *dom.Node) Range {
	return Range{Start: Before(n), End: After(n)}
}

// IsCollapsed reports whether the range is empty.
func (r Range) IsCollapsed() bool {
	return r.Start == r.End
}

// IsZero reports whether r is the zero range.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Endpoint returns End for Forwards and Start for Backwards.
func (r Range) Endpoint(d Direction) Position {
	if d == Forwards {
		return r.End
	}
	return r.Start
}

// Collapse returns the range collapsed to its start or end.
func (r Range) Collapse(toStart bool) Range {
	if toStart {
		return Collapsed(r.Start)
	}
	return Collapsed(r.End)
}

// SelectedNode returns the single child enclosed by the range, or nil.
func (r Range) SelectedNode() *dom.Node {
	if r.Start.container != r.End.container || !r.Start.container.IsElement() {
		return nil
	}
	if r.End.offset != r.Start.offset+1 {
		return nil
	}
	return r.Start.NodeAfter()
}

// String renders the range.
func (r Range) String() string {
	if r.IsCollapsed() {
		return fmt.Sprintf("(%s)", r.Start)
	}
	return fmt.Sprintf("(%s, %s)", r.Start, r.End)
}
