// Package line walks caret positions by visual line.
package line

import (
	"iter"

	"github.com/dshills/cefnav/internal/caret"
	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/geom"
)

// Direction is a vertical movement direction.
type Direction int8

const (
	// Up moves toward earlier lines.
	Up Direction = -1

	// Down moves toward later lines.
	Down Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Horizontal returns the document order direction a vertical walk follows.
func (d Direction) Horizontal() caret.Direction {
	if d == Down {
		return caret.Forwards
	}
	return caret.Backwards
}

// Record is a candidate caret position with its geometry. Line is the
// distance in lines from the start position, 0 being the same line.
type Record struct {
	Position caret.Position
	Rect     geom.Rect
	Node     *dom.Node
	Line     int
}

// Predicate ends a walk when it returns true for a record.
type Predicate func(Record) bool

// IsAboveLine returns a predicate matching records beyond line n.
func IsAboveLine(n int) Predicate {
	return func(r Record) bool {
		return r.Line > n
	}
}

// IsLine returns a predicate matching records on line n.
func IsLine(n int) Predicate {
	return func(r Record) bool {
		return r.Line == n
	}
}

// Walker yields positions line by line from a tree walker and a layout.
type Walker struct {
	walker *caret.Walker
	geo    caret.Geometry
}

// NewWalker returns a line walker.
func NewWalker(w *caret.Walker, g caret.Geometry) *Walker {
	return &Walker{walker: w, geo: g}
}

// PositionsUntil yields the positions after start in direction dir, each
// tagged with its line relative to start. The sequence ends before the
// first record for which stop returns true, or when the document ends.
// Positions without geometry are skipped.
func (lw *Walker) PositionsUntil(dir Direction, stop Predicate, start caret.Position) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		origin, ok := lw.walker.ClientRect(lw.geo, start)
		if !ok {
			return
		}
		band := origin.Rect
		line := 0
		pos := start
		for {
			s, ok := lw.walker.Move(dir.Horizontal(), pos)
			if !ok {
				return
			}
			pos = s.Position
			cr, ok := lw.walker.ClientRect(lw.geo, pos)
			if !ok || behind(dir, cr.Rect, band) {
				continue
			}
			if cr.Rect.OverlapsY(band) {
				band = band.UnionY(cr.Rect)
			} else {
				line++
				band = cr.Rect
			}
			rec := Record{Position: pos, Rect: cr.Rect, Node: cr.Node, Line: line}
			if stop(rec) || !yield(rec) {
				return
			}
		}
	}
}

// Collect gathers the records of PositionsUntil.
func (lw *Walker) Collect(dir Direction, stop Predicate, start caret.Position) []Record {
	var out []Record
	for r := range lw.PositionsUntil(dir, stop, start) {
		out = append(out, r)
	}
	return out
}

// behind reports whether r lies on the far side of band relative to the
// walk direction.
func behind(dir Direction, r, band geom.Rect) bool {
	if dir == Down {
		return r.Above(band)
	}
	return r.Below(band)
}

// Filter returns the records matching keep.
func Filter(records []Record, keep Predicate) []Record {
	var out []Record
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// FindClosest returns the record horizontally closest to x. A record whose
// rectangle spans x wins outright; otherwise the smaller distance to either
// edge wins and exact ties go to the leftmost rectangle.
func FindClosest(records []Record, x float64) (Record, bool) {
	best := -1
	for i, r := range records {
		if best < 0 {
			best = i
			continue
		}
		b := records[best]
		bIn, rIn := b.Rect.ContainsX(x), r.Rect.ContainsX(x)
		switch {
		case bIn && !rIn:
		case rIn && !bIn:
			best = i
		default:
			d, bd := r.Rect.DistanceX(x), b.Rect.DistanceX(x)
			if d < bd || (d == bd && r.Rect.Left < b.Rect.Left) {
				best = i
			}
		}
	}
	if best < 0 {
		return Record{}, false
	}
	return records[best], true
}

// LineEndPoint returns the farthest position from start in direction dir
// that stays on the same visual line and in the same block. The scan stops
// at a forced line break.
func (lw *Walker) LineEndPoint(dir caret.Direction, start caret.Position) (caret.Position, bool) {
	origin, ok := lw.walker.ClientRect(lw.geo, start)
	if !ok {
		return caret.Position{}, false
	}
	band := origin.Rect
	block := start.Block()

	var last caret.Position
	found := false
	for pos := start; ; {
		s, ok := lw.walker.Move(dir, pos)
		if !ok || s.Node.IsLineBreak() || s.Position.Block() != block {
			break
		}
		pos = s.Position
		if cr, ok := lw.walker.ClientRect(lw.geo, pos); ok {
			if !cr.Rect.OverlapsY(band) {
				break
			}
			band = band.UnionY(cr.Rect)
		}
		last, found = pos, true
	}
	return last, found
}
