package caret

import (
	"slices"
	"sort"

	"github.com/rivo/uniseg"

	"github.com/dshills/cefnav/internal/dom"
)

// StepKind tags the outcome of a single walker step.
type StepKind uint8

const (
	// Continue is a step that landed on a position without passing an
	// atomic node.
	Continue StepKind = iota

	// Blocked is a step that passed over an atomic node as one unit.
	Blocked
)

// String returns the kind name.
func (k StepKind) String() string {
	if k == Blocked {
		return "blocked"
	}
	return "continue"
}

// Step is the result of one walker step.
type Step struct {
	Kind     StepKind
	Position Position
	// Node is the last indivisible node or line break passed over, or nil.
	// For Blocked steps it is the atomic node.
	Node *dom.Node
}

type itemKind uint8

const (
	itemStop itemKind = iota
	itemGrapheme
	itemUnit
	itemEnter
	itemExit
)

// item is one entry of the flattened tree: a caret stop or a piece of
// rendered content between stops.
type item struct {
	kind itemKind
	pos  Position // stop position, or where the content starts
	end  int      // end offset of a grapheme
	node *dom.Node
	key  []int
}

// Walker moves positions through a snapshot of a content tree. Stops are
// grapheme boundaries, the edges of atomic nodes, media, void elements and
// line breaks, and the inside of empty blocks. Atomic subtrees are never
// entered.
//
// A Walker must be recreated after the tree is mutated.
type Walker struct {
	root  *dom.Node
	items []item
}

// NewWalker flattens the tree under root.
func NewWalker(root *dom.Node) *Walker {
	w := &Walker{root: root}
	if root != nil {
		w.build(root)
	}
	return w
}

// Root returns the walked tree.
func (w *Walker) Root() *dom.Node {
	return w.root
}

func (w *Walker) build(n *dom.Node) {
	switch {
	case n.IsText():
		if n.Data == "" {
			return
		}
		w.stop(Position{n, 0})
		g := uniseg.NewGraphemes(n.Data)
		for g.Next() {
			from, to := g.Positions()
			w.push(item{kind: itemGrapheme, pos: Position{n, from}, end: to, node: n})
			w.stop(Position{n, to})
		}
	case n.IsLineBreak():
		if !n.IsBogusBr() {
			w.unit(n)
		}
	case n.IsIndivisible() && n != w.root:
		w.unit(n)
	case n.IsElement():
		edge := n.IsBlock() && n != w.root
		if edge {
			w.push(item{kind: itemEnter, pos: Before(n), node: n})
		}
		if n.IsEmptyBlock() {
			w.stop(Position{n, 0})
		}
		for _, c := range n.Children {
			w.build(c)
		}
		if edge {
			w.push(item{kind: itemExit, pos: Position{n, n.Len()}, node: n})
		}
	}
}

func (w *Walker) unit(n *dom.Node) {
	w.stop(Before(n))
	w.push(item{kind: itemUnit, pos: Before(n), node: n})
	w.stop(After(n))
}

func (w *Walker) stop(p Position) {
	if last := len(w.items) - 1; last >= 0 && w.items[last].kind == itemStop && w.items[last].pos == p {
		return
	}
	w.push(item{kind: itemStop, pos: p})
}

func (w *Walker) push(it item) {
	it.key = it.pos.key()
	w.items = append(w.items, it)
}

// search returns the index of the first item at or after key.
func (w *Walker) search(key []int) int {
	return sort.Search(len(w.items), func(i int) bool {
		return slices.Compare(w.items[i].key, key) >= 0
	})
}

// Next returns the next position after p in document order.
func (w *Walker) Next(p Position) (Position, bool) {
	s, ok := w.NextStep(p)
	return s.Position, ok
}

// Prev returns the previous position before p in document order.
func (w *Walker) Prev(p Position) (Position, bool) {
	s, ok := w.PrevStep(p)
	return s.Position, ok
}

// Move steps once in direction d.
func (w *Walker) Move(d Direction, p Position) (Step, bool) {
	if d == Forwards {
		return w.NextStep(p)
	}
	return w.PrevStep(p)
}

// NextStep returns the first stop after p that is separated from it by
// rendered content, or that touches an atomic node. It reports false at
// the end of the document.
func (w *Walker) NextStep(p Position) (Step, bool) {
	origin := p.key()
	var sc scan
	for i := w.search(origin); i < len(w.items); i++ {
		if s, ok := sc.visit(&w.items[i], origin); ok {
			return s, true
		}
	}
	return Step{}, false
}

// PrevStep is the mirror of NextStep.
func (w *Walker) PrevStep(p Position) (Step, bool) {
	origin := p.key()
	var sc scan
	for i := w.search(origin) - 1; i >= 0; i-- {
		if s, ok := sc.visit(&w.items[i], origin); ok {
			return s, true
		}
	}
	return Step{}, false
}

// First returns the first caret stop of the document.
func (w *Walker) First() (Position, bool) {
	for _, it := range w.items {
		if it.kind == itemStop {
			return it.pos, true
		}
	}
	return Position{}, false
}

// Last returns the last caret stop of the document.
func (w *Walker) Last() (Position, bool) {
	for i := len(w.items) - 1; i >= 0; i-- {
		if w.items[i].kind == itemStop {
			return w.items[i].pos, true
		}
	}
	return Position{}, false
}

// Positions returns every caret stop in document order.
func (w *Walker) Positions() []Position {
	var out []Position
	for _, it := range w.items {
		if it.kind == itemStop {
			out = append(out, it.pos)
		}
	}
	return out
}

// scan accumulates what a step has passed over.
type scan struct {
	rendered bool
	unit     *dom.Node
	blocked  *dom.Node
}

func (sc *scan) visit(it *item, origin []int) (Step, bool) {
	switch it.kind {
	case itemStop:
		if slices.Equal(it.key, origin) {
			return Step{}, false
		}
		if !sc.rendered && !touchesAtomic(it.pos) {
			return Step{}, false
		}
		s := Step{Kind: Continue, Position: it.pos, Node: sc.unit}
		if sc.blocked != nil {
			s.Kind = Blocked
			s.Node = sc.blocked
		}
		return s, true
	case itemUnit:
		sc.rendered = true
		sc.unit = it.node
		if it.node.IsAtomic() {
			sc.blocked = it.node
		}
	default:
		sc.rendered = true
	}
	return Step{}, false
}

// touchesAtomic reports whether an element position sits directly next to
// an atomic node.
func touchesAtomic(p Position) bool {
	return p.NodeBefore().IsAtomic() || p.NodeAfter().IsAtomic()
}
