// Package nav decides how directional commands move the caret around
// atomic nodes.
//
// Every operation either applies a complete new selection or overlay
// caret and reports success, or declines and leaves everything untouched
// so the host's native movement can run.
package nav

import (
	"math"

	"github.com/dshills/cefnav/internal/caret"
	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/fakecaret"
	"github.com/dshills/cefnav/internal/geom"
	"github.com/dshills/cefnav/internal/line"
	"github.com/dshills/cefnav/internal/logging"
)

// Editor is the host surface the policy reads and writes.
type Editor interface {
	Root() *dom.Node
	Geometry() caret.Geometry
	Selection() caret.Range
	SetSelection(r caret.Range)
	ScrollIntoView(r caret.Range)
}

// ResultKind tags what an operation applied.
type ResultKind uint8

const (
	// Moved is a new collapsed caret position.
	Moved ResultKind = iota
	// Selected is a range enclosing a single node.
	Selected
	// OverlayShown means the overlay caret took over.
	OverlayShown
	// Reselected keeps the current range inside a boundary container.
	Reselected
)

// String returns the kind name.
func (k ResultKind) String() string {
	switch k {
	case Moved:
		return "moved"
	case Selected:
		return "selected"
	case OverlayShown:
		return "overlay"
	case Reselected:
		return "reselected"
	default:
		return "unknown"
	}
}

// Result is the outcome of a successful operation.
type Result struct {
	Kind  ResultKind
	Range caret.Range
	// Node is the selected node or the overlay anchor.
	Node *dom.Node
	// Before is the overlay side for OverlayShown.
	Before bool
}

// Policy runs navigation commands for one editor.
type Policy struct {
	ed      Editor
	overlay *fakecaret.Controller
	log     *logging.Logger
}

// New returns a policy for ed that draws overlay carets with overlay.
func New(ed Editor, overlay *fakecaret.Controller, log *logging.Logger) *Policy {
	if log == nil {
		log = logging.Nop()
	}
	return &Policy{ed: ed, overlay: overlay, log: log.WithComponent("nav")}
}

// Overlay returns the overlay caret controller.
func (p *Policy) Overlay() *fakecaret.Controller {
	return p.overlay
}

func (p *Policy) walkers() (*caret.Walker, *line.Walker) {
	w := caret.NewWalker(p.ed.Root())
	return w, line.NewWalker(w, p.ed.Geometry())
}

// begin hides the overlay caret; every command starts from a real caret.
func (p *Policy) begin() {
	if p.overlay != nil {
		p.overlay.Hide()
	}
}

func (p *Policy) apply(op string, r Result) {
	p.log.Debug("%s: %s %s", op, r.Kind, r.Range)
	if r.Kind == OverlayShown && p.overlay != nil {
		p.overlay.Show(r.Node, r.Before)
		return
	}
	p.MoveToRange(r.Range)
}

// MoveToRange selects rng and scrolls it into view.
func (p *Policy) MoveToRange(rng caret.Range) {
	p.ed.SetSelection(rng)
	p.ed.ScrollIntoView(p.ed.Selection())
}

// MoveHorizontally moves one unit in dir from rng. isBefore and isAfter
// recognise positions touching the kind of node being navigated and
// isElement recognises the node itself.
func (p *Policy) MoveHorizontally(dir caret.Direction, rng caret.Range, isBefore, isAfter caret.Predicate, isElement caret.NodePredicate) (Result, bool) {
	p.begin()
	w, _ := p.walkers()
	r, ok := horizontal(w, dir, rng, isBefore, isAfter, isElement)
	if !ok {
		p.log.Debug("horizontal %s: declined", dir)
		return Result{}, false
	}
	p.apply("horizontal "+dir.String(), r)
	return r, true
}

func horizontal(w *caret.Walker, dir caret.Direction, rng caret.Range, isBefore, isAfter caret.Predicate, isElement caret.NodePredicate) (Result, bool) {
	forwards := dir == caret.Forwards
	matches := isAfter
	if forwards {
		matches = isBefore
	}

	if !rng.IsCollapsed() {
		before := !forwards
		if n := rng.SelectedNode(); n != nil && isElement(n) {
			return overlay(n, before), true
		}
		edge := rng.End
		if before {
			edge = rng.Start
		}
		if n := nodeAt(edge); n != nil && isElement(n) {
			return overlay(n, before), true
		}
		return Result{}, false
	}

	pos := caret.Normalize(rng.Endpoint(dir))
	if matches(pos) {
		if n := adjacent(pos, forwards); n != nil {
			return Result{Kind: Selected, Range: caret.SelectNode(n), Node: n}, true
		}
	}

	inContainer := rng.Start.Container().ClosestBoundaryContainer() != nil
	step, ok := w.Move(dir, pos)
	if !ok {
		if inContainer {
			return Result{Kind: Reselected, Range: rng}, true
		}
		return Result{}, false
	}
	next := caret.Normalize(step.Position)
	if matches(next) {
		if n := adjacent(next, forwards); n != nil {
			return overlay(n, forwards), true
		}
	}

	// ab|c<cef> moves straight to the overlay before <cef>.
	if peek, ok := w.Move(dir, next); ok && matches(peek.Position) && sameBlockMove(next, peek.Position) {
		if n := adjacent(caret.Normalize(peek.Position), forwards); n != nil {
			return overlay(n, forwards), true
		}
	}

	if inContainer {
		return rangeCaret(caret.Collapsed(next)), true
	}
	return Result{}, false
}

// MoveVertically moves to the closest position on the adjacent line in
// dir.
func (p *Policy) MoveVertically(dir line.Direction, rng caret.Range, isBefore, isAfter caret.Predicate, isElement caret.NodePredicate) (Result, bool) {
	p.begin()
	w, lw := p.walkers()
	r, ok := vertical(w, lw, p.ed.Geometry(), dir, rng, isBefore, isAfter, isElement)
	if !ok {
		p.log.Debug("vertical %s: declined", dir)
		return Result{}, false
	}
	p.apply("vertical "+dir.String(), r)
	return r, true
}

func vertical(w *caret.Walker, lw *line.Walker, g caret.Geometry, dir line.Direction, rng caret.Range, isBefore, isAfter caret.Predicate, isElement caret.NodePredicate) (Result, bool) {
	hdir := dir.Horizontal()
	pos := caret.Normalize(rng.Endpoint(hdir))
	anchor, ok := w.ClientRect(g, pos)
	if !ok {
		return Result{}, false
	}
	x := anchor.Rect.Left

	next := line.Filter(lw.Collect(dir, line.IsAboveLine(1), pos), line.IsLine(1))
	if r, ok := line.FindClosest(next, x); ok && r.Node != nil && isElement(r.Node) {
		box := unionRects(g.NodeRects(r.Node))
		before := math.Abs(x-box.Left) < math.Abs(x-box.Right)
		return overlay(r.Node, before), true
	}

	var current *dom.Node
	switch {
	case isBefore(pos):
		current = adjacent(pos, true)
	case isAfter(pos):
		current = adjacent(pos, false)
	default:
		if n := rng.SelectedNode(); n != nil && isElement(n) {
			current = n
		}
	}
	if current != nil {
		start := caret.After(current)
		if dir == line.Up {
			start = caret.Before(current)
		}
		records := lw.Collect(dir, line.IsAboveLine(1), start)
		if r, ok := line.FindClosest(line.Filter(records, line.IsLine(1)), x); ok {
			return rangeCaret(caret.Collapsed(r.Position)), true
		}
		if same := line.Filter(records, line.IsLine(0)); len(same) > 0 {
			return rangeCaret(caret.Collapsed(same[len(same)-1].Position)), true
		}
	}

	if len(next) == 0 {
		keep := isBefore
		if dir == line.Down {
			keep = isAfter
		}
		if ep, ok := lw.LineEndPoint(hdir, rng.Endpoint(hdir)); ok && keep(ep) {
			return rangeCaret(caret.Collapsed(ep)), true
		}
	}
	return Result{}, false
}

// GetLineEndPoint returns the first (forward false) or last position on
// the visual line of the current selection.
func (p *Policy) GetLineEndPoint(forward bool) (caret.Position, bool) {
	_, lw := p.walkers()
	rng := p.ed.Selection()
	if forward {
		return lw.LineEndPoint(caret.Forwards, rng.End)
	}
	return lw.LineEndPoint(caret.Backwards, rng.Start)
}

// MoveToLineEndPoint collapses the selection on the line end point when it
// satisfies isElementPosition.
func (p *Policy) MoveToLineEndPoint(forward bool, isElementPosition caret.Predicate) bool {
	p.begin()
	ep, ok := p.GetLineEndPoint(forward)
	if !ok || !isElementPosition(ep) {
		p.log.Debug("line end point forward=%v: declined", forward)
		return false
	}
	p.ed.SetSelection(caret.Collapsed(ep))
	p.log.Debug("line end point forward=%v: %s", forward, ep)
	return true
}

// SelectToEndPoint extends the selection to the start or end of the
// document when that boundary sits next to an atomic node, which native
// selection cannot reach.
func (p *Policy) SelectToEndPoint(forward bool) bool {
	p.begin()
	w, _ := p.walkers()
	rng := p.ed.Selection()

	if forward {
		last, ok := w.Last()
		if !ok || !caret.IsAfterAtomic(last) {
			return false
		}
		p.apply("select to end", Result{Kind: Moved, Range: caret.NewRange(rng.Start, last)})
		return true
	}
	first, ok := w.First()
	if !ok || !caret.IsBeforeAtomic(first) {
		return false
	}
	p.apply("select to start", Result{Kind: Moved, Range: caret.NewRange(first, rng.End)})
	return true
}

// AtomicHorizontal runs MoveHorizontally for atomic nodes on the current
// selection.
func (p *Policy) AtomicHorizontal(dir caret.Direction) bool {
	_, ok := p.MoveHorizontally(dir, p.ed.Selection(), caret.IsBeforeAtomic, caret.IsAfterAtomic, caret.IsAtomic)
	return ok
}

// AtomicVertical runs MoveVertically for atomic nodes on the current
// selection.
func (p *Policy) AtomicVertical(dir line.Direction) bool {
	_, ok := p.MoveVertically(dir, p.ed.Selection(), caret.IsBeforeAtomic, caret.IsAfterAtomic, caret.IsAtomic)
	return ok
}

// AtomicLineEndPoint moves to the line end point when it is just past an
// atomic node: after one for End, before one for Home.
func (p *Policy) AtomicLineEndPoint(forward bool) bool {
	if forward {
		return p.MoveToLineEndPoint(true, caret.IsAfterAtomic)
	}
	return p.MoveToLineEndPoint(false, caret.IsBeforeAtomic)
}

// MediaLineEndPoint is AtomicLineEndPoint for media elements.
func (p *Policy) MediaLineEndPoint(forward bool) bool {
	if forward {
		return p.MoveToLineEndPoint(true, caret.IsAfterMedia)
	}
	return p.MoveToLineEndPoint(false, caret.IsBeforeMedia)
}

// BoundaryLineEndPoint moves the caret just outside an inline boundary
// element, such as a link, when the line end point is at its edge.
func (p *Policy) BoundaryLineEndPoint(forward bool) bool {
	p.begin()
	ep, ok := p.GetLineEndPoint(forward)
	if !ok {
		return false
	}
	n := boundaryAtEdge(ep, forward)
	if n == nil {
		return false
	}
	target := caret.Before(n)
	if forward {
		target = caret.After(n)
	}
	p.ed.SetSelection(caret.Collapsed(target))
	p.log.Debug("boundary line end point forward=%v: %s", forward, target)
	return true
}

// boundaryAtEdge returns the inline boundary element whose leading
// (forward false) or trailing edge coincides with pos.
func boundaryAtEdge(pos caret.Position, forward bool) *dom.Node {
	atEdge := pos.IsAtStart()
	if forward {
		atEdge = pos.IsAtEnd()
	}
	if !atEdge {
		return nil
	}
	for cur := pos.Container(); cur != nil && !cur.IsBlock(); cur = cur.Parent {
		if cur.IsInlineBoundary() {
			return cur
		}
		sib := cur.PrevSibling()
		if forward {
			sib = cur.NextSibling()
		}
		if sib != nil {
			return nil
		}
	}
	return nil
}

func overlay(n *dom.Node, before bool) Result {
	return Result{Kind: OverlayShown, Range: caret.Collapsed(side(n, before)), Node: n, Before: before}
}

func side(n *dom.Node, before bool) caret.Position {
	if before {
		return caret.Before(n)
	}
	return caret.After(n)
}

// rangeCaret turns a collapsed range next to an atomic node into an
// overlay caret on that node.
func rangeCaret(rng caret.Range) Result {
	if rng.IsCollapsed() {
		pos := caret.Normalize(rng.Start)
		if n := pos.NodeAfter(); n.IsAtomic() {
			return overlay(n, true)
		}
		if n := pos.NodeBefore(); n.IsAtomic() {
			return overlay(n, false)
		}
	}
	return Result{Kind: Moved, Range: rng}
}

// adjacent returns the node after pos when forwards, else the node before.
func adjacent(pos caret.Position, forwards bool) *dom.Node {
	pos = caret.Normalize(pos)
	if forwards {
		return pos.NodeAfter()
	}
	return pos.NodeBefore()
}

// nodeAt returns the child at an element position, clamped to the last
// child, or the container itself.
func nodeAt(pos caret.Position) *dom.Node {
	c := pos.Container()
	if c.IsElement() && len(c.Children) > 0 {
		return c.Child(min(max(pos.Offset(), 0), len(c.Children)-1))
	}
	return c
}

// sameBlockMove reports whether moving from one position to another stays
// in one block. Leaving a block across a trailing break counts as staying.
func sameBlockMove(from, to caret.Position) bool {
	if from.Block() == to.Block() {
		return true
	}
	return nodeAt(from).IsLineBreak()
}

func unionRects(rects []geom.Rect) geom.Rect {
	var u geom.Rect
	for _, r := range rects {
		u = u.Union(r)
	}
	return u
}
