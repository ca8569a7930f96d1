// Package fakecaret manages the overlay caret drawn next to atomic nodes.
//
// An atomic node cannot host a real caret inside it. When navigation lands
// on one, the controller shows a synthetic caret before or after it and
// parks the real selection, collapsed, on the same side. The overlay state
// is authoritative for "the caret is on this node" until the next
// navigation command, content mutation or focus change hides it.
package fakecaret

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/cefnav/internal/caret"
	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/logging"
)

// Side is the side of the anchor node the overlay caret is drawn on.
type Side uint8

const (
	// SideBefore draws the caret at the anchor's leading edge.
	SideBefore Side = iota
	// SideAfter draws the caret at the anchor's trailing edge.
	SideAfter
)

// String returns "before" or "after".
func (s Side) String() string {
	if s == SideAfter {
		return "after"
	}
	return "before"
}

// State is a snapshot of the overlay caret. Every Show starts a new
// instance with a fresh ID, even on the same anchor and side; a hidden
// caret has the nil ID.
type State struct {
	ID      uuid.UUID
	Anchor  *dom.Node
	Side    Side
	Visible bool
}

// Surface is the selection surface the controller parks the real caret on.
type Surface interface {
	SetSelection(r caret.Range)
	ScrollIntoView(r caret.Range)
}

// Controller owns the overlay caret of one editing surface.
type Controller struct {
	mu        sync.Mutex
	surface   Surface
	log       *logging.Logger
	state     State
	listeners []func(State)
}

// New returns a hidden controller bound to surface.
func New(surface Surface, log *logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		surface: surface,
		log:     log.WithComponent("fakecaret"),
	}
}

// OnChange registers fn to be called after every state transition.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsShown reports whether the overlay caret is visible.
func (c *Controller) IsShown() bool {
	return c.State().Visible
}

// ShowBefore shows the caret at the leading edge of node.
func (c *Controller) ShowBefore(node *dom.Node) caret.Range {
	return c.Show(node, true)
}

// ShowAfter shows the caret at the trailing edge of node.
func (c *Controller) ShowAfter(node *dom.Node) caret.Range {
	return c.Show(node, false)
}

// Show replaces any visible overlay with one on the given side of node,
// collapses the real selection next to it and scrolls node into view. It
// returns the applied selection.
func (c *Controller) Show(node *dom.Node, before bool) caret.Range {
	side := SideAfter
	rng := caret.Collapsed(caret.After(node))
	if before {
		side = SideBefore
		rng = caret.Collapsed(caret.Before(node))
	}

	c.mu.Lock()
	c.state = State{ID: uuid.New(), Anchor: node, Side: side, Visible: true}
	st, listeners := c.state, c.listeners
	c.mu.Unlock()

	c.log.WithField("caret", st.ID.String()[:8]).Debug("show %s %s", side, node.Tag)
	if c.surface != nil {
		c.surface.SetSelection(rng)
		c.surface.ScrollIntoView(caret.SelectNode(node))
	}
	notify(listeners, st)
	return rng
}

// Hide removes the overlay caret. It reports whether one was visible.
func (c *Controller) Hide() bool {
	c.mu.Lock()
	if !c.state.Visible {
		c.mu.Unlock()
		return false
	}
	id := c.state.ID
	c.state = State{}
	listeners := c.listeners
	c.mu.Unlock()

	c.log.WithField("caret", id.String()[:8]).Debug("hide")
	notify(listeners, State{})
	return true
}

func notify(listeners []func(State), st State) {
	for _, fn := range listeners {
		fn(st)
	}
}
