package editor

import (
	"slices"

	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/input/key"
)

// KeyEvent is a key press travelling through the keydown handlers.
type KeyEvent struct {
	key.Event
	prevented bool
}

// PreventDefault stops the native movement for this event.
func (e *KeyEvent) PreventDefault() {
	e.prevented = true
}

// IsDefaultPrevented reports whether a handler consumed the event.
func (e *KeyEvent) IsDefaultPrevented() bool {
	return e.prevented
}

// KeyHandler observes keydown events in registration order.
type KeyHandler func(*KeyEvent)

// NodeChange reports the element holding the selection start and its
// ancestors, innermost first, up to but excluding the root.
type NodeChange struct {
	Element *dom.Node
	Parents []*dom.Node
}

// OnKeyDown registers a keydown handler.
func (e *Editor) OnKeyDown(h KeyHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keydown = append(e.keydown, h)
}

// OnNodeChange registers a node change listener.
func (e *Editor) OnNodeChange(fn func(NodeChange)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nodeChange = append(e.nodeChange, fn)
}

// Dispatch runs the keydown handlers for ev, then the native movement if
// no handler prevented the default. It reports whether a handler
// consumed the event.
func (e *Editor) Dispatch(ev key.Event) bool {
	e.mu.Lock()
	ke := &KeyEvent{Event: ev}
	for _, h := range e.keydown {
		h(ke)
	}
	if ke.prevented {
		e.log.Debug("key %s: handled", ev)
	} else if e.native(ev) {
		e.log.Debug("key %s: native", ev)
	}
	change, changed := e.pathChangeLocked()
	listeners := e.nodeChange
	e.mu.Unlock()

	if changed {
		fire(listeners, change)
	}
	return ke.prevented
}

// NodeChanged fires the node change listeners for the current selection
// regardless of whether the element path changed.
func (e *Editor) NodeChanged() {
	e.mu.Lock()
	change, _ := e.pathChangeLocked()
	listeners := e.nodeChange
	e.mu.Unlock()
	fire(listeners, change)
}

// pathChangeLocked computes the node change for the selection start and
// reports whether its element path differs from the last one seen.
func (e *Editor) pathChangeLocked() (NodeChange, bool) {
	el := e.sel.Range().Start.Container()
	if el == nil {
		el = e.root
	}
	if el.IsText() {
		el = el.Parent
	}

	var parents []*dom.Node
	for n := el; n != nil && n != e.root; n = n.Parent {
		parents = append(parents, n)
	}

	path := append([]*dom.Node{el}, parents...)
	same := slices.Equal(path, e.lastPath)
	e.lastPath = path
	return NodeChange{Element: el, Parents: parents}, !same
}

func fire(listeners []func(NodeChange), c NodeChange) {
	for _, fn := range listeners {
		fn(c)
	}
}
