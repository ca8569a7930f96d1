// Package caret models locations in a content tree and moves them in
// document order.
//
// A Position is a container node plus an offset: a byte offset on a
// grapheme boundary for text nodes, a child index for elements. Positions
// are plain values that borrow node identities from the tree; any mutation
// of the tree invalidates them.
package caret

import (
	"fmt"
	"slices"

	"github.com/dshills/cefnav/internal/dom"
)

// Position is a location in a content tree.
type Position struct {
	container *dom.Node
	offset    int
}

// At returns the position at offset within container. The offset is
// clamped to the container length.
func At(container *dom.Node, offset int) Position {
	if container != nil {
		offset = min(max(offset, 0), container.Len())
	}
	return Position{container: container, offset: offset}
}

// Before returns the position immediately before n in its parent.
func Before(n *dom.Node) Position {
	if n == nil || n.Parent == nil {
		return Position{}
	}
	return Position{container: n.Parent, offset: n.Index()}
}

// After returns the position immediately after n in its parent.
func After(n *dom.Node) Position {
	if n == nil || n.Parent == nil {
		return Position{}
	}
	return Position{container: n.Parent, offset: n.Index() + 1}
}

// Container returns the node holding the position.
func (p Position) Container() *dom.Node {
	return p.container
}

// Offset returns the offset within the container.
func (p Position) Offset() int {
	return p.offset
}

// IsZero reports whether p is the zero position.
func (p Position) IsZero() bool {
	return p.container == nil
}

// IsText reports whether p sits inside a text node.
func (p Position) IsText() bool {
	return p.container.IsText()
}

// IsAtStart reports whether p is at offset 0.
func (p Position) IsAtStart() bool {
	return p.offset == 0
}

// IsAtEnd reports whether p is at the end of its container.
func (p Position) IsAtEnd() bool {
	return p.container != nil && p.offset == p.container.Len()
}

// NodeBefore returns the child before an element position, or nil.
func (p Position) NodeBefore() *dom.Node {
	if !p.container.IsElement() {
		return nil
	}
	return p.container.Child(p.offset - 1)
}

// NodeAfter returns the child after an element position, or nil.
func (p Position) NodeAfter() *dom.Node {
	if !p.container.IsElement() {
		return nil
	}
	return p.container.Child(p.offset)
}

// Block returns the closest block enclosing p.
func (p Position) Block() *dom.Node {
	if p.container == nil {
		return nil
	}
	return p.container.ClosestBlock()
}

// Equal reports whether p and q are the same location.
func (p Position) Equal(q Position) bool {
	return p == q
}

// String renders p as a child index path and offset, for example
// "[1 0]:3".
func (p Position) String() string {
	if p.container == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v:%d", p.container.NodePath(), p.offset)
}

// key orders positions in document order. Each node on the path from the
// root contributes 2*index+1; an element offset o contributes 2*o so it
// sorts between the children around it. Text offsets follow the text
// node's own entry.
func (p Position) key() []int {
	path := p.container.NodePath()
	k := make([]int, 0, len(path)+1)
	for _, i := range path {
		k = append(k, 2*i+1)
	}
	if p.container.IsText() {
		return append(k, p.offset)
	}
	return append(k, 2*p.offset)
}

// Compare orders two positions of the same tree in document order. It
// returns -1, 0 or +1.
func Compare(a, b Position) int {
	return slices.Compare(a.key(), b.key())
}

// Normalize moves a position at the edge of a text node onto the parent
// element when the neighbouring sibling on that side is atomic, so that
// boundary predicates see the atomic node directly.
func Normalize(p Position) Position {
	if !p.IsText() {
		return p
	}
	t := p.container
	if p.IsAtEnd() && t.NextSibling().IsAtomic() {
		return After(t)
	}
	if p.IsAtStart() && t.PrevSibling().IsAtomic() {
		return Before(t)
	}
	return p
}
