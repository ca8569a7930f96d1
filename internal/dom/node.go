package dom

import (
	"strings"
)

// NodeType identifies the kind of content node.
type NodeType uint8

const (
	// ElementNode is a structural or inline element.
	ElementNode NodeType = iota + 1

	// TextNode holds character data.
	TextNode
)

// BoundaryAttr marks a block as a boundary container: a structural wrapper
// that lets a collapsed selection sit logically next to an atomic node.
const BoundaryAttr = "data-caret-container"

// Node is a node in the content tree.
type Node struct {
	Type     NodeType
	Tag      string // lowercase element name; empty for text
	Data     string // character data for text nodes
	Attrs    map[string]string
	Parent   *Node
	Children []*Node

	atomic   bool
	boundary bool
}

// NewElement creates an element with the given children.
func NewElement(tag string, attrs map[string]string, children ...*Node) *Node {
	n := &Node{Type: ElementNode, Tag: strings.ToLower(tag), Attrs: attrs}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// NewText creates a text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// AppendChild appends c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// IsInlineBoundary returns true for inline elements such as links whose
// edges are caret stops of their own.
func (n *Node) IsInlineBoundary() bool {
	return n != nil && n.boundary
}

// IsText returns true for text nodes.
func (n *Node) IsText() bool {
	return n != nil && n.Type == TextNode
}

// IsElement returns true for element nodes.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode
}

// IsAtomic returns true if n is a non-editable node.
func (n *Node) IsAtomic() bool {
	return n != nil && n.atomic
}

// InsideAtomic returns true if any ancestor of n is atomic.
func (n *Node) InsideAtomic() bool {
	if n == nil {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.atomic {
			return true
		}
	}
	return false
}

// Len returns the length of n in offset units: bytes for text nodes,
// children for elements.
func (n *Node) Len() int {
	if n.IsText() {
		return len(n.Data)
	}
	return len(n.Children)
}

// Index returns the index of n within its parent, or -1 for a root.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// Child returns the child at index i, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// PrevSibling returns the sibling before n.
func (n *Node) PrevSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	return n.Parent.Child(n.Index() - 1)
}

// NextSibling returns the sibling after n.
func (n *Node) NextSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	return n.Parent.Child(n.Index() + 1)
}

// Attr returns the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for o := other; o != nil; o = o.Parent {
		if o == n {
			return true
		}
	}
	return false
}

// Root returns the topmost ancestor of n.
func (n *Node) Root() *Node {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// Path returns the descendant reached by following child indices.
// It returns nil if any index is out of range.
func (n *Node) Path(indices ...int) *Node {
	cur := n
	for _, i := range indices {
		cur = cur.Child(i)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// NodePath returns the child indices leading from the root to n.
func (n *Node) NodePath() []int {
	var path []int
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		path = append(path, cur.Index())
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Data
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// String renders n as HTML-like markup for diagnostics.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n.IsText() {
		sb.WriteString(n.Data)
		return
	}
	sb.WriteString("<" + n.Tag)
	if n.atomic {
		sb.WriteString(` contenteditable="false"`)
	}
	sb.WriteString(">")
	for _, c := range n.Children {
		c.write(sb)
	}
	if !IsVoidTag(n.Tag) {
		sb.WriteString("</" + n.Tag + ">")
	}
}
