package dom

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "dd": true, "details": true, "dialog": true, "div": true,
	"dl": true, "dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hgroup": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "tbody": true, "td": true, "tfoot": true,
	"th": true, "thead": true, "tr": true, "ul": true,
}

var voidTags = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "wbr": true,
	"embed": true, "area": true, "col": true, "source": true, "track": true,
}

var mediaTags = map[string]bool{
	"video": true, "audio": true, "iframe": true, "object": true, "embed": true,
}

// IsVoidTag reports whether tag names an element without content.
func IsVoidTag(tag string) bool {
	return voidTags[tag]
}

// IsBlock returns true for block-level elements.
func (n *Node) IsBlock() bool {
	return n.IsElement() && blockTags[n.Tag]
}

// IsLineBreak returns true for <br> elements.
func (n *Node) IsLineBreak() bool {
	return n.IsElement() && n.Tag == "br"
}

// IsMedia returns true for embedded media elements.
func (n *Node) IsMedia() bool {
	return n.IsElement() && mediaTags[n.Tag]
}

// IsRule returns true for <hr> elements.
func (n *Node) IsRule() bool {
	return n.IsElement() && n.Tag == "hr"
}

// IsIndivisible returns true for elements navigated as a single unit:
// atomic nodes, media and void elements other than line breaks.
func (n *Node) IsIndivisible() bool {
	if !n.IsElement() {
		return false
	}
	if n.atomic || mediaTags[n.Tag] {
		return true
	}
	return voidTags[n.Tag] && n.Tag != "br" && n.Tag != "wbr"
}

// IsBoundaryContainer returns true for blocks carrying BoundaryAttr.
func (n *Node) IsBoundaryContainer() bool {
	_, ok := n.Attr(BoundaryAttr)
	return ok && n.IsElement()
}

// ClosestBlock returns the nearest block ancestor of n, or n itself when
// n is a block. The root is returned when no block encloses n.
func (n *Node) ClosestBlock() *Node {
	cur := n
	for cur != nil {
		if cur.IsBlock() || cur.Parent == nil {
			return cur
		}
		cur = cur.Parent
	}
	return nil
}

// ClosestBoundaryContainer returns the nearest ancestor-or-self boundary
// container of n, or nil.
func (n *Node) ClosestBoundaryContainer() *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.IsBoundaryContainer() {
			return cur
		}
	}
	return nil
}

// IsBogusBr reports whether n is a line break with no rendered content
// after it inside its block. Such a break only pads an otherwise empty
// line and does not start a new one.
func (n *Node) IsBogusBr() bool {
	if !n.IsLineBreak() {
		return false
	}
	block := n.ClosestBlock()
	for cur := next(n, block, false); cur != nil; cur = next(cur, block, true) {
		if cur.IsBlock() {
			return true
		}
		if cur.IsText() && cur.Data != "" {
			return false
		}
		if cur.IsIndivisible() || cur.IsLineBreak() {
			return false
		}
	}
	return true
}

// IsEmptyBlock reports whether n is an editable block holding no rendered
// content and no nested blocks.
func (n *Node) IsEmptyBlock() bool {
	if !n.IsBlock() || n.atomic || n.InsideAtomic() {
		return false
	}
	for cur := next(n, n, true); cur != nil; cur = next(cur, n, true) {
		if cur.IsBlock() {
			return false
		}
		if cur.IsText() && cur.Data != "" {
			return false
		}
		if cur.IsIndivisible() {
			return false
		}
	}
	return true
}

// next returns the node after cur in document order within scope. When
// descend is false the children of cur are skipped. Indivisible elements
// are never descended into.
func next(cur, scope *Node, descend bool) *Node {
	if descend && len(cur.Children) > 0 && !cur.IsIndivisible() {
		return cur.Children[0]
	}
	for n := cur; n != nil && n != scope; n = n.Parent {
		if sib := n.NextSibling(); sib != nil {
			return sib
		}
	}
	return nil
}
