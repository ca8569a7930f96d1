// Package dom provides the content tree navigated by the caret engine.
//
// A tree is rooted at a body element and holds element and text nodes.
// Element nodes may be flagged atomic (non-editable): the caret may sit
// immediately before or after an atomic node but never inside it, and the
// subtree below an atomic node is opaque to navigation.
//
// Trees are normally built from HTML with Parse, which classifies atomic
// nodes with a CSS selector (by default [contenteditable=false]):
//
//	root, err := dom.ParseString(`<p>123<span contenteditable="false">CEF</span></p>`)
//	p := root.Path(0)
//	cef := root.Path(0, 1)
//	_ = cef.IsAtomic() // true
//
// Nodes are identities: navigation borrows them and never copies them.
// Any mutation of a tree invalidates positions previously derived from it.
package dom
