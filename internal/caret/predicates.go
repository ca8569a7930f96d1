package caret

import "github.com/dshills/cefnav/internal/dom"

// Predicate tests a position.
type Predicate func(Position) bool

// NodePredicate tests a node.
type NodePredicate func(*dom.Node) bool

// IsBeforeAtomic reports whether an atomic node directly follows p.
func IsBeforeAtomic(p Position) bool {
	return Normalize(p).NodeAfter().IsAtomic()
}

// IsAfterAtomic reports whether an atomic node directly precedes p.
func IsAfterAtomic(p Position) bool {
	return Normalize(p).NodeBefore().IsAtomic()
}

// IsAtomicPosition reports whether p touches an atomic node on either side.
func IsAtomicPosition(p Position) bool {
	return IsBeforeAtomic(p) || IsAfterAtomic(p)
}

// IsBeforeMedia reports whether a media element directly follows p.
func IsBeforeMedia(p Position) bool {
	return p.NodeAfter().IsMedia()
}

// IsAfterMedia reports whether a media element directly precedes p.
func IsAfterMedia(p Position) bool {
	return p.NodeBefore().IsMedia()
}

// IsMediaPosition reports whether p touches a media element.
func IsMediaPosition(p Position) bool {
	return IsBeforeMedia(p) || IsAfterMedia(p)
}

// IsAtomic is the node predicate for atomic nodes.
func IsAtomic(n *dom.Node) bool {
	return n.IsAtomic()
}

// IsMedia is the node predicate for media elements.
func IsMedia(n *dom.Node) bool {
	return n.IsMedia()
}
