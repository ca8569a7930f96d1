// Package keymap holds the ordered key binding tables that route
// navigation keys to caret commands.
//
// A table is evaluated in order: the first binding whose key matches the
// event exactly and whose action reports success wins, and the key event
// is then marked default-prevented. Several bindings can share a key; a
// binding that declines lets the next one run.
//
// # Tables
//
// HomeEndTable and ArrowTable build the defaults for a platform. A keymap
// file with the same name replaces a default table:
//
//	name: home-end
//	bindings:
//	  - keys: End
//	    action: caret.atomicLineEndPoint
//	    args: {forward: true}
//
// Files ending in .json are decoded as JSON, .yaml and .yml as YAML.
package keymap
