// Package key provides the key event types used by the navigation keymaps.
//
//   - Key: identifies a keyboard key (navigation keys, editing keys, runes)
//   - Modifier: Shift, Ctrl, Alt and Meta as a bit set
//   - Event: a single key press with its modifiers
//
// # Key Specifications
//
// Bindings are written as "End", "Shift+Home", "Ctrl+Shift+End" or in the
// short form "<C-S-End>". Modifiers in a specification must match an event
// exactly: "End" does not match Shift+End.
package key
