// Package editor is the host editing surface the navigation engine runs
// against.
//
// An Editor owns the content tree, its layout, the selection and the
// overlay caret controller. It dispatches key events to registered
// keydown handlers and, when none of them prevents the default, performs
// the native caret movement a browser would: one grapheme left or right,
// the closest position on the next visual line, the line end points, and
// the document boundaries with Ctrl. Shift extends the selection.
//
// After every dispatch the editor compares the element path of the
// selection start with the previous one and fires NodeChange listeners
// when it differs.
//
// # Locking
//
// Dispatch, SetContent, Focus, Blur and Snapshot serialise on the editor
// lock. Keydown handlers run with the lock held and use the unlocked
// surface methods (Root, Geometry, Selection, SetSelection,
// ScrollIntoView). NodeChange listeners run after the lock is released.
package editor
