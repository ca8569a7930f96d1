// Package renderer draws an editor view to a terminal.
//
// The renderer is responsible for:
//   - Painting laid out content cell by cell, grapheme by grapheme
//   - Marking atomic nodes, inline boundaries and the selection
//   - Placing the real caret, or the overlay caret when one is shown
//   - Converting tcell key events into key.Event values
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│        Renderer (editor.View)           │
//	├─────────────────────────────────────────┤
//	│   Styles  │  Scale (layout -> cells)    │
//	├─────────────────────────────────────────┤
//	│        Terminal (tcell.Screen)          │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := renderer.NewTerminal()
//	_ = term.Init()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.Draw(ed.Snapshot())
package renderer
