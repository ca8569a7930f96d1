package editor

import (
	"github.com/dshills/cefnav/internal/caret"
	"github.com/dshills/cefnav/internal/input/key"
	"github.com/dshills/cefnav/internal/line"
)

// native performs the default caret movement for ev and reports whether
// the selection moved.
func (e *Editor) native(ev key.Event) bool {
	extend := ev.Modifiers.Has(key.ModShift)
	mods := ev.Modifiers.Without(key.ModShift)
	head := e.sel.Head

	var target caret.Position
	ok := false
	switch {
	case ev.Key.IsHorizontal() && mods == key.ModNone:
		forward := ev.Key == key.KeyRight
		if !extend && !e.sel.IsEmpty() {
			if forward {
				e.moveTo(e.sel.CollapseToEnd())
			} else {
				e.moveTo(e.sel.CollapseToStart())
			}
			return true
		}
		if forward {
			target, ok = e.walker.Next(head)
		} else {
			target, ok = e.walker.Prev(head)
		}
	case (ev.Key == key.KeyUp || ev.Key == key.KeyDown) && mods == key.ModNone:
		dir := line.Up
		if ev.Key == key.KeyDown {
			dir = line.Down
		}
		target, ok = e.verticalTarget(dir, head)
	case (ev.Key == key.KeyHome || ev.Key == key.KeyEnd) && mods == key.ModNone:
		dir := caret.Backwards
		if ev.Key == key.KeyEnd {
			dir = caret.Forwards
		}
		target, ok = line.NewWalker(e.walker, e.layout).LineEndPoint(dir, head)
	case ev.Key == key.KeyHome && mods == key.ModCtrl:
		target, ok = e.walker.First()
	case ev.Key == key.KeyEnd && mods == key.ModCtrl:
		target, ok = e.walker.Last()
	}
	if !ok {
		return false
	}

	if extend {
		e.moveTo(e.sel.Extend(target))
	} else {
		e.moveTo(e.sel.MoveTo(target))
	}
	return true
}

func (e *Editor) moveTo(s Selection) {
	e.overlay.Hide()
	e.sel = s
	e.ScrollIntoView(caret.Collapsed(s.Head))
}

// verticalTarget returns the position on the adjacent line closest to the
// caret's horizontal coordinate, or the line end point when there is no
// adjacent line.
func (e *Editor) verticalTarget(dir line.Direction, from caret.Position) (caret.Position, bool) {
	cr, ok := e.walker.ClientRect(e.layout, from)
	if !ok {
		return caret.Position{}, false
	}
	lw := line.NewWalker(e.walker, e.layout)
	next := line.Filter(lw.Collect(dir, line.IsAboveLine(1), from), line.IsLine(1))
	if rec, ok := line.FindClosest(next, cr.Rect.Left); ok {
		return rec.Position, true
	}
	return lw.LineEndPoint(dir.Horizontal(), from)
}
