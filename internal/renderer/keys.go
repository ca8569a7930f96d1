package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cefnav/internal/input/key"
)

var fromTcellKey = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
}

var toTcellKey = map[key.Key]tcell.Key{
	key.KeyEscape:    tcell.KeyEscape,
	key.KeyEnter:     tcell.KeyEnter,
	key.KeyTab:       tcell.KeyTab,
	key.KeyBackspace: tcell.KeyBackspace2,
	key.KeyDelete:    tcell.KeyDelete,
	key.KeyHome:      tcell.KeyHome,
	key.KeyEnd:       tcell.KeyEnd,
	key.KeyPageUp:    tcell.KeyPgUp,
	key.KeyPageDown:  tcell.KeyPgDn,
	key.KeyUp:        tcell.KeyUp,
	key.KeyDown:      tcell.KeyDown,
	key.KeyLeft:      tcell.KeyLeft,
	key.KeyRight:     tcell.KeyRight,
}

// FromTcell converts a tcell key event. Control characters are reported
// as lower-case runes with Ctrl held, so Ctrl+E arrives as the rune 'e'.
// It reports false for keys with no counterpart.
func FromTcell(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	if named, ok := fromTcellKey[k]; ok {
		return key.NewSpecialEvent(named, mods), true
	}
	switch {
	case k == tcell.KeyRune:
		return key.NewRuneEvent(ev.Rune(), mods), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.NewRuneEvent(rune('a'+(k-tcell.KeyCtrlA)), mods.With(key.ModCtrl)), true
	}
	return key.Event{}, false
}

// ToTcell converts a key event to a tcell key event.
func ToTcell(ev key.Event) *tcell.EventKey {
	mods := convertToTcellMod(ev.Modifiers)
	if ev.IsRune() {
		return tcell.NewEventKey(tcell.KeyRune, ev.Rune, mods)
	}
	return tcell.NewEventKey(toTcellKey[ev.Key], 0, mods)
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

func convertToTcellMod(m key.Modifier) tcell.ModMask {
	var mods tcell.ModMask
	if m.Has(key.ModShift) {
		mods |= tcell.ModShift
	}
	if m.Has(key.ModCtrl) {
		mods |= tcell.ModCtrl
	}
	if m.Has(key.ModAlt) {
		mods |= tcell.ModAlt
	}
	if m.Has(key.ModMeta) {
		mods |= tcell.ModMeta
	}
	return mods
}
