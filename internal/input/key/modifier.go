package key

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

// Alt is Option and Meta is Cmd on macOS.
const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone Modifier = 0
)

// Has reports whether every modifier in mod is held.
func (m Modifier) Has(mod Modifier) bool {
	return mod != 0 && m&mod == mod
}

// With adds mod.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without removes mod.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// String returns a representation like "Ctrl+Shift", in the order the
// key parser prints them.
func (m Modifier) String() string {
	var parts []string
	for _, mn := range modifierOrder {
		if m.Has(mn.mod) {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "+")
}

var modifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModMeta, "Meta"},
}

// ModifierFromName returns the modifier for a spec token such as "ctrl"
// or "cmd", ignoring case, or ModNone when the token names no modifier.
func ModifierFromName(name string) Modifier {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ctrl", "control", "c":
		return ModCtrl
	case "alt", "option", "opt", "a":
		return ModAlt
	case "shift", "s":
		return ModShift
	case "meta", "cmd", "command", "m", "d":
		return ModMeta
	}
	return ModNone
}
