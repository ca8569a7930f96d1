package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Key names: "End", "Home", "Left", "Escape"
//   - Single characters: "a", "@"
//   - With modifiers: "Shift+End", "Ctrl+Shift+Home"
//   - Short form: "<S-End>", "<C-S-Home>", "<M-S-Up>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	sep := "+"
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		spec = spec[1 : len(spec)-1]
		sep = "-"
	}
	parts := strings.Split(spec, sep)
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		// "Ctrl++" binds the separator itself.
		parts = append(parts[:len(parts)-2], sep)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if k := KeyFromName(keyPart); k != KeyNone {
		return Event{Key: k, Modifiers: mods}, nil
	}
	if r := []rune(keyPart); len(r) == 1 {
		return Event{Key: KeyRune, Rune: r[0], Modifiers: mods}, nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return e
}
