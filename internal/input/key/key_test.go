package key

import (
	"errors"
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyHome, "Home"},
		{KeyEnd, "End"},
		{KeyLeft, "Left"},
		{KeyRune, "Rune"},
		{Key(200), "Key(200)"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyClasses(t *testing.T) {
	if !KeyUp.IsArrowKey() || KeyHome.IsArrowKey() {
		t.Error("IsArrowKey misclassified Up or Home")
	}
	if !KeyLeft.IsHorizontal() || KeyDown.IsHorizontal() {
		t.Error("IsHorizontal misclassified Left or Down")
	}
	if !KeyEnd.IsNavigationKey() || KeyEnter.IsNavigationKey() {
		t.Error("IsNavigationKey misclassified End or Enter")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModShift, "Shift"},
		{ModCtrl | ModShift, "Ctrl+Shift"},
		{ModMeta | ModShift | ModAlt, "Alt+Shift+Meta"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	m := ModCtrl.With(ModShift).Without(ModCtrl)
	if m != ModShift {
		t.Errorf("With/Without = %v, want Shift", m)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"End", Event{Key: KeyEnd}},
		{"home", Event{Key: KeyHome}},
		{"Shift+End", Event{Key: KeyEnd, Modifiers: ModShift}},
		{"Ctrl+Shift+Home", Event{Key: KeyHome, Modifiers: ModCtrl | ModShift}},
		{"Cmd+Shift+Up", Event{Key: KeyUp, Modifiers: ModMeta | ModShift}},
		{"<C-S-End>", Event{Key: KeyEnd, Modifiers: ModCtrl | ModShift}},
		{"<M-S-Down>", Event{Key: KeyDown, Modifiers: ModMeta | ModShift}},
		{"a", Event{Key: KeyRune, Rune: 'a'}},
		{"Ctrl++", Event{Key: KeyRune, Rune: '+', Modifiers: ModCtrl}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+End", ErrInvalidSpec},
		{"Ctrl+Nowhere", ErrInvalidSpec},
		{"<X-End>", ErrInvalidSpec},
	}

	for _, tt := range tests {
		if _, err := Parse(tt.spec); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestEventMatchesExactModifiers(t *testing.T) {
	e := NewSpecialEvent(KeyEnd, ModShift)
	if !e.Matches("Shift+End") {
		t.Error("Shift+End should match its own spec")
	}
	if e.Matches("End") {
		t.Error("Shift+End should not match End")
	}
	if e.Matches("Ctrl+Shift+End") {
		t.Error("Shift+End should not match Ctrl+Shift+End")
	}
	if got := e.String(); got != "Shift+End" {
		t.Errorf("String() = %q, want %q", got, "Shift+End")
	}
	if got := NewRuneEvent('x', ModNone).String(); got != "x" {
		t.Errorf("String() = %q, want %q", got, "x")
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on an invalid spec")
		}
	}()
	MustParse("Hyper+End")
}

func TestEventIsRune(t *testing.T) {
	tests := []struct {
		ev   Event
		want bool
	}{
		{NewRuneEvent('q', ModCtrl), true},
		{NewSpecialEvent(KeyEnd, ModNone), false},
		{NewEvent(KeyRune, 0, ModNone), false},
	}
	for _, tt := range tests {
		if got := tt.ev.IsRune(); got != tt.want {
			t.Errorf("%v IsRune() = %v, want %v", tt.ev, got, tt.want)
		}
	}
}
