package keymap

import (
	"errors"
	"fmt"
	"maps"

	"github.com/dshills/cefnav/internal/input/key"
)

// Names of the default tables.
const (
	HomeEnd = "home-end"
	Arrows  = "arrows"
)

var (
	// ErrEmptyKeys is returned for a binding without keys.
	ErrEmptyKeys = errors.New("empty keys")
	// ErrEmptyAction is returned for a binding without an action.
	ErrEmptyAction = errors.New("empty action")
)

// Keymap is an ordered binding table.
type Keymap struct {
	// Name is the table identifier.
	Name string `json:"name" yaml:"name"`

	// Platform records the platform the table was built for, if any.
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`

	// Source indicates where this keymap was defined.
	// Examples: "default", "/home/me/.config/cefnav/keys.yaml"
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Bindings are evaluated in order.
	Bindings []Binding `json:"bindings" yaml:"bindings"`
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name, Bindings: make([]Binding, 0)}
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add appends a binding to this keymap.
func (k *Keymap) Add(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	_, err := k.Parse()
	return err
}

// ParsedKeymap is a keymap with parsed keys.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse parses all bindings in the keymap.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
	}
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return nil, fmt.Errorf("binding %d: %w", i, ErrEmptyKeys)
		}
		if b.Action == "" {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, ErrEmptyAction)
		}
		e, err := key.Parse(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{Binding: b, Event: e})
	}
	return parsed, nil
}

// Matching returns the bindings for e in table order.
func (pk *ParsedKeymap) Matching(e key.Event) []*ParsedBinding {
	var out []*ParsedBinding
	for i := range pk.ParsedBindings {
		if pb := &pk.ParsedBindings[i]; pb.Match(e) {
			out = append(out, pb)
		}
	}
	return out
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Platform: k.Platform,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
	}
	for i, b := range k.Bindings {
		clone.Bindings[i] = b
		if b.Args != nil {
			clone.Bindings[i].Args = maps.Clone(b.Args)
		}
	}
	return clone
}
