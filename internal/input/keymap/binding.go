package keymap

import "github.com/dshills/cefnav/internal/input/key"

// Actions a binding can name.
const (
	ActionAtomicLineEndPoint   = "caret.atomicLineEndPoint"
	ActionSelectToEndPoint     = "caret.selectToEndPoint"
	ActionMediaLineEndPoint    = "caret.mediaLineEndPoint"
	ActionBoundaryLineEndPoint = "caret.boundaryLineEndPoint"
	ActionAtomicHorizontal     = "caret.atomicHorizontal"
	ActionAtomicVertical       = "caret.atomicVertical"
)

// ArgForward selects the direction of an action: End, Right and Down are
// forward.
const ArgForward = "forward"

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key that triggers this binding, e.g. "Ctrl+Shift+End".
	Keys string `json:"keys" yaml:"keys"`

	// Action is the command to execute.
	Action string `json:"action" yaml:"action"`

	// Args are fixed arguments for the action.
	Args map[string]any `json:"args,omitempty" yaml:"args,omitempty"`

	// Description provides documentation for the binding.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// Forward returns the forward argument, false when absent.
func (b Binding) Forward() bool {
	v, _ := b.Args[ArgForward].(bool)
	return v
}

func directed(keys, action string, forward bool, desc string) Binding {
	return NewBinding(keys, action).
		WithArgs(map[string]any{ArgForward: forward}).
		WithDescription(desc)
}

// ParsedBinding is a binding with its key parsed.
type ParsedBinding struct {
	Binding
	Event key.Event
}

// Match reports whether e presses exactly this binding's key: the key and
// every modifier must agree.
func (pb *ParsedBinding) Match(e key.Event) bool {
	if pb == nil {
		return false
	}
	return pb.Event.Equals(e)
}
