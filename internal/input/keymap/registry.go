package keymap

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dshills/cefnav/internal/platform"
)

// ErrNilKeymap is returned when registering a nil keymap.
var ErrNilKeymap = errors.New("nil keymap")

// Registry holds the parsed tables by name.
type Registry struct {
	mu      sync.RWMutex
	keymaps map[string]*ParsedKeymap
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{keymaps: make(map[string]*ParsedKeymap)}
}

// Register parses km and stores it under its name, replacing any table
// registered before. A file-defined "home-end" therefore overrides the
// built-in one.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return ErrNilKeymap
	}
	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.keymaps[km.Name] = parsed
	return nil
}

// LoadDefaults registers the default tables for os.
func (r *Registry) LoadDefaults(os platform.OS) error {
	for _, km := range Defaults(os) {
		if err := r.Register(km); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a keymap by name, or nil.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keymaps[name]
}

// Names returns the registered keymap names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.keymaps))
}
