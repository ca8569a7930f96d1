package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a keymap file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for a keymap file with an unrecognised extension.
var ErrUnknownFormat = errors.New("unknown keymap format")

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Loader loads keymaps from configuration files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{searchPaths: make([]string, 0)}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads a keymap from a JSON or YAML file.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := l.LoadReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Source == "" {
		km.Source = path
	}
	return km, nil
}

// LoadReader loads a keymap from a reader.
func (l *Loader) LoadReader(r io.Reader, format Format) (*Keymap, error) {
	km := NewKeymap("")
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(km)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(km)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}
	if km.Name == "" {
		return nil, errors.New("keymap has no name")
	}
	return km, nil
}

// LoadAll loads the given files followed by every keymap file in the
// search paths, in order.
func (l *Loader) LoadAll(files ...string) ([]*Keymap, error) {
	paths := append([]string(nil), files...)
	for _, dir := range l.searchPaths {
		for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return nil, fmt.Errorf("searching %s: %w", dir, err)
			}
			paths = append(paths, matches...)
		}
	}

	keymaps := make([]*Keymap, 0, len(paths))
	for _, path := range paths {
		km, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		keymaps = append(keymaps, km)
	}
	return keymaps, nil
}

// LoadAndRegister loads all keymaps and registers them, replacing any
// table of the same name.
func (l *Loader) LoadAndRegister(registry *Registry, files ...string) error {
	keymaps, err := l.LoadAll(files...)
	if err != nil {
		return err
	}
	for _, km := range keymaps {
		if err := registry.Register(km); err != nil {
			return fmt.Errorf("registering keymap %q: %w", km.Name, err)
		}
	}
	return nil
}

// SaveFile writes a keymap in the format implied by the path.
func (k *Keymap) SaveFile(path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	if format == FormatJSON {
		data, err = json.MarshalIndent(k, "", "  ")
	} else {
		data, err = yaml.Marshal(k)
	}
	if err != nil {
		return fmt.Errorf("marshaling keymap: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}
	return nil
}
