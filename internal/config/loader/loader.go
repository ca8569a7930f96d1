// Package loader reads configuration sources into nested maps.
//
// A TOML file and the CEFNAV_ environment are the two sources. Each loads
// into a map[string]any keyed by section; DeepMerge layers them over the
// defaults, later sources winning.
package loader

import "os"

// FileSystem reads configuration files. Tests swap in an in-memory one.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the operating system file system.
func DefaultFS() FileSystem {
	return osFS{}
}
