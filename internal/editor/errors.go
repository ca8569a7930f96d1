package editor

import "errors"

// Errors returned by editor operations.
var (
	// ErrNoContent indicates a content file could not be read.
	ErrNoContent = errors.New("no content")
)
