package app

import (
	"errors"
	"fmt"
)

var (
	// ErrQuit is the interrupt payload Shutdown posts to stop the event loop.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning is returned by Run and SetTerminal during a run.
	ErrAlreadyRunning = errors.New("already running")

	// ErrNoTerminal is returned by Run before SetTerminal.
	ErrNoTerminal = errors.New("no terminal set")
)

// InitError names the bootstrap step that failed: config, platform,
// keymap, keyboard, content, watcher or terminal.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// RecoveredPanicError wraps a panic raised while handling an event, so the
// terminal can be restored before the error is reported.
type RecoveredPanicError struct {
	Value any
	Stack string
}

func (e *RecoveredPanicError) Error() string {
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}
