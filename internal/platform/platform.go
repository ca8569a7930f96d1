// Package platform identifies the operating system family that selects
// platform specific key bindings.
package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// OS is an operating system family.
type OS string

const (
	Linux   OS = "linux"
	MacOS   OS = "macos"
	Windows OS = "windows"
	Other   OS = "other"
)

// Auto asks Resolve to detect the running platform.
const Auto = "auto"

// ErrUnknownPlatform is returned for an unrecognised platform name.
var ErrUnknownPlatform = errors.New("unknown platform")

// Detect returns the family of the running operating system.
func Detect() OS {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a GOOS value to its family.
func FromGOOS(goos string) OS {
	switch goos {
	case "darwin", "ios":
		return MacOS
	case "windows":
		return Windows
	case "linux", "android", "freebsd", "openbsd", "netbsd", "dragonfly":
		return Linux
	default:
		return Other
	}
}

// Resolve returns the platform named by an override, or the detected one
// when the override is empty or "auto".
func Resolve(override string) (OS, error) {
	name := strings.ToLower(strings.TrimSpace(override))
	switch name {
	case "", Auto:
		return Detect(), nil
	case "mac", "macos", "osx", "darwin":
		return MacOS, nil
	case "linux":
		return Linux, nil
	case "windows", "win":
		return Windows, nil
	case "other":
		return Other, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, override)
}

// IsMac reports whether o uses macOS key conventions.
func (o OS) IsMac() bool {
	return o == MacOS
}

// String returns the family name.
func (o OS) String() string {
	return string(o)
}
