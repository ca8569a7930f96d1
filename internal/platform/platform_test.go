package platform

import (
	"errors"
	"testing"
)

func TestFromGOOS(t *testing.T) {
	tests := []struct {
		goos string
		want OS
	}{
		{"darwin", MacOS},
		{"ios", MacOS},
		{"windows", Windows},
		{"linux", Linux},
		{"freebsd", Linux},
		{"plan9", Other},
	}

	for _, tt := range tests {
		if got := FromGOOS(tt.goos); got != tt.want {
			t.Errorf("FromGOOS(%q) = %v, want %v", tt.goos, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		override string
		want     OS
	}{
		{"", Detect()},
		{"auto", Detect()},
		{"OSX", MacOS},
		{"mac", MacOS},
		{" linux ", Linux},
		{"win", Windows},
	}

	for _, tt := range tests {
		got, err := Resolve(tt.override)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", tt.override, err)
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.override, got, tt.want)
		}
	}

	if _, err := Resolve("beos"); !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("Resolve(beos) error = %v, want ErrUnknownPlatform", err)
	}
}

func TestIsMac(t *testing.T) {
	if !MacOS.IsMac() || Windows.IsMac() || Linux.IsMac() {
		t.Error("IsMac should only hold for MacOS")
	}
}
