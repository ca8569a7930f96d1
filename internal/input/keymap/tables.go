package keymap

import "github.com/dshills/cefnav/internal/platform"

// HomeEndTable returns the Home/End bindings for os. Plain End/Home tries
// the atomic, media and inline boundary line end points in that order.
// Selecting to the document boundary is Ctrl+Shift+End/Home, or
// Shift+End/Home on macOS.
func HomeEndTable(os platform.OS) *Keymap {
	sel := "Ctrl+Shift+"
	if os.IsMac() {
		sel = "Shift+"
	}
	km := NewKeymap(HomeEnd).WithSource("default")
	km.Platform = os.String()
	km.Bindings = []Binding{
		directed("End", ActionAtomicLineEndPoint, true, "Move after an atomic node ending the line"),
		directed("Home", ActionAtomicLineEndPoint, false, "Move before an atomic node starting the line"),
		directed(sel+"End", ActionSelectToEndPoint, true, "Select to the end of the content"),
		directed(sel+"Home", ActionSelectToEndPoint, false, "Select to the start of the content"),
		directed("End", ActionMediaLineEndPoint, true, "Move after media ending the line"),
		directed("Home", ActionMediaLineEndPoint, false, "Move before media starting the line"),
		directed("End", ActionBoundaryLineEndPoint, true, "Move out of an inline boundary ending the line"),
		directed("Home", ActionBoundaryLineEndPoint, false, "Move out of an inline boundary starting the line"),
	}
	return km
}

// ArrowTable returns the arrow key bindings for os. On macOS
// Cmd+Shift+Up/Down also selects to the document boundary.
func ArrowTable(os platform.OS) *Keymap {
	km := NewKeymap(Arrows).WithSource("default")
	km.Platform = os.String()
	km.Bindings = []Binding{
		directed("Left", ActionAtomicHorizontal, false, "Move left around atomic nodes"),
		directed("Right", ActionAtomicHorizontal, true, "Move right around atomic nodes"),
		directed("Up", ActionAtomicVertical, false, "Move up around atomic nodes"),
		directed("Down", ActionAtomicVertical, true, "Move down around atomic nodes"),
	}
	if os.IsMac() {
		km.Bindings = append(km.Bindings,
			directed("Meta+Shift+Up", ActionSelectToEndPoint, false, "Select to the start of the content"),
			directed("Meta+Shift+Down", ActionSelectToEndPoint, true, "Select to the end of the content"),
		)
	}
	return km
}

// Defaults returns every default table for os.
func Defaults(os platform.OS) []*Keymap {
	return []*Keymap{HomeEndTable(os), ArrowTable(os)}
}
