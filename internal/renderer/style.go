package renderer

import "github.com/gdamore/tcell/v2"

// Styles are the cell styles used for each kind of content.
type Styles struct {
	Text      tcell.Style
	Atomic    tcell.Style
	Boundary  tcell.Style
	Media     tcell.Style
	Selection tcell.Style
	Overlay   tcell.Style
	Status    tcell.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Text:      tcell.StyleDefault,
		Atomic:    tcell.StyleDefault.Foreground(tcell.ColorTeal).Background(tcell.ColorDarkSlateGray),
		Boundary:  tcell.StyleDefault.Underline(true),
		Media:     tcell.StyleDefault.Foreground(tcell.ColorYellow),
		Selection: tcell.StyleDefault.Reverse(true),
		Overlay:   tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true),
		Status:    tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	}
}
