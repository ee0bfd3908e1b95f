package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the fxgen ASCII art banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text, color string
	}{
		{"  _____ _____ ____  ", "#818cf8"},
		{" |  ___| ____/ ___| ", "#a78bfa"},
		{" | |_  |  _| \\___ \\ ", "#c084fc"},
		{" |  _| | |___ ___) |", "#e879f9"},
		{" |_|   |_____|____/ ", "#f472b6"},
		{"   facial expression switcher", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
