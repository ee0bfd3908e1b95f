package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const barWidth = 24

// Progress prints generation progress. On a terminal it redraws a single bar line;
// elsewhere it prints one line per step.
// It implements ports.ProgressReporter.
type Progress struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	profile     termenv.Profile
	drawn       int
}

// ProgressOption configures a Progress.
type ProgressOption func(*Progress)

// WithInteractive overrides terminal detection.
func WithInteractive(interactive bool) ProgressOption {
	return func(p *Progress) { p.interactive = interactive }
}

// NewProgress creates a reporter writing to out.
func NewProgress(out io.Writer, opts ...ProgressOption) *Progress {
	p := &Progress{out: out, profile: termenv.Ascii}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.interactive = true
		p.profile = termenv.ColorProfile()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Report shows message with a completion ratio in [0, 1].
func (p *Progress) Report(message string, ratio float64) {
	ratio = min(max(ratio, 0), 1)
	pct := int(ratio*100 + 0.5)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.interactive {
		fmt.Fprintf(p.out, "[%3d%%] %s\n", pct, message)
		return
	}

	filled := int(ratio * barWidth)
	bar := termenv.String(strings.Repeat("█", filled)).Foreground(p.profile.Color("#a78bfa")).String() +
		strings.Repeat("░", barWidth-filled)
	line := fmt.Sprintf("%s %3d%% %s", bar, pct, message)
	width := barWidth + 6 + len([]rune(message))
	pad := ""
	if p.drawn > width {
		pad = strings.Repeat(" ", p.drawn-width)
	}
	fmt.Fprint(p.out, "\r"+line+pad)
	p.drawn = width
}

// Clear erases the bar line.
func (p *Progress) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.interactive && p.drawn > 0 {
		fmt.Fprint(p.out, "\r"+strings.Repeat(" ", p.drawn)+"\r")
	}
	p.drawn = 0
}
