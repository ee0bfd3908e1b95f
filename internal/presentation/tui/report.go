package tui

import (
	"fmt"
	"strings"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// ManifestMarkdown summarizes a finished pass as markdown for NewRenderer.
func ManifestMarkdown(m domain.Manifest, cleaned []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", m.Output)

	regime := "normal"
	if m.Compressed {
		regime = "compressed"
	}

	sb.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Menu | `%s` |\n", m.MenuID)
	if m.Target != "" {
		fmt.Fprintf(&sb, "| Target | `%s` |\n", m.Target)
	}
	fmt.Fprintf(&sb, "| Pass | `%s` |\n", m.PassID)
	fmt.Fprintf(&sb, "| Generated | %s |\n", m.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "| Layout | %s |\n", regime)
	fmt.Fprintf(&sb, "| Modes | %d (default index %d) |\n", m.ModeCount, m.DefaultModeIndex)
	fmt.Fprintf(&sb, "| Emotes | %d |\n", m.EmoteCount)
	fmt.Fprintf(&sb, "| States | %d |\n", m.StateCount)
	fmt.Fprintf(&sb, "| Transitions | %d |\n", m.TransitionCount)

	if len(m.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range m.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}
	if len(cleaned) > 0 {
		sb.WriteString("\n## Removed outputs\n\n")
		for _, c := range cleaned {
			fmt.Fprintf(&sb, "- `%s`\n", c)
		}
	}
	return sb.String()
}
