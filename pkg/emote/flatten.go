package emote

import (
	"strings"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// ModeEntry is a mode in flattened order with its allocated base index.
// Entries are immutable for the duration of a pass.
type ModeEntry struct {
	Mode *domain.Mode
	// PathLabel is the slash-joined group display names followed by the mode name.
	PathLabel   string
	DisplayName string
	// Position is the mode's flattened position, also the mode selector value.
	Position       int
	BaseEmoteIndex int
}

// BranchCount is the number of branches of the entry's mode.
func (e ModeEntry) BranchCount() int { return len(e.Mode.Branches) }

// Namer derives the display name of a mode.
type Namer func(*domain.Mode) string

// Flatten walks the menu depth-first in declared order.
// Duplicate node IDs are rejected since the allocation would be ambiguous.
func Flatten(menu *domain.Menu, namer Namer) ([]ModeEntry, error) {
	if namer == nil {
		namer = func(m *domain.Mode) string { return m.DisplayName }
	}
	f := &flattener{namer: namer, seen: make(map[string]bool)}
	if menu != nil {
		if err := f.walk(menu.Items, nil); err != nil {
			return nil, err
		}
	}
	return f.entries, nil
}

type flattener struct {
	namer   Namer
	seen    map[string]bool
	entries []ModeEntry
	next    int
}

func (f *flattener) walk(items []domain.MenuItem, path []string) error {
	for _, item := range items {
		id := item.ID()
		if id != "" {
			if f.seen[id] {
				return &domain.ConfigurationError{Path: id, Reason: "duplicate node identifier"}
			}
			f.seen[id] = true
		}

		switch {
		case item.Mode != nil:
			name := f.namer(item.Mode)
			label := strings.Join(append(append([]string{}, path...), name), "/")
			f.entries = append(f.entries, ModeEntry{
				Mode:           item.Mode,
				PathLabel:      label,
				DisplayName:    name,
				Position:       len(f.entries),
				BaseEmoteIndex: f.next,
			})
			f.next += 1 + len(item.Mode.Branches)
		case item.Group != nil:
			if err := f.walk(item.Group.Items, append(path, item.Group.DisplayName)); err != nil {
				return err
			}
		default:
			return &domain.ConfigurationError{Path: strings.Join(path, "/"), Reason: "menu item carries neither a group nor a mode"}
		}
	}
	return nil
}

// DefaultModeIndex returns the position of the mode with the given ID, or 0.
func DefaultModeIndex(entries []ModeEntry, modeID string) int {
	if modeID == "" {
		return 0
	}
	for _, e := range entries {
		if e.Mode.ID == modeID {
			return e.Position
		}
	}
	return 0
}
