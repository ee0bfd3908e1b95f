package emote

// Regime is the emote addressing scheme of a pass.
type Regime int

const (
	Normal Regime = iota
	Compressed
)

func (r Regime) String() string {
	if r == Compressed {
		return "compressed"
	}
	return "normal"
}

// BranchRef is either NoBranch (the mode body) or a branch offset.
type BranchRef struct {
	offset int
	valid  bool
}

// NoBranch addresses the mode body.
var NoBranch = BranchRef{}

// BranchAt addresses the branch at the given declaration offset.
// Negative offsets are treated as NoBranch.
func BranchAt(offset int) BranchRef {
	if offset < 0 {
		return NoBranch
	}
	return BranchRef{offset: offset, valid: true}
}

// Offset returns the branch offset and whether the ref addresses a branch.
func (b BranchRef) Offset() (int, bool) { return b.offset, b.valid }

// IsBody reports whether the ref addresses the mode body.
func (b BranchRef) IsBody() bool { return !b.valid }

// TotalEmoteCount is the number of addressable emotes in normal addressing.
func TotalEmoteCount(entries []ModeEntry) int {
	if len(entries) == 0 {
		return 0
	}
	last := entries[len(entries)-1]
	return last.BaseEmoteIndex + last.BranchCount() + 1
}

// DecideRegime picks Compressed when the total exceeds the budget or when forced.
func DecideRegime(total, budget int, force bool) Regime {
	if force || total > budget {
		return Compressed
	}
	return Normal
}

// Resolve is the emote index of a mode body or branch under the given regime.
func Resolve(entry ModeEntry, branch BranchRef, regime Regime) int {
	rel := 0
	if offset, ok := branch.Offset(); ok {
		rel = offset + 1
	}
	if regime == Compressed {
		return rel
	}
	return entry.BaseEmoteIndex + rel
}

// ModeSelectorValue is the mode selector parameter value for an entry.
func ModeSelectorValue(entry ModeEntry) int { return entry.Position }

// Capacity is how many distinct emotes the regime can address for these entries.
// Normal: the total count. Compressed: modes times the widest mode-relative range.
func Capacity(entries []ModeEntry, regime Regime) int {
	if regime == Normal {
		return TotalEmoteCount(entries)
	}
	widest := 0
	for _, e := range entries {
		if n := e.BranchCount() + 1; n > widest {
			widest = n
		}
	}
	return len(entries) * widest
}
