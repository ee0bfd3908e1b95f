// Package grid evaluates a mode's branches over every (left, right) gesture pair.
package grid

import (
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/emote"
)

// Cell is one gesture pair and the branch it resolves to.
type Cell struct {
	Left      domain.HandGesture
	Right     domain.HandGesture
	Preselect int
	Branch    emote.BranchRef
}

// Grid is the total decision table of a mode, row-major by left gesture.
type Grid struct {
	Gestures []domain.HandGesture
	Cells    []Cell
}

// Build evaluates every pair. A nil gesture list uses domain.AllGestures.
func Build(mode *domain.Mode, gestures []domain.HandGesture) Grid {
	if gestures == nil {
		gestures = domain.AllGestures
	}
	n := len(gestures)
	g := Grid{Gestures: gestures, Cells: make([]Cell, 0, n*n)}
	for li, left := range gestures {
		for ri, right := range gestures {
			g.Cells = append(g.Cells, Cell{
				Left:      left,
				Right:     right,
				Preselect: li*n + ri,
				Branch:    emote.BranchAt(mode.GestureCell(left, right)),
			})
		}
	}
	return g
}

// Preselect is the code of a pair within the given gesture count, using the
// default ordering. It returns -1 for gestures outside the ordering.
func Preselect(left, right domain.HandGesture, n int) int {
	li, ri := indexOf(domain.AllGestures, left), indexOf(domain.AllGestures, right)
	if li < 0 || ri < 0 || li >= n || ri >= n {
		return -1
	}
	return li*n + ri
}

// Preselect is the code of a pair within this grid's ordering, or -1.
func (g Grid) Preselect(left, right domain.HandGesture) int {
	li, ri := indexOf(g.Gestures, left), indexOf(g.Gestures, right)
	if li < 0 || ri < 0 {
		return -1
	}
	return li*len(g.Gestures) + ri
}

// Lookup returns the cell for a pair.
func (g Grid) Lookup(left, right domain.HandGesture) (Cell, bool) {
	code := g.Preselect(left, right)
	if code < 0 || code >= len(g.Cells) {
		return Cell{}, false
	}
	return g.Cells[code], true
}

// ByPreselect is the dense code → branch map.
func (g Grid) ByPreselect() map[int]emote.BranchRef {
	out := make(map[int]emote.BranchRef, len(g.Cells))
	for _, c := range g.Cells {
		out[c.Preselect] = c.Branch
	}
	return out
}

func indexOf(gestures []domain.HandGesture, g domain.HandGesture) int {
	for i, x := range gestures {
		if x == g {
			return i
		}
	}
	return -1
}
