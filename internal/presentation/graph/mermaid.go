package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// GraphOverlay marks states to highlight, given by their full path from the layer root.
type GraphOverlay struct {
	Highlighted [][]string
}

// GenerateMermaid produces a Mermaid flowchart of one layer. Sub-machines become
// subgraphs and transitions are labelled with their guards. It applies semantic styling:
// - Entry / Exit: ((Circle))
// - Any State: {{Hexagon}}
// - Blend motion: [[Subroutine]]
// - No motion: [/Parallelogram/]
// - Clip: [Rectangle]
func GenerateMermaid(layer *domain.Layer, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if layer == nil || layer.StateMachine == nil {
		return sb.String()
	}

	ids := newIDs()
	used := usedPseudoNodes(layer.StateMachine)
	writeMachine(&sb, ids, used, nil, layer.StateMachine, 1)

	layer.StateMachine.Walk(func(_ []string, sm *domain.StateMachine) {
		for _, t := range sm.EntryTransitions {
			writeEdge(&sb, ids, t)
		}
		for _, t := range sm.AnyStateTransitions {
			writeEdge(&sb, ids, t)
		}
		for _, s := range sm.States {
			for _, t := range s.Transitions {
				writeEdge(&sb, ids, t)
			}
		}
		for _, t := range sm.MachineTransitions {
			writeEdge(&sb, ids, t)
		}
	})

	if overlay != nil && len(overlay.Highlighted) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef highlighted fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		seen := make(map[string]bool)
		for _, path := range overlay.Highlighted {
			id := ids.get(domain.EndpointState, path)
			if !seen[id] {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s highlighted;\n", id))
			}
		}
	}

	return sb.String()
}

// ids hands out Mermaid-safe node identifiers. Node names may contain any character,
// so they are only ever used as labels.
type ids struct {
	byKey map[string]string
}

func newIDs() *ids { return &ids{byKey: make(map[string]string)} }

func (i *ids) get(kind domain.EndpointKind, path []string) string {
	k := string(kind) + "\x00" + strings.Join(path, "\x00")
	if id, ok := i.byKey[k]; ok {
		return id
	}
	id := "n" + strconv.Itoa(len(i.byKey))
	i.byKey[k] = id
	return id
}

func pseudoKey(kind domain.EndpointKind, path []string) string {
	return string(kind) + "\x00" + strings.Join(path, "\x00")
}

func usedPseudoNodes(root *domain.StateMachine) map[string]bool {
	used := make(map[string]bool)
	root.Walk(func(_ []string, sm *domain.StateMachine) {
		mark := func(ts []*domain.Transition) {
			for _, t := range ts {
				for _, e := range []domain.Endpoint{t.Source, t.Destination} {
					switch e.Kind {
					case domain.EndpointEntry, domain.EndpointExit, domain.EndpointAny:
						used[pseudoKey(e.Kind, e.Path)] = true
					}
				}
			}
		}
		mark(sm.EntryTransitions)
		mark(sm.AnyStateTransitions)
		mark(sm.MachineTransitions)
		for _, s := range sm.States {
			mark(s.Transitions)
		}
	})
	return used
}

func writeMachine(sb *strings.Builder, ids *ids, used map[string]bool, path []string, sm *domain.StateMachine, depth int) {
	indent := strings.Repeat("    ", depth)
	pseudo := func(kind domain.EndpointKind, shape string) {
		if used[pseudoKey(kind, path)] {
			sb.WriteString(fmt.Sprintf(shape+"\n", indent, ids.get(kind, path), kind))
		}
	}

	pseudo(domain.EndpointEntry, "%s%s((\"%s\"))")
	pseudo(domain.EndpointAny, "%s%s{{\"%s\"}}")
	for _, s := range sm.States {
		statePath := append(append([]string{}, path...), s.Name)
		opener, closer := "[", "]"
		switch {
		case s.Motion == nil:
			opener, closer = "[/", "/]"
		case s.Motion.Kind != domain.MotionClip:
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("%s%s%s\"%s\"%s\n", indent, ids.get(domain.EndpointState, statePath), opener, escape(s.Name), closer))
	}
	for _, child := range sm.Machines {
		childPath := append(append([]string{}, path...), child.Name)
		sb.WriteString(fmt.Sprintf("%ssubgraph %s[\"%s\"]\n", indent, ids.get(domain.EndpointMachine, childPath), escape(child.Name)))
		writeMachine(sb, ids, used, childPath, child, depth+1)
		sb.WriteString(indent + "end\n")
	}
	pseudo(domain.EndpointExit, "%s%s((\"%s\"))")
}

func writeEdge(sb *strings.Builder, ids *ids, t *domain.Transition) {
	from := ids.get(t.Source.Kind, t.Source.Path)
	to := ids.get(t.Destination.Kind, t.Destination.Path)
	label := FormatConditions(t.Conditions)
	if label == "" {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
		return
	}
	sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", from, escape(label), to))
}

// FormatConditions renders a disjunction of guard conjunctions, e.g. "AFK or !Dummy and Voice < 0.01".
func FormatConditions(alternatives [][]domain.Guard) string {
	parts := make([]string, 0, len(alternatives))
	for _, alt := range alternatives {
		guards := make([]string, len(alt))
		for i, g := range alt {
			guards[i] = FormatGuard(g)
		}
		parts = append(parts, strings.Join(guards, " and "))
	}
	return strings.Join(parts, " or ")
}

// FormatGuard renders a single comparison.
func FormatGuard(g domain.Guard) string {
	value := strconv.FormatFloat(g.Threshold, 'g', -1, 64)
	switch g.Operator {
	case domain.OpEquals:
		return g.Parameter + " == " + value
	case domain.OpNotEqual:
		return g.Parameter + " != " + value
	case domain.OpGreater:
		return g.Parameter + " > " + value
	case domain.OpLess:
		return g.Parameter + " < " + value
	case domain.OpIfNot:
		return "!" + g.Parameter
	}
	return g.Parameter
}

// escape replaces double quotes, which would end a Mermaid label.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
