package validator

import (
	"fmt"
	"strings"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// Issue is one problem found in a controller.
type Issue struct {
	Layer   string
	Path    []string // machine path, plus the state name for state issues
	Message string
}

func (i Issue) String() string {
	if len(i.Path) == 0 {
		return fmt.Sprintf("[%s] %s", i.Layer, i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Layer, strings.Join(i.Path, " > "), i.Message)
}

// ValidateController checks for dangling transitions, unreachable states and
// guards on undeclared parameters. It returns nil when nothing is wrong.
func ValidateController(ctrl *domain.Controller) error {
	issues := Validate(ctrl)
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(issues), strings.Join(lines, "\n- "))
}

// Validate lists every issue found, layer by layer.
func Validate(ctrl *domain.Controller) []Issue {
	declared := make(map[string]bool, len(ctrl.Parameters))
	for _, p := range ctrl.Parameters {
		declared[p.Name] = true
	}

	var issues []Issue
	for _, layer := range ctrl.Layers {
		if layer.StateMachine == nil {
			issues = append(issues, Issue{Layer: layer.Name, Message: "layer has no state machine"})
			continue
		}
		issues = append(issues, validateLayer(layer, declared)...)
	}
	return issues
}

func key(path []string) string { return strings.Join(path, "\x00") }

func validateLayer(layer *domain.Layer, declared map[string]bool) []Issue {
	root := layer.StateMachine
	var issues []Issue
	report := func(path []string, format string, args ...any) {
		issues = append(issues, Issue{Layer: layer.Name, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	states := make(map[string]bool)
	machines := make(map[string]bool)
	var all []*domain.Transition
	root.Walk(func(path []string, sm *domain.StateMachine) {
		machines[key(path)] = true
		for _, s := range sm.States {
			states[key(append(append([]string{}, path...), s.Name))] = true
			all = append(all, s.Transitions...)
		}
		all = append(all, sm.EntryTransitions...)
		all = append(all, sm.AnyStateTransitions...)
		all = append(all, sm.MachineTransitions...)
	})

	reached := make(map[string]bool)
	for _, t := range all {
		dst := t.Destination
		switch dst.Kind {
		case domain.EndpointState:
			if !states[key(dst.Path)] {
				report(dst.Path, "transition points at a missing state")
				continue
			}
			reached[key(dst.Path)] = true
		case domain.EndpointMachine, domain.EndpointExit:
			if !machines[key(dst.Path)] {
				report(dst.Path, "transition points at a missing machine")
			}
		default:
			report(dst.Path, "transition cannot end at a %s node", dst.Kind)
		}

		for _, alt := range t.Conditions {
			for _, g := range alt {
				if !declared[g.Parameter] {
					report(t.Source.Path, "guard reads undeclared parameter %q", g.Parameter)
				}
			}
		}
	}

	root.Walk(func(path []string, sm *domain.StateMachine) {
		for i, s := range sm.States {
			statePath := append(append([]string{}, path...), s.Name)
			// A machine without entry transitions starts in its first state.
			isDefault := i == 0 && len(sm.EntryTransitions) == 0
			if !reached[key(statePath)] && !isDefault {
				report(statePath, "state is unreachable")
			}
			for _, d := range s.Drivers {
				if !declared[d.Parameter] {
					report(statePath, "driver sets undeclared parameter %q", d.Parameter)
				}
			}
		}
	})
	return issues
}
