package dsl

import (
	"fmt"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// Builder manages the construction of a single layer.
type Builder struct {
	layer *domain.Layer
	root  *MachineBuilder
}

// New creates a layer builder with an empty root machine named after the layer.
func New(layerName string) *Builder {
	sm := &domain.StateMachine{Name: layerName}
	return &Builder{
		layer: &domain.Layer{Name: layerName, StateMachine: sm},
		root:  &MachineBuilder{machine: sm, names: make(map[string]int)},
	}
}

// Weight sets the layer weight.
func (b *Builder) Weight(w float64) *Builder {
	b.layer.Weight = w
	return b
}

// Root returns the root machine of the layer.
func (b *Builder) Root() *MachineBuilder { return b.root }

// Build returns the layer. The builder must not be used afterwards.
func (b *Builder) Build() *domain.Layer { return b.layer }

// Target is anything a transition can point at.
type Target interface {
	endpoint() domain.Endpoint
}

// Guard helpers.

// Eq is true while the int parameter equals value.
func Eq(param string, value int) domain.Guard {
	return domain.Guard{Parameter: param, Operator: domain.OpEquals, Threshold: float64(value)}
}

// Ne is true while the int parameter differs from value.
func Ne(param string, value int) domain.Guard {
	return domain.Guard{Parameter: param, Operator: domain.OpNotEqual, Threshold: float64(value)}
}

// Gt is true while the float parameter is above threshold.
func Gt(param string, threshold float64) domain.Guard {
	return domain.Guard{Parameter: param, Operator: domain.OpGreater, Threshold: threshold}
}

// Lt is true while the float parameter is below threshold.
func Lt(param string, threshold float64) domain.Guard {
	return domain.Guard{Parameter: param, Operator: domain.OpLess, Threshold: threshold}
}

// True is true while the bool parameter is set.
func True(param string) domain.Guard {
	return domain.Guard{Parameter: param, Operator: domain.OpIf}
}

// False is true while the bool parameter is cleared.
func False(param string) domain.Guard {
	return domain.Guard{Parameter: param, Operator: domain.OpIfNot}
}

func uniqueName(names map[string]int, name string) string {
	n, ok := names[name]
	names[name] = n + 1
	if !ok {
		return name
	}
	candidate := fmt.Sprintf("%s %d", name, n)
	for {
		if _, taken := names[candidate]; !taken {
			names[candidate] = 1
			return candidate
		}
		n++
		names[name] = n + 1
		candidate = fmt.Sprintf("%s %d", name, n)
	}
}

func childPath(parent []string, name string) []string {
	return append(append(make([]string, 0, len(parent)+1), parent...), name)
}
