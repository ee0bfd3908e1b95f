package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/ports"
)

// Template implements ports.TemplateSource by deep-copying a prototype controller.
type Template struct {
	raw []byte
}

// NewTemplate snapshots the prototype. Later changes to it are not seen.
func NewTemplate(prototype *domain.Controller) (*Template, error) {
	raw, err := json.Marshal(prototype)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot template: %w", err)
	}
	return &Template{raw: raw}, nil
}

// Template returns a fresh copy of the prototype.
func (t *Template) Template(context.Context) (ports.ControllerSink, error) {
	var c domain.Controller
	if err := json.Unmarshal(t.raw, &c); err != nil {
		return nil, fmt.Errorf("failed to copy template: %w", err)
	}
	return &c, nil
}

// DefaultTemplate is a controller carrying every layer the generator writes into,
// with the modifier layers' root states in place.
func DefaultTemplate() *domain.Controller {
	modifier := func(layer, state string) *domain.Layer {
		return &domain.Layer{Name: layer, Weight: 1, StateMachine: &domain.StateMachine{
			Name:   layer,
			States: []*domain.State{{Name: state}},
		}}
	}
	empty := func(layer string) *domain.Layer {
		return &domain.Layer{Name: layer, Weight: 1, StateMachine: &domain.StateMachine{Name: layer}}
	}
	return &domain.Controller{
		Name: "FES Template",
		Layers: []*domain.Layer{
			empty(domain.LayerSetControl),
			empty(domain.LayerDefaultFace),
			empty(domain.LayerEmotePlayer),
			modifier(domain.LayerBlink, domain.StateBlinkEnabled),
			modifier(domain.LayerMouthMorphCanceler, domain.StateMouthMorphCancelerOn),
		},
	}
}
