package ports

import "github.com/suzuryg/facial-expression-switcher/pkg/domain"

// ControllerSink is the controller copy being generated.
// *domain.Controller implements it.
type ControllerSink interface {
	HasLayer(name string) bool
	// ReplaceLayer swaps the content of an existing template layer.
	// A missing layer yields a *domain.TemplateMissingError.
	ReplaceLayer(layer *domain.Layer) error
	// SetStateMotion replaces the motion of a root state of an existing layer.
	SetStateMotion(layer, state string, motion *domain.Motion) error
	AddParameter(name string, typ domain.ParameterType)
}

// MenuSink is a node of the selector menu tree under construction.
// *domain.ExMenu implements it.
type MenuSink interface {
	AddToggle(name string, icon domain.Icon, parameter string, value float64) *domain.Control
	AddSubMenu(name string, icon domain.Icon) (*domain.ExMenu, *domain.Control)
}

var (
	_ ControllerSink = (*domain.Controller)(nil)
	_ MenuSink       = (*domain.ExMenu)(nil)
)
