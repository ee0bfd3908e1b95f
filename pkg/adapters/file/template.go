package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/ports"
)

// Template implements ports.TemplateSource by reading a controller JSON file.
// The file is re-read on every call, so every pass gets an untouched copy.
type Template struct {
	Path string
}

// NewTemplate creates a template source for path.
func NewTemplate(path string) *Template {
	return &Template{Path: path}
}

// Template decodes the template controller.
func (t *Template) Template(context.Context) (ports.ControllerSink, error) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	var c domain.Controller
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode template %s: %w", t.Path, err)
	}
	return &c, nil
}
