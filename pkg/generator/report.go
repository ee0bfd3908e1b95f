package generator

import (
	"log/slog"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// Report collects recoverable configuration problems found during a pass.
type Report struct {
	Warnings []string `json:"warnings,omitempty"`
}

func (r *Report) warn(logger *slog.Logger, err *domain.ConfigurationError) {
	r.Warnings = append(r.Warnings, err.Error())
	logger.Warn("Recoverable configuration problem", "path", err.Path, "reason", err.Reason)
}
