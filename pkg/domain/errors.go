package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks structurally invalid input configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrTemplateMissing marks a required template layer or state absent from the target controller.
	ErrTemplateMissing = errors.New("template missing")

	// ErrResource marks a failure to create or copy an output artifact.
	ErrResource = errors.New("resource error")

	// ErrCleanup marks a failure to delete a stale output.
	ErrCleanup = errors.New("cleanup error")

	// ErrOutputNotFound is returned by output stores for unknown namespaces or artifacts.
	ErrOutputNotFound = errors.New("output not found")

	// ErrOutputExists is returned when creating a namespace that already exists.
	ErrOutputExists = errors.New("output already exists")

	// ErrMenuNotFound is returned by menu sources for unknown IDs.
	ErrMenuNotFound = errors.New("menu not found")
)

// ConfigurationError describes a problem in the expression configuration.
type ConfigurationError struct {
	Path   string // menu path or node ID the problem was found at
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("configuration: %s", e.Reason)
	}
	return fmt.Sprintf("configuration %q: %s", e.Path, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// TemplateMissingError names the template layer (and optionally state) that was not found.
type TemplateMissingError struct {
	Layer string
	State string
}

func (e *TemplateMissingError) Error() string {
	if e.State != "" {
		return fmt.Sprintf("state %q was not found in layer %q of the template", e.State, e.Layer)
	}
	return fmt.Sprintf("the layer %q was not found in the template", e.Layer)
}

func (e *TemplateMissingError) Unwrap() error { return ErrTemplateMissing }

// ResourceError wraps a failed output write or allocation.
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource %s: %v", e.Op, e.Err)
}

func (e *ResourceError) Unwrap() []error { return []error{ErrResource, e.Err} }

// CleanupError wraps a failed deletion of a stale output.
type CleanupError struct {
	Output string
	Err    error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("failed to clean output %q: %v", e.Output, e.Err)
}

func (e *CleanupError) Unwrap() []error { return []error{ErrCleanup, e.Err} }
