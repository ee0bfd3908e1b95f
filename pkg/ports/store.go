package ports

import (
	"context"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// OutputStore persists generated artifacts in per-pass namespaces ("outputs").
type OutputStore interface {
	// Create allocates an empty namespace.
	// Returns domain.ErrOutputExists if the name is taken.
	Create(ctx context.Context, name string) error

	// Put writes an artifact into an existing namespace, replacing any previous value.
	// Returns domain.ErrOutputNotFound if the namespace does not exist.
	Put(ctx context.Context, name, key string, data []byte) error

	// Get reads an artifact.
	// Returns domain.ErrOutputNotFound if the namespace or artifact does not exist.
	Get(ctx context.Context, name, key string) ([]byte, error)

	// List returns every namespace name in ascending order.
	List(ctx context.Context) ([]string, error)

	// Delete removes a namespace and its artifacts.
	// Returns domain.ErrOutputNotFound if the namespace does not exist.
	Delete(ctx context.Context, name string) error
}

// Installation records which generated controllers are attached to host targets.
type Installation interface {
	// Installed returns the controller reference per target.
	Installed(ctx context.Context) (map[string]domain.ArtifactRef, error)

	// Install attaches a controller to a target, replacing the previous one.
	Install(ctx context.Context, target string, ref domain.ArtifactRef) error
}
