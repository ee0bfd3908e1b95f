package ports

import (
	"context"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// MenuSource defines how the generator retrieves the expression configuration.
// This allows the storage layer (files, Loam, memory) to be decoupled.
type MenuSource interface {
	// LoadMenu returns the configuration with the given ID.
	// Sources holding a single document may ignore the ID.
	LoadMenu(ctx context.Context, id string) (*domain.Menu, error)

	// ListMenus returns the IDs of all configurations the source knows about.
	ListMenus(ctx context.Context) ([]string, error)
}

// AnimationCatalog resolves animation references to host clips.
type AnimationCatalog interface {
	// Lookup returns the animation for a reference. ok is false when the
	// reference points at nothing the host knows about.
	Lookup(ref domain.AnimationRef) (info domain.AnimationInfo, ok bool)
}

// ThumbnailProvider produces menu icons for animations.
type ThumbnailProvider interface {
	// Thumbnail renders an icon for the animation. A nil thumbnail means none can be made
	// and the menu keeps its generic icon.
	Thumbnail(ctx context.Context, anim domain.AnimationInfo) (*domain.Thumbnail, error)
}

// TemplateSource supplies a fresh copy of the controller template for every pass.
type TemplateSource interface {
	Template(ctx context.Context) (ControllerSink, error)
}
