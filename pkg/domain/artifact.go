package domain

import "time"

// Artifact keys written into every output namespace.
const (
	ArtifactController = "controller.json"
	ArtifactMenu       = "menu.json"
	ArtifactParameters = "parameters.json"
	ArtifactManifest   = "manifest.json"
)

// ArtifactRef points at an artifact inside an output namespace.
type ArtifactRef struct {
	Output string `json:"output"`
	Key    string `json:"key"`
}

// Manifest summarizes one generation pass.
type Manifest struct {
	PassID           string    `json:"pass_id"`
	Output           string    `json:"output"`
	MenuID           string    `json:"menu_id"`
	Target           string    `json:"target"`
	GeneratedAt      time.Time `json:"generated_at"`
	Compressed       bool      `json:"compressed"`
	ModeCount        int       `json:"mode_count"`
	EmoteCount       int       `json:"emote_count"`
	DefaultModeIndex int       `json:"default_mode_index"`
	StateCount       int       `json:"state_count"`
	TransitionCount  int       `json:"transition_count"`
	Warnings         []string  `json:"warnings,omitempty"`
}

// ThumbnailDir is the artifact key prefix of generated menu icons.
const ThumbnailDir = "thumbnails/"

// Thumbnail is an encoded menu icon stored next to the generated artifacts.
type Thumbnail struct {
	Key         string // file name below ThumbnailDir
	ContentType string
	Data        []byte
}

// ArtifactKey is the key the thumbnail is stored under.
func (t *Thumbnail) ArtifactKey() string { return ThumbnailDir + t.Key }

// Icon is the menu icon referencing the stored thumbnail.
func (t *Thumbnail) Icon() Icon { return Icon(t.ArtifactKey()) }
