package domain

import (
	"context"
	"time"
)

// EventType defines the category of a generation event.
type EventType string

const (
	EventLayerEmitted EventType = "layer_emitted"
	EventPassFinished EventType = "pass_finished"
	EventCleaned      EventType = "output_cleaned"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	PassID    string    `json:"pass_id"`
}

// LayerEvent is emitted after a layer has been written into the controller.
type LayerEvent struct {
	EventBase
	Layer       string `json:"layer"`
	States      int    `json:"states"`
	Transitions int    `json:"transitions"`
}

// PassEvent is emitted once per generation pass, successful or not.
type PassEvent struct {
	EventBase
	Output     string        `json:"output"`
	Duration   time.Duration `json:"duration"`
	Compressed bool          `json:"compressed"`
	Warnings   int           `json:"warnings"`
	Err        error         `json:"-"`
}

// CleanupEvent is emitted for every stale output deleted.
type CleanupEvent struct {
	EventBase
	Output string `json:"output"`
}

// LifecycleHooks defines callbacks for generator observability.
type LifecycleHooks struct {
	OnLayerEmitted func(context.Context, *LayerEvent)
	OnPassFinished func(context.Context, *PassEvent)
	OnCleaned      func(context.Context, *CleanupEvent)
}
