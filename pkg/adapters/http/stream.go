package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// Message is one server-sent event.
type Message struct {
	Type domain.EventType
	Data string
}

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan Message]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates a manager with no subscribers.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan Message]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a subscriber. The returned function unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe() (<-chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Broadcast sends msg to every subscriber without blocking.
func (sm *StreamManager) Broadcast(msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.logger.Debug("StreamManager: Broadcasting", "type", msg.Type, "payload_size", len(msg.Data))
	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "type", msg.Type)
		}
	}
}

// passPayload is PassEvent with its error flattened, since errors do not marshal.
type passPayload struct {
	*domain.PassEvent
	Error string `json:"error,omitempty"`
}

// Hooks returns lifecycle hooks that broadcast generator events.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	send := func(t domain.EventType, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			sm.logger.Error("SSE: Event encode failed", "type", t, "err", err)
			return
		}
		sm.Broadcast(Message{Type: t, Data: string(data)})
	}
	return domain.LifecycleHooks{
		OnLayerEmitted: func(_ context.Context, e *domain.LayerEvent) { send(domain.EventLayerEmitted, e) },
		OnPassFinished: func(_ context.Context, e *domain.PassEvent) {
			p := passPayload{PassEvent: e}
			if e.Err != nil {
				p.Error = e.Err.Error()
			}
			send(domain.EventPassFinished, p)
		},
		OnCleaned: func(_ context.Context, e *domain.CleanupEvent) { send(domain.EventCleaned, e) },
	}
}

// SubscribeEvents handles GET /events?type=a,b (SSE). Without type every event is sent.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	var filter map[domain.EventType]bool
	if raw := r.URL.Query().Get("type"); raw != "" {
		filter = make(map[domain.EventType]bool)
		for _, t := range strings.Split(raw, ",") {
			filter[domain.EventType(strings.TrimSpace(t))] = true
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if filter != nil && !filter[msg.Type] {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Type, msg.Data)
			flusher.Flush()
		}
	}
}
