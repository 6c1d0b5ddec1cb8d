package stream

import (
	"context"

	"kb-assistant-be/pkg/retrieval"
)

// FailureReply is the user-facing message for an upstream transport failure.
const FailureReply = "抱歉，服务暂时不可用，请稍后重试。"

type EventType string

const (
	EventDelta EventType = "delta"
	EventDone  EventType = "done"
	EventError EventType = "error"
)

// Event is one element of the ordered stream a subscriber receives: zero or
// more deltas followed by exactly one terminal done or error event.
type Event struct {
	Type      EventType              `json:"type"`
	Content   string                 `json:"content,omitempty"`
	Source    *retrieval.Attribution `json:"source,omitempty"`
	MessageID string                 `json:"messageId,omitempty"`
}

// Sink receives relayed events. A Send error means the subscriber is gone;
// the relay stops forwarding but keeps consuming upstream so the finalized
// message reflects everything that was generated.
type Sink interface {
	Send(Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event) error

func (f SinkFunc) Send(ev Event) error { return f(ev) }

// Upstream drives one generation stream, invoking onDelta for every text
// fragment in arrival order, and returns the accumulated full text. A non-nil
// error is a transport failure for the whole turn.
type Upstream func(ctx context.Context, onDelta func(string)) (string, error)

// Finalizer persists the finished assistant message and returns its id.
type Finalizer func(content string, source *retrieval.Attribution) (string, error)

// Relay forwards an upstream token stream to a subscriber and finalizes the
// persisted message once the stream terminates. One Relay serves one chat
// turn; it never retries.
type Relay struct {
	kbs      []KnowledgeBaseRef
	fallback *retrieval.Attribution
}

func NewRelay(kbs []KnowledgeBaseRef, fallback *retrieval.Attribution) *Relay {
	return &Relay{kbs: kbs, fallback: fallback}
}

// Run consumes the upstream stream to completion. Deltas are mirrored to the
// sink in arrival order. On completion the accumulated text is scanned for a
// source marker: a marker overrides the retrieval attribution and every
// occurrence is stripped from the visible text. On transport failure the
// generic failure reply is persisted and a single error event emitted.
func (r *Relay) Run(ctx context.Context, upstream Upstream, sink Sink, finalize Finalizer) error {
	sinkGone := false
	forward := func(ev Event) {
		if sinkGone {
			return
		}
		if err := sink.Send(ev); err != nil {
			sinkGone = true
		}
	}

	full, err := upstream(ctx, func(delta string) {
		forward(Event{Type: EventDelta, Content: delta})
	})
	if err != nil {
		if _, persistErr := finalize(FailureReply, nil); persistErr != nil {
			forward(Event{Type: EventError, Content: FailureReply})
			return persistErr
		}
		forward(Event{Type: EventError, Content: FailureReply})
		return err
	}

	visible := full
	source := r.fallback
	if label, ok := ExtractMarker(full); ok {
		resolved := ResolveSource(label, r.kbs)
		source = &resolved
		visible = StripMarkers(full)
	}

	messageID, err := finalize(visible, source)
	if err != nil {
		forward(Event{Type: EventError, Content: FailureReply})
		return err
	}

	forward(Event{Type: EventDone, Source: source, MessageID: messageID})
	return nil
}
