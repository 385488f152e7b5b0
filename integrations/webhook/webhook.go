// Package webhook forwards engine events to external HTTP endpoints so
// community sites can react to level-ups and redemptions.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"greenkit/core"
)

// Sink posts domain events to configured HTTP endpoints.
// It is synchronous for determinism; attach it to an async bus if delivery
// latency matters.
type Sink struct {
	client    *http.Client
	endpoints []string
	secret    string
}

// Option configures a Sink.
type Option func(*Sink)

// WithClient overrides the HTTP client (defaults to 2s timeout).
func WithClient(c *http.Client) Option {
	return func(s *Sink) {
		if c != nil {
			s.client = c
		}
	}
}

// WithSecret sets a shared secret sent as X-Greenkit-Secret on every post.
func WithSecret(secret string) Option {
	return func(s *Sink) { s.secret = secret }
}

// New creates a webhook sink.
func New(endpoints []string, opts ...Option) *Sink {
	s := &Sink{
		client: &http.Client{Timeout: 2 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.endpoints = append([]string{}, endpoints...)
	return s
}

// Subscriber is the slice of the event bus the sink needs to attach itself.
type Subscriber interface {
	Subscribe(typ core.EventType, handler func(context.Context, core.Event)) func()
}

// Attach subscribes the sink to the given event types (all types when none
// are named) and returns a detach func.
func (s *Sink) Attach(bus Subscriber, types ...core.EventType) func() {
	if len(types) == 0 {
		types = []core.EventType{
			core.EventXPAdded,
			core.EventPointsAdded,
			core.EventPointsSpent,
			core.EventLevelUp,
			core.EventRewardUnlocked,
		}
	}
	unsubs := make([]func(), 0, len(types))
	for _, typ := range types {
		unsubs = append(unsubs, bus.Subscribe(typ, func(_ context.Context, e core.Event) {
			s.OnEvent(e)
		}))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// OnEvent posts the event JSON to all endpoints. Delivery errors are dropped;
// webhooks are best effort and must not stall the engine.
func (s *Sink) OnEvent(e core.Event) {
	if len(s.endpoints) == 0 {
		return
	}
	body, err := json.Marshal(e)
	if err != nil {
		return
	}
	for _, ep := range s.endpoints {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, ep, bytes.NewReader(body))
		if err != nil {
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Greenkit-Event", string(e.Type))
		if s.secret != "" {
			req.Header.Set("X-Greenkit-Secret", s.secret)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()
	}
}
