// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestBus(t *testing.T) *ChannelBus {
	t.Helper()
	bus := NewChannelBus(DefaultConfig(), nil)
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func receiveEvent(t *testing.T, ch <-chan *GraphEvent) *GraphEvent {
	t.Helper()
	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("event channel closed unexpectedly")
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return nil
}

func TestChannelBusPublishSubscribe(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, "test")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	want := NewGraphEvent(TypeUserAdded, "Alice")
	if err := bus.Publish(ctx, want); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	got := receiveEvent(t, ch)
	if got.EventID != want.EventID {
		t.Errorf("received EventID = %q, want %q", got.EventID, want.EventID)
	}
	if got.Type != TypeUserAdded || got.VertexID != "Alice" {
		t.Errorf("received event = (%q, %q), want (%q, Alice)", got.Type, got.VertexID, TypeUserAdded)
	}
}

func TestChannelBusFanOut(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	history, err := bus.Subscribe(ctx, "history")
	if err != nil {
		t.Fatalf("Subscribe(history) error = %v", err)
	}
	hub, err := bus.Subscribe(ctx, "websocket")
	if err != nil {
		t.Fatalf("Subscribe(websocket) error = %v", err)
	}

	want := NewGraphEvent(TypeEventAdded, "ComedyClash")
	want.Categories = []string{"comedy", "theatre"}
	if err := bus.Publish(ctx, want); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	for name, ch := range map[string]<-chan *GraphEvent{"history": history, "websocket": hub} {
		got := receiveEvent(t, ch)
		if got.EventID != want.EventID {
			t.Errorf("%s received EventID = %q, want %q", name, got.EventID, want.EventID)
		}
		if len(got.Categories) != 2 {
			t.Errorf("%s received %d categories, want 2", name, len(got.Categories))
		}
	}
}

func TestChannelBusOrdering(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, "test")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	ids := []string{"A", "B", "C", "D"}
	for _, id := range ids {
		if err := bus.Publish(ctx, NewGraphEvent(TypeUserAdded, id)); err != nil {
			t.Fatalf("Publish(%s) error = %v", id, err)
		}
	}

	for _, want := range ids {
		got := receiveEvent(t, ch)
		if got.VertexID != want {
			t.Errorf("received VertexID = %q, want %q", got.VertexID, want)
		}
	}
}

func TestChannelBusClosed(t *testing.T) {
	bus := NewChannelBus(DefaultConfig(), nil)
	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := bus.Publish(context.Background(), NewGraphEvent(TypeUserAdded, "x")); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Publish() after close error = %v, want ErrBusClosed", err)
	}
	if _, err := bus.Subscribe(context.Background(), "test"); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Subscribe() after close error = %v, want ErrBusClosed", err)
	}

	// Close is idempotent.
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestChannelBusContextCancelClosesChannel(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := bus.Subscribe(ctx, "test")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			// A buffered event may still be delivered; the channel must
			// close afterwards.
			select {
			case _, ok := <-ch:
				if ok {
					t.Error("channel still open after context cancel")
				}
			case <-time.After(2 * time.Second):
				t.Error("channel not closed after context cancel")
			}
		}
	case <-time.After(2 * time.Second):
		t.Error("channel not closed after context cancel")
	}
}

func TestNewSelectsChannelTransport(t *testing.T) {
	cfg := DefaultConfig()
	bus, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer bus.Close()

	if _, ok := bus.(*ChannelBus); !ok {
		t.Errorf("New() transport = %T, want *ChannelBus", bus)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BufferSize = -1

	if _, err := New(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() error = %v, want ErrInvalidConfig", err)
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), NewGraphEvent(TypeUserAdded, "x")); err != nil {
		t.Errorf("NopPublisher.Publish() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("NopPublisher.Close() error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"negative buffer", func(c *Config) { c.BufferSize = -1 }, true},
		{"nats without url or embedded server", func(c *Config) {
			c.NATS.Enabled = true
			c.NATS.EmbeddedServer = false
			c.NATS.URL = ""
		}, true},
		{"nats with zero subscribers", func(c *Config) {
			c.NATS.Enabled = true
			c.NATS.SubscribersCount = 0
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
