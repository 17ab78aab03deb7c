package logging

import (
	"context"
	"testing"
	"time"
)

type collectSink struct {
	events chan Event
}

func newCollectSink() *collectSink {
	return &collectSink{events: make(chan Event, 64)}
}

func (s *collectSink) Write(event Event) error {
	s.events <- event
	return nil
}

func (s *collectSink) Close(context.Context) error { return nil }

func (s *collectSink) wait(t *testing.T) Event {
	t.Helper()
	select {
	case event := <-s.events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatalf("no event routed in time")
		return Event{}
	}
}

func newTestRouter(t *testing.T, cfg Config, sink Sink) *Router {
	t.Helper()
	router, err := NewRouter(ClockFunc(time.Now), cfg, []NamedSink{{Name: "collect", Sink: sink}})
	if err != nil {
		t.Fatalf("router construction failed: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		router.Close(ctx)
	})
	return router
}

func TestRouterDeliversToSink(t *testing.T) {
	sink := newCollectSink()
	router := newTestRouter(t, DefaultConfig(), sink)

	router.Publish(context.Background(), Event{
		Type:     "locational.hit",
		Tick:     7,
		Actor:    EntityRef{ID: "archer", Kind: EntityKindPlayer},
		Severity: SeverityInfo,
		Category: CategoryCombat,
	})

	event := sink.wait(t)
	if event.Type != "locational.hit" || event.Tick != 7 {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Time.IsZero() {
		t.Fatalf("router must stamp the time")
	}
}

func TestRouterFiltersBySeverity(t *testing.T) {
	sink := newCollectSink()
	cfg := DefaultConfig()
	cfg.MinimumSeverity = SeverityWarn
	router := newTestRouter(t, cfg, sink)

	router.Publish(context.Background(), Event{Type: "locational.resolved", Severity: SeverityDebug})
	router.Publish(context.Background(), Event{Type: "locational.hit", Severity: SeverityWarn})

	event := sink.wait(t)
	if event.Type != "locational.hit" {
		t.Fatalf("debug event must be filtered, got %+v", event)
	}
}

func TestRouterIgnoresUntypedEvents(t *testing.T) {
	sink := newCollectSink()
	router := newTestRouter(t, DefaultConfig(), sink)

	router.Publish(context.Background(), Event{Severity: SeverityInfo})
	router.Publish(context.Background(), Event{Type: "locational.hit", Severity: SeverityInfo})

	event := sink.wait(t)
	if event.Type != "locational.hit" {
		t.Fatalf("untyped events must be dropped, got %+v", event)
	}
}

func TestRouterAttachesConfiguredFields(t *testing.T) {
	sink := newCollectSink()
	cfg := DefaultConfig()
	cfg.Fields = map[string]any{"service": "nock-and-loose"}
	router := newTestRouter(t, cfg, sink)

	router.Publish(context.Background(), Event{Type: "locational.hit", Severity: SeverityInfo})

	event := sink.wait(t)
	if event.Extra["service"] != "nock-and-loose" {
		t.Fatalf("configured fields must ride along, got %+v", event.Extra)
	}
}

func TestRouterPublishAfterCloseIsNoop(t *testing.T) {
	sink := newCollectSink()
	router, err := NewRouter(ClockFunc(time.Now), DefaultConfig(), []NamedSink{{Name: "collect", Sink: sink}})
	if err != nil {
		t.Fatalf("router construction failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	router.Publish(context.Background(), Event{Type: "locational.hit", Severity: SeverityInfo})
	if err := router.Close(ctx); err != nil {
		t.Fatalf("second close must be a no-op, got %v", err)
	}
}
