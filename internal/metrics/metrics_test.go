package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Inc(EventRelays)
	m.Add(EventRelays, 2)
	if got := m.Get(EventRelays); got != 3 {
		t.Fatalf("Get=%d, want 3", got)
	}
	if got := m.Get("never_touched"); got != 0 {
		t.Fatalf("Get of unknown counter=%d, want 0", got)
	}

	snap := m.Snapshot()
	if snap[EventRelays] != 3 {
		t.Fatalf("snapshot=%v", snap)
	}

	// The snapshot is a copy, not a view.
	snap[EventRelays] = 99
	if got := m.Get(EventRelays); got != 3 {
		t.Fatalf("snapshot mutation leaked: %d", got)
	}
}

func TestHandler_ExposesSnapshot(t *testing.T) {
	m := New()
	m.Inc("foo")
	m.Add("bar", 2)
	m.Inc(`quote"back\slash`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()

	Handler(m).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusOK)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "# TYPE splitclass_signaling_events_total counter") {
		t.Fatalf("missing TYPE header: %s", body)
	}
	if !strings.Contains(body, `splitclass_signaling_events_total{event="bar"} 2`) {
		t.Fatalf("missing bar counter: %s", body)
	}
	if !strings.Contains(body, `splitclass_signaling_events_total{event="foo"} 1`) {
		t.Fatalf("missing foo counter: %s", body)
	}
	// Ensure label escaping matches Prometheus text format rules.
	if !strings.Contains(body, `splitclass_signaling_events_total{event="quote\"back\\slash"} 1`) {
		t.Fatalf("missing escaped counter: %s", body)
	}
}
