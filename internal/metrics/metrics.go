package metrics

import "sync"

// Event names recorded by the signaling hub.
const (
	EventMessages = "messages"
	EventJoins    = "joins"
	EventRelays   = "relays_forwarded"

	EventDropMalformed      = "drop_malformed"
	EventDropUnknownType    = "drop_unknown_type"
	EventDropNoRegistration = "drop_no_registration"
	EventDropRoutingMiss    = "drop_routing_miss"
	EventDropBackpressure   = "drop_backpressure"
	EventDropInvalidJoin    = "drop_invalid_join"
)

// Metrics is a minimal, concurrency-safe counter registry. The hub counts
// handled messages and every class of silent drop, so "why didn't my offer
// arrive" is answerable from /metrics instead of packet captures.
type Metrics struct {
	mu sync.Mutex
	m  map[string]uint64
}

func New() *Metrics {
	return &Metrics{
		m: make(map[string]uint64),
	}
}

func (m *Metrics) Inc(name string) {
	m.Add(name, 1)
}

func (m *Metrics) Add(name string, delta uint64) {
	m.mu.Lock()
	m.m[name] += delta
	m.mu.Unlock()
}

func (m *Metrics) Get(name string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.m[name]
}

// Snapshot returns a copy of all counters.
func (m *Metrics) Snapshot() map[string]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]uint64, len(m.m))
	for k, v := range m.m {
		out[k] = v
	}
	return out
}
