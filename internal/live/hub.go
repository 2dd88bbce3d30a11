// Package live pushes board updates to connected clients. A single loop
// polls the processor once a second, which doubles as the heartbeat that
// fires lazy timer expiry, and fans identical-state suppression out to
// per-client buffered channels.
package live

import (
	"context"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/brianxchen/badminton-queue/internal/metrics"
	"github.com/brianxchen/badminton-queue/internal/processor"
)

// Source is the part of the processor the hub polls.
type Source interface {
	TimerStatusNow() processor.TimerStatus
}

// subscriberBuffer is the per-client channel depth. A client that falls this
// far behind only misses intermediate states, never the latest one, because
// every push carries the full snapshot.
const subscriberBuffer = 8

// Hub owns the poll loop and the subscriber registry.
type Hub struct {
	source   Source
	metrics  metrics.Metrics
	interval time.Duration

	mu       sync.Mutex
	subs     map[string]chan processor.TimerStatus
	lastHash uint64
}

// NewHub creates a hub polling the source at the given interval.
func NewHub(source Source, m metrics.Metrics, interval time.Duration) *Hub {
	return &Hub{
		source:   source,
		metrics:  m,
		interval: interval,
		subs:     make(map[string]chan processor.TimerStatus),
	}
}

// Run polls until the context is cancelled, then closes every subscriber
// channel.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, ch := range h.subs {
				close(ch)
				delete(h.subs, id)
			}
			h.mu.Unlock()
			return
		case <-ticker.C:
			h.Poll()
		}
	}
}

// Poll fetches the current status and broadcasts it if it differs from the
// previously pushed state. The comparison uses a hash of the msgpack
// encoding, which is stable and cheap to recompute every second.
func (h *Hub) Poll() {
	status := h.source.TimerStatusNow()

	payload, err := msgpack.Marshal(status)
	if err != nil {
		log.Error("Failed to encode live update", "error", err)
		return
	}
	sum := xxhash.Sum64(payload)

	h.mu.Lock()
	defer h.mu.Unlock()
	if sum == h.lastHash {
		return
	}
	h.lastHash = sum

	for id, ch := range h.subs {
		select {
		case ch <- status:
			h.metrics.IncSnapshotPushes()
		default:
			// Slow client; it will catch up on the next state change.
			log.Debug("Dropping update for slow subscriber", "subscriber", id)
		}
	}
}

// Subscribe registers a client and immediately delivers the current state so
// new connections render without waiting for the next change.
func (h *Hub) Subscribe() (string, <-chan processor.TimerStatus) {
	status := h.source.TimerStatusNow()

	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan processor.TimerStatus, subscriberBuffer)
	ch <- status
	h.subs[id] = ch
	h.metrics.SetLiveClients(len(h.subs))
	log.Info("Live subscriber connected", "subscriber", id, "total", len(h.subs))
	return id, ch
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.subs[id]
	if !ok {
		return
	}
	delete(h.subs, id)
	close(ch)
	h.metrics.SetLiveClients(len(h.subs))
	log.Info("Live subscriber disconnected", "subscriber", id, "total", len(h.subs))
}
