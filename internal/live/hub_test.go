package live

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianxchen/badminton-queue/internal/board"
	"github.com/brianxchen/badminton-queue/internal/metrics"
	"github.com/brianxchen/badminton-queue/internal/processor"
)

type fakeSource struct {
	mu     sync.Mutex
	status processor.TimerStatus
}

func (f *fakeSource) TimerStatusNow() processor.TimerStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeSource) set(s processor.TimerStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = s
}

func statusWithPlayers(players ...string) processor.TimerStatus {
	return processor.TimerStatus{
		Remaining: 900,
		Courts: board.Snapshot{
			Courts: []board.CourtSnapshot{{Name: "Court 1", Capacity: 2, Players: players}},
		},
	}
}

func TestSubscribeDeliversInitialState(t *testing.T) {
	src := &fakeSource{status: statusWithPlayers("alice")}
	h := NewHub(src, metrics.NewMock(), time.Second)

	id, ch := h.Subscribe()
	defer h.Unsubscribe(id)

	select {
	case got := <-ch:
		assert.Equal(t, []string{"alice"}, got.Courts.Courts[0].Players)
	default:
		t.Fatal("expected an immediate snapshot on subscribe")
	}
}

func TestPollSuppressesUnchangedState(t *testing.T) {
	src := &fakeSource{status: statusWithPlayers("alice")}
	m := metrics.NewMock()
	h := NewHub(src, m, time.Second)

	id, ch := h.Subscribe()
	defer h.Unsubscribe(id)
	<-ch // drain the initial snapshot

	h.Poll()
	require.Len(t, ch, 1, "first poll pushes")
	<-ch

	h.Poll()
	h.Poll()
	assert.Len(t, ch, 0, "identical state is not re-pushed")

	src.set(statusWithPlayers("alice", "bob"))
	h.Poll()
	require.Len(t, ch, 1)
	got := <-ch
	assert.Equal(t, []string{"alice", "bob"}, got.Courts.Courts[0].Players)
	assert.Equal(t, 2, m.PushCount)
}

func TestSlowSubscriberDoesNotBlockPoll(t *testing.T) {
	src := &fakeSource{status: statusWithPlayers()}
	h := NewHub(src, metrics.NewMock(), time.Second)

	id, _ := h.Subscribe()
	defer h.Unsubscribe(id)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*2; i++ {
			src.set(statusWithPlayers("p", string(rune('a'+i))))
			h.Poll()
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poll blocked on a slow subscriber")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	src := &fakeSource{status: statusWithPlayers()}
	m := metrics.NewMock()
	h := NewHub(src, m, time.Second)

	id, ch := h.Subscribe()
	assert.Equal(t, 1, m.LiveClientsLast)

	h.Unsubscribe(id)
	assert.Equal(t, 0, m.LiveClientsLast)

	// Drain anything buffered, then expect closed.
	for {
		if _, ok := <-ch; !ok {
			return
		}
	}
}
