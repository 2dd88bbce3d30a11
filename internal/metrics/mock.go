package metrics

import "sync"

// Mock is a no-op Metrics implementation that records call counts for
// assertions in tests.
type Mock struct {
	mu sync.Mutex

	JoinsCount      int
	PromotionsCount int
	RotationsCount  int
	RejectionCounts map[string]int
	PushCount       int
	LiveClientsLast int
}

var _ Metrics = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{RejectionCounts: make(map[string]int)}
}

func (m *Mock) IncJoins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.JoinsCount++
}

func (m *Mock) IncPromotions(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PromotionsCount += n
}

func (m *Mock) IncRotations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RotationsCount++
}

func (m *Mock) IncRejections(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RejectionCounts[reason]++
}

func (m *Mock) IncSnapshotPushes() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PushCount++
}

func (m *Mock) SetLiveClients(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LiveClientsLast = n
}

func (m *Mock) SetStartupTime(float64) {}
