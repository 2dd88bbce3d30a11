package metrics

// Metrics defines the instrumentation hooks the rest of the application
// reports into.
type Metrics interface {
	IncJoins()
	IncPromotions(n int)
	IncRotations()
	IncRejections(reason string)
	IncSnapshotPushes()
	SetLiveClients(n int)
	SetStartupTime(seconds float64)
}
