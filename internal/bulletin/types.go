package bulletin

// BroadcastReport summarizes one delivery cycle.
type BroadcastReport struct {
	CycleID    string
	Recipients int
	Sent       int
	Failed     int
	Skipped    int
}
