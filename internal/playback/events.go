package playback

// EventKind distinguishes the notifications a coordinator publishes.
type EventKind string

const (
	// EventState marks a transport transition: play, pause, stop,
	// finish or a loop restart.
	EventState EventKind = "state"
	// EventTick marks a sampling-loop progress update.
	EventTick EventKind = "tick"
	// EventSequence marks a text or speed change that produced a new
	// sequence.
	EventSequence EventKind = "sequence"
)

// Event carries a snapshot taken at the moment of the change, so
// consumers never need to call back into the coordinator to interpret
// it.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
}
