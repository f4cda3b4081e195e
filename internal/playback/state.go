// Package playback coordinates a Morse playback session: one encoded
// sequence, a transport state machine and a sampling loop that maps
// wall-clock time onto the sequence. Rendering is delegated to a Sink;
// the coordinator's own timeline is authoritative and keeps running
// even when the sink cannot.
package playback

// State is the coordinator's transport state.
type State string

const (
	// StateIdle means stopped at the start, ready to play.
	StateIdle State = "idle"
	// StatePlaying means the playhead is advancing.
	StatePlaying State = "playing"
	// StatePaused means the playhead is frozen mid-run.
	StatePaused State = "paused"
	// StateFinished means the run reached the end on its own.
	StateFinished State = "finished"
)
