// ABOUTME: Engine phases shared by countdown and stopwatch
// ABOUTME: String forms are used in errors, logs and the TUI
package timer

// Phase is the state of an engine
type Phase int

const (
	Ready Phase = iota
	Running
	Paused
	Stopped
	Finished
)

func (p Phase) String() string {
	switch p {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}
