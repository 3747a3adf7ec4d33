package uicmd

// State is the application state used to gate command availability.
type State int

const (
	PreInit State = iota
	Init
	Idle
	GeomClosed
	EventProc
)

func (s State) String() string {
	switch s {
	case PreInit:
		return "PreInit"
	case Init:
		return "Init"
	case Idle:
		return "Idle"
	case GeomClosed:
		return "GeomClosed"
	case EventProc:
		return "EventProc"
	default:
		return "Unknown"
	}
}
