package renderer

// State is the lifecycle stage of a single render
type State int

const (
	StateConfigured State = iota
	StatePartitioned
	StateDispatched
	StateJoined
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StatePartitioned:
		return "partitioned"
	case StateDispatched:
		return "dispatched"
	case StateJoined:
		return "joined"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
