package models

import "fmt"

// State represents the position of a resource in its lifecycle. A resource
// starts Pending, moves to Fetching when a request goes out, and lands on
// exactly one terminal state.
type State int8

const (
	StatePending State = iota
	StateFetching

	// Terminal states. Success and Failed both consumed a network request,
	// Rejected and Skipped never reached the wire.
	StateSuccess
	StateFailed
	StateRejected
	StateSkipped
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFetching:
		return "fetching"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	case StateRejected:
		return "rejected"
	case StateSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Terminal returns true if no further processing can happen for the resource.
func (s State) Terminal() bool {
	return s >= StateSuccess
}

// ParseState maps the string form written to the visited journal back to a
// State. Unknown strings are an error so that a corrupted journal line is
// noticed instead of silently counted.
func ParseState(raw string) (State, error) {
	switch raw {
	case "success":
		return StateSuccess, nil
	case "failed":
		return StateFailed, nil
	case "rejected":
		return StateRejected, nil
	default:
		return StatePending, fmt.Errorf("unknown state %q", raw)
	}
}
