package stats

import "errors"

var (
	// ErrStatsAlreadyInitialized is the error returned when the stats are already initialized
	ErrStatsAlreadyInitialized = errors.New("stats already initialized")
)
