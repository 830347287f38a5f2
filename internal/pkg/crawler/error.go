package crawler

import "errors"

var (
	// ErrRunHadFailures is returned when the queue drained but at least one
	// candidate ended up in the failed state
	ErrRunHadFailures = errors.New("run finished with failed resources")
)
