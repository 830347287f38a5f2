package stats

import (
	"sync"

	"github.com/warmstack/primer/pkg/models"
)

type stats struct {
	URLsFetched *rate
	Success     *counter
	Failed      *counter
	Rejected    *counter
	Skipped     *counter
	MeanFetch   *mean
}

var (
	globalStats *stats
	doOnce      sync.Once
)

func Init() error {
	var done = false

	doOnce.Do(func() {
		globalStats = &stats{
			URLsFetched: newRate(),
			Success:     &counter{},
			Failed:      &counter{},
			Rejected:    &counter{},
			Skipped:     &counter{},
			MeanFetch:   &mean{},
		}
		done = true
	})

	if !done {
		return ErrStatsAlreadyInitialized
	}

	return nil
}

// Reset clears all counters, used between runs in tests.
func Reset() {
	globalStats.URLsFetched.reset()
	globalStats.Success.reset()
	globalStats.Failed.reset()
	globalStats.Rejected.reset()
	globalStats.Skipped.reset()
	globalStats.MeanFetch.reset()
}

// GetMap returns a map of the current stats for the end-of-run summary.
func GetMap() map[string]interface{} {
	return map[string]interface{}{
		"URL/s":                globalStats.URLsFetched.get(),
		"Total URLs fetched":   globalStats.URLsFetched.getTotal(),
		"Successes":            globalStats.Success.get(),
		"Failures":             globalStats.Failed.get(),
		"Rejected by filter":   globalStats.Rejected.get(),
		"Skipped (visited)":    globalStats.Skipped.get(),
		"Mean fetch time (ms)": globalStats.MeanFetch.get(),
	}
}

// RecordFetch counts one completed network request taking elapsedMS.
func RecordFetch(elapsedMS int64) {
	globalStats.URLsFetched.incr(1)
	globalStats.MeanFetch.add(elapsedMS)

	if prom != nil {
		prom.urlsFetched.Inc()
		prom.fetchSeconds.Observe(float64(elapsedMS) / 1000)
	}
}

// RecordState counts a resource reaching a terminal state.
func RecordState(state models.State) {
	switch state {
	case models.StateSuccess:
		globalStats.Success.incr(1)
	case models.StateFailed:
		globalStats.Failed.incr(1)
	case models.StateRejected:
		globalStats.Rejected.incr(1)
	case models.StateSkipped:
		globalStats.Skipped.incr(1)
	}

	if prom != nil {
		prom.terminalStates.WithLabelValues(state.String()).Inc()
	}
}
