package stats

import (
	"sync/atomic"
	"time"

	"github.com/paulbellamy/ratecounter"
)

type rate struct {
	rc    *ratecounter.RateCounter
	total uint64
}

func newRate() *rate {
	return &rate{
		rc: ratecounter.NewRateCounter(time.Second),
	}
}

func (r *rate) incr(step int64) {
	r.rc.Incr(step)
	atomic.AddUint64(&r.total, uint64(step))
}

func (r *rate) get() int64 {
	return r.rc.Rate()
}

func (r *rate) getTotal() uint64 {
	return atomic.LoadUint64(&r.total)
}

func (r *rate) reset() {
	r.rc = ratecounter.NewRateCounter(time.Second)
	atomic.StoreUint64(&r.total, 0)
}
