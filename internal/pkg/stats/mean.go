package stats

import "sync"

type mean struct {
	sync.Mutex
	sum   int64
	count int64
}

func (m *mean) add(value int64) {
	m.Lock()
	defer m.Unlock()
	m.sum += value
	m.count++
}

func (m *mean) get() int64 {
	m.Lock()
	defer m.Unlock()
	if m.count == 0 {
		return 0
	}
	return m.sum / m.count
}

func (m *mean) reset() {
	m.Lock()
	defer m.Unlock()
	m.sum = 0
	m.count = 0
}
