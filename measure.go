package gridsel

// measureTracker lets only the newest measurement apply. Each request bumps
// the generation and cancels the previous handle; a late result carrying an
// old generation is dropped.
type measureTracker struct {
	gen    uint64
	handle Handle
}

func (m *measureTracker) begin() uint64 {
	m.cancel()
	return m.gen
}

func (m *measureTracker) track(h Handle) {
	m.handle = h
}

func (m *measureTracker) current(gen uint64) bool {
	return gen == m.gen
}

// cancel drops the outstanding measurement. Safe to call repeatedly.
func (m *measureTracker) cancel() {
	if m.handle != nil {
		m.handle.Cancel()
		m.handle = nil
	}
	m.gen++
}
