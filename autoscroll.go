package gridsel

// autoScroller runs one scroll step per frame while a drag holds the pointer
// near a viewport edge. The generation counter invalidates frames scheduled
// by a previous loop.
type autoScroller struct {
	gen    uint64
	active bool
	frame  Handle

	x, y       float64
	hasPointer bool
}

func (a *autoScroller) track(x, y float64) {
	a.x, a.y = x, y
	a.hasPointer = true
}

// delta returns the scroll step for the last pointer position.
func (a *autoScroller) delta(v Viewport, edge float64, step int) (dx, dy int) {
	if !a.hasPointer {
		return 0, 0
	}
	return edgeStep(a.x, float64(v.Width), edge, step), edgeStep(a.y, float64(v.Height), edge, step)
}

// start begins a loop unless one is running, returning its generation.
func (a *autoScroller) start() (uint64, bool) {
	if a.active {
		return 0, false
	}
	a.active = true
	a.gen++
	return a.gen, true
}

func (a *autoScroller) valid(gen uint64) bool {
	return a.active && a.gen == gen
}

// stop ends the loop. Safe to call when no loop runs.
func (a *autoScroller) stop() {
	if a.frame != nil {
		a.frame.Cancel()
		a.frame = nil
	}
	a.active = false
	a.gen++
}

func (a *autoScroller) reset() {
	a.stop()
	a.hasPointer = false
}

func edgeStep(pos, size, edge float64, step int) int {
	if size <= 0 {
		return 0
	}
	switch {
	case pos < edge:
		return -step
	case pos > size-edge:
		return step
	default:
		return 0
	}
}
