package gridsel

// Rect is an overlay rectangle in table space. Rects are owned by a RectPool:
// acquire one, fill it in, release it when a newer result supersedes it, and
// never read it after release.
type Rect struct {
	ID     string
	Left   int
	Top    int
	Width  int
	Height int
	Pin    Pin
	Active bool

	free bool
}

// Reset clears the rect for reuse.
func (r *Rect) Reset() {
	*r = Rect{}
}

// Right returns the x coordinate one past the rect's right edge.
func (r *Rect) Right() int { return r.Left + r.Width }

// Bottom returns the y coordinate one past the rect's bottom edge.
func (r *Rect) Bottom() int { return r.Top + r.Height }

func (r *Rect) sameAs(o *Rect) bool {
	return r.ID == o.ID && r.Left == o.Left && r.Top == o.Top &&
		r.Width == o.Width && r.Height == o.Height &&
		r.Pin == o.Pin && r.Active == o.Active
}

// RectPool recycles rects and the slices holding them. It belongs to one
// engine instance and is not safe for concurrent use.
type RectPool struct {
	rects  []*Rect
	slices [][]*Rect
	live   int
}

// NewRectPool creates an empty pool.
func NewRectPool() *RectPool {
	return &RectPool{}
}

// Acquire returns a zeroed rect.
func (p *RectPool) Acquire() *Rect {
	p.live++
	if n := len(p.rects); n > 0 {
		r := p.rects[n-1]
		p.rects[n-1] = nil
		p.rects = p.rects[:n-1]
		r.Reset()
		return r
	}
	return &Rect{}
}

// Release returns r to the pool. Releasing nil or an already free rect is a no-op.
func (p *RectPool) Release(r *Rect) {
	if r == nil || r.free {
		return
	}
	r.free = true
	p.live--
	p.rects = append(p.rects, r)
}

// AcquireSlice returns an empty slice, reusing capacity when possible.
func (p *RectPool) AcquireSlice() []*Rect {
	if n := len(p.slices); n > 0 {
		s := p.slices[n-1]
		p.slices[n-1] = nil
		p.slices = p.slices[:n-1]
		return s[:0]
	}
	return make([]*Rect, 0, 4)
}

// ReleaseSlice releases every rect in s and then s itself.
func (p *RectPool) ReleaseSlice(s []*Rect) {
	if s == nil {
		return
	}
	for i, r := range s {
		p.Release(r)
		s[i] = nil
	}
	p.slices = append(p.slices, s[:0])
}

// Live returns the number of rects acquired and not yet released.
func (p *RectPool) Live() int {
	return p.live
}

func rectsEqual(a, b []*Rect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].sameAs(b[i]) {
			return false
		}
	}
	return true
}

func rectEqual(a, b *Rect) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.sameAs(b)
}
