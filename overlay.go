package gridsel

import (
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Concern is one independently recomputed set of overlay rectangles.
type Concern uint8

const (
	ConcernRanges Concern = 1 << iota
	ConcernActive
	ConcernFill
	ConcernCut
)

func (c Concern) String() string {
	switch c {
	case ConcernRanges:
		return "ranges"
	case ConcernActive:
		return "active"
	case ConcernFill:
		return "fill"
	case ConcernCut:
		return "cut"
	default:
		return "mixed"
	}
}

// Has reports whether every bit of o is set in c.
func (c Concern) Has(o Concern) bool { return c&o == o }

// Signature holds one change-detection hash per concern. It is never persisted.
type Signature struct {
	Ranges string
	Active string
	Fill   string
	Cut    string
}

// FillHandle is where the active range's fill handle sits, in table space.
type FillHandle struct {
	Visible bool
	Left    int
	Top     int
	Pin     Pin
}

// OverlayInput is everything an overlay is a pure function of.
type OverlayInput struct {
	Ranges      []Range
	ActiveIndex int
	Fill        *Area
	Cut         *CutPreview
	Layout      Layout
}

// Overlay is a computed set of rectangles. The slices and rects belong to the
// computer's pool and stay valid until the next Compute replaces them.
type Overlay struct {
	Ranges     []*Rect
	Active     []*Rect
	Fill       []*Rect
	Cut        []*Rect
	Cursor     *Rect
	FillHandle FillHandle
	Signature  Signature
}

type preparedLayout struct {
	colX      []int
	colW      []int
	colPin    []Pin
	rowHeight int
	band      scrollBand
}

// OverlayComputer turns selection state into rectangles, recomputing only the
// concerns whose signature changed since the previous call.
type OverlayComputer struct {
	pool     *RectPool
	overscan int
	log      logrus.FieldLogger
	metrics  Recorder

	prepSig  string
	prep     preparedLayout
	computed bool
	cur      Overlay
	sigBuf   []byte
}

// NewOverlayComputer creates a computer drawing rects from pool.
func NewOverlayComputer(pool *RectPool, cfg Config) *OverlayComputer {
	cfg = cfg.withDefaults()
	return &OverlayComputer{
		pool:     pool,
		overscan: cfg.Overscan,
		log:      cfg.Logger,
		metrics:  cfg.Metrics,
	}
}

// Current returns the last committed overlay.
func (c *OverlayComputer) Current() Overlay {
	return c.cur
}

// Compute recomputes the overlay for in. It returns the committed overlay and
// the concerns whose rectangles were replaced. Concerns whose recomputed
// rectangles equal the committed ones keep their previous slices.
func (c *OverlayComputer) Compute(in OverlayInput) (Overlay, Concern, error) {
	if err := c.prepare(in.Layout); err != nil {
		return c.cur, 0, err
	}

	active := -1
	if len(in.Ranges) > 0 {
		active = clamp(in.ActiveIndex, 0, len(in.Ranges)-1)
	}

	var changed Concern
	sig := c.signatures(in, active)

	if !c.computed || sig.Ranges != c.cur.Signature.Ranges {
		start := time.Now()
		fresh := c.pool.AcquireSlice()
		for i, r := range in.Ranges {
			if i == active {
				continue
			}
			fresh = c.appendArea(fresh, r.Area(), "range-"+strconv.Itoa(i), false)
		}
		if c.swap(&c.cur.Ranges, fresh) {
			changed |= ConcernRanges
		}
		c.metrics.OverlayComputed(ConcernRanges, time.Since(start))
	}

	if !c.computed || sig.Active != c.cur.Signature.Active {
		start := time.Now()
		fresh := c.pool.AcquireSlice()
		var cursor *Rect
		handle := FillHandle{}
		if active >= 0 {
			a := in.Ranges[active].Area()
			fresh = c.appendArea(fresh, a, "active", true)
			if a.IsSingleCell() {
				cursor = c.cellRect(a.StartRow, a.StartCol, "cursor")
			}
			handle = c.fillHandle(a)
		}
		swapped := c.swap(&c.cur.Active, fresh)
		if !rectEqual(cursor, c.cur.Cursor) {
			c.pool.Release(c.cur.Cursor)
			c.cur.Cursor = cursor
			swapped = true
		} else {
			c.pool.Release(cursor)
		}
		if handle != c.cur.FillHandle {
			c.cur.FillHandle = handle
			swapped = true
		}
		if swapped {
			changed |= ConcernActive
		}
		c.metrics.OverlayComputed(ConcernActive, time.Since(start))
	}

	if !c.computed || sig.Fill != c.cur.Signature.Fill {
		start := time.Now()
		fresh := c.pool.AcquireSlice()
		if in.Fill != nil {
			fresh = c.appendArea(fresh, *in.Fill, "fill", false)
		}
		if c.swap(&c.cur.Fill, fresh) {
			changed |= ConcernFill
		}
		c.metrics.OverlayComputed(ConcernFill, time.Since(start))
	}

	if !c.computed || sig.Cut != c.cur.Signature.Cut {
		start := time.Now()
		fresh := c.pool.AcquireSlice()
		if in.Cut != nil {
			for i, a := range in.Cut.Areas {
				fresh = c.appendArea(fresh, a, "cut-"+strconv.Itoa(i), i == in.Cut.ActiveIndex)
			}
		}
		if c.swap(&c.cur.Cut, fresh) {
			changed |= ConcernCut
		}
		c.metrics.OverlayComputed(ConcernCut, time.Since(start))
	}

	c.cur.Signature = sig
	c.computed = true
	if changed != 0 {
		c.log.WithField("changed", changed.String()).Debug("overlay committed")
	}
	return c.cur, changed, nil
}

// Release returns every committed rect to the pool.
func (c *OverlayComputer) Release() {
	c.pool.ReleaseSlice(c.cur.Ranges)
	c.pool.ReleaseSlice(c.cur.Active)
	c.pool.ReleaseSlice(c.cur.Fill)
	c.pool.ReleaseSlice(c.cur.Cut)
	c.pool.Release(c.cur.Cursor)
	c.cur = Overlay{}
	c.computed = false
}

// swap installs fresh into *dst unless it is element-wise equal to the
// committed slice, in which case fresh goes straight back to the pool.
func (c *OverlayComputer) swap(dst *[]*Rect, fresh []*Rect) bool {
	if c.computed && rectsEqual(*dst, fresh) {
		c.pool.ReleaseSlice(fresh)
		return false
	}
	c.pool.ReleaseSlice(*dst)
	*dst = fresh
	return true
}

func (c *OverlayComputer) prepare(l Layout) error {
	sig := c.layoutSignature(l)
	if c.computed && sig == c.prepSig {
		return nil
	}
	if err := l.Validate(); err != nil {
		return err
	}
	n := len(l.Columns)
	p := &c.prep
	p.colX = resizeInts(p.colX, n)
	p.colW = resizeInts(p.colW, n)
	if cap(p.colPin) < n {
		p.colPin = make([]Pin, n)
	}
	p.colPin = p.colPin[:n]

	left, center, _ := l.PinWidths()
	xLeft, xCenter, xRight := 0, left, left+center
	for i, col := range l.Columns {
		w := l.Widths[col.Key]
		p.colW[i] = w
		p.colPin[i] = col.Pin
		switch col.Pin {
		case PinLeft:
			p.colX[i] = xLeft
			xLeft += w
		case PinRight:
			p.colX[i] = xRight
			xRight += w
		default:
			p.colX[i] = xCenter
			xCenter += w
		}
	}
	p.rowHeight = l.RowHeight
	p.band = bandFor(l.Viewport, c.overscan)
	c.prepSig = sig
	// A new layout invalidates every concern.
	c.cur.Signature = Signature{}
	return nil
}

func (c *OverlayComputer) layoutSignature(l Layout) string {
	b := c.sigBuf[:0]
	b = strconv.AppendInt(b, int64(l.RowHeight), 10)
	b = append(b, '|')
	b = strconv.AppendInt(b, int64(l.Viewport.Width), 10)
	b = append(b, 'x')
	b = strconv.AppendInt(b, int64(l.Viewport.Height), 10)
	band := bandFor(l.Viewport, c.overscan)
	b = append(b, '@')
	b = strconv.AppendInt(b, int64(band.top), 10)
	b = append(b, '|')
	for _, col := range l.Columns {
		b = append(b, col.Key...)
		b = append(b, ':')
		b = strconv.AppendInt(b, int64(l.Widths[col.Key]), 10)
		b = append(b, ':')
		b = append(b, byte('0'+col.Pin))
		b = append(b, ';')
	}
	c.sigBuf = b
	return string(b)
}

func (c *OverlayComputer) signatures(in OverlayInput, active int) Signature {
	var sig Signature

	b := append(c.sigBuf[:0], c.prepSig...)
	b = append(b, '#')
	for i, r := range in.Ranges {
		if i == active {
			continue
		}
		b = appendArea(b, r.Area())
	}
	sig.Ranges = string(b)

	b = append(b[:0], c.prepSig...)
	b = append(b, '#')
	if active >= 0 {
		b = appendArea(b, in.Ranges[active].Area())
	}
	sig.Active = string(b)

	b = append(b[:0], c.prepSig...)
	b = append(b, '#')
	if in.Fill != nil {
		b = appendArea(b, *in.Fill)
	}
	sig.Fill = string(b)

	b = append(b[:0], c.prepSig...)
	b = append(b, '#')
	if in.Cut != nil {
		b = strconv.AppendInt(b, int64(in.Cut.ActiveIndex), 10)
		for _, a := range in.Cut.Areas {
			b = appendArea(b, a)
		}
	}
	sig.Cut = string(b)

	c.sigBuf = b
	return sig
}

func appendArea(b []byte, a Area) []byte {
	b = strconv.AppendInt(b, int64(a.StartRow), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(a.EndRow), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(a.StartCol), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(a.EndCol), 10)
	return append(b, ';')
}

// appendArea adds one rect per run of same-pinned columns the area spans.
// The first run of each pin is named id:pin; later runs of the same pin, which
// only occur when columns are not grouped by pin, get their start column too.
func (c *OverlayComputer) appendArea(dst []*Rect, a Area, id string, active bool) []*Rect {
	p := &c.prep
	n := len(p.colX)
	if n == 0 || a.EndCol < 0 || a.StartCol >= n || a.EndRow < a.StartRow {
		return dst
	}
	top, bottom, ok := p.band.clip(a.StartRow*p.rowHeight, (a.EndRow+1)*p.rowHeight)
	if !ok {
		return dst
	}
	first := max(a.StartCol, 0)
	last := min(a.EndCol, n-1)
	var seen uint8
	for col := first; col <= last; {
		pin := p.colPin[col]
		runEnd := col
		for runEnd+1 <= last && p.colPin[runEnd+1] == pin {
			runEnd++
		}
		r := c.pool.Acquire()
		r.ID = id + ":" + pin.String()
		if seen&(1<<pin) != 0 {
			r.ID += "@" + strconv.Itoa(col)
		}
		seen |= 1 << pin
		r.Left = p.colX[col]
		r.Width = p.colX[runEnd] + p.colW[runEnd] - p.colX[col]
		r.Top = top
		r.Height = bottom - top
		r.Pin = pin
		r.Active = active
		dst = append(dst, r)
		col = runEnd + 1
	}
	return dst
}

func (c *OverlayComputer) cellRect(row, col int, id string) *Rect {
	p := &c.prep
	if col < 0 || col >= len(p.colX) {
		return nil
	}
	top, bottom, ok := p.band.clip(row*p.rowHeight, (row+1)*p.rowHeight)
	if !ok {
		return nil
	}
	r := c.pool.Acquire()
	r.ID = id
	r.Left = p.colX[col]
	r.Width = p.colW[col]
	r.Top = top
	r.Height = bottom - top
	r.Pin = p.colPin[col]
	r.Active = true
	return r
}

func (c *OverlayComputer) fillHandle(a Area) FillHandle {
	p := &c.prep
	if a.EndCol < 0 || a.EndCol >= len(p.colX) {
		return FillHandle{}
	}
	y := (a.EndRow + 1) * p.rowHeight
	if p.band.bounded && (y < p.band.top || y > p.band.bottom) {
		return FillHandle{}
	}
	return FillHandle{
		Visible: true,
		Left:    p.colX[a.EndCol] + p.colW[a.EndCol],
		Top:     y,
		Pin:     p.colPin[a.EndCol],
	}
}

func resizeInts(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}

// Bounds returns the table space box around a under layout l, unclipped by
// the scroll band. Its Pin is the pin of the area's first column.
func (c *OverlayComputer) Bounds(a Area, l Layout) (Rect, bool) {
	if err := c.prepare(l); err != nil {
		return Rect{}, false
	}
	p := &c.prep
	n := len(p.colX)
	if n == 0 || a.StartCol < 0 || a.EndCol >= n || a.EndRow < a.StartRow {
		return Rect{}, false
	}
	left, right := p.colX[a.StartCol], 0
	for col := a.StartCol; col <= a.EndCol; col++ {
		left = min(left, p.colX[col])
		right = max(right, p.colX[col]+p.colW[col])
	}
	return Rect{
		ID:     "bounds",
		Left:   left,
		Top:    a.StartRow * p.rowHeight,
		Width:  right - left,
		Height: a.Rows() * p.rowHeight,
		Pin:    p.colPin[a.StartCol],
	}, true
}
