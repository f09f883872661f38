package gridsel

import "github.com/pkg/errors"

// Pin is the side a column is pinned to.
type Pin uint8

const (
	PinNone Pin = iota
	PinLeft
	PinRight
)

func (p Pin) String() string {
	switch p {
	case PinLeft:
		return "left"
	case PinRight:
		return "right"
	default:
		return "none"
	}
}

// Column is the host's description of one column, in display order.
type Column struct {
	Key    string
	Label  string
	Pin    Pin
	System bool // row numbers, checkboxes; never edited by fill/paste/cut
}

// Viewport is the visible window over the table, in pixels.
type Viewport struct {
	Width      int
	Height     int
	ScrollLeft int
	ScrollTop  int
}

// Layout is the column and row geometry overlays are computed against.
type Layout struct {
	Columns   []Column
	Widths    map[string]int
	RowHeight int
	Viewport  Viewport
}

// Validate checks that every column has a width binding.
func (l Layout) Validate() error {
	for _, c := range l.Columns {
		if _, ok := l.Widths[c.Key]; !ok {
			return errors.Wrapf(ErrNoColumnWidth, "column %q", c.Key)
		}
	}
	return nil
}

// PinWidths returns the total width of the left-pinned, unpinned and
// right-pinned columns.
func (l Layout) PinWidths() (left, center, right int) {
	for _, c := range l.Columns {
		w := l.Widths[c.Key]
		switch c.Pin {
		case PinLeft:
			left += w
		case PinRight:
			right += w
		default:
			center += w
		}
	}
	return left, center, right
}

// ToViewport translates a table space rect into viewport space. Unpinned
// rects follow both scroll offsets; pinned rects only scroll vertically and
// keep a fixed horizontal position at their edge of the viewport.
func (l Layout) ToViewport(r Rect) Rect {
	r.Top -= l.Viewport.ScrollTop
	switch r.Pin {
	case PinLeft:
	case PinRight:
		left, center, right := l.PinWidths()
		r.Left = l.Viewport.Width - right + (r.Left - left - center)
	default:
		r.Left -= l.Viewport.ScrollLeft
	}
	return r
}

// VisibleRows returns the half-open range of rows intersecting the viewport.
func VisibleRows(v Viewport, rowHeight, rowCount int) (start, end int) {
	if rowHeight <= 0 || rowCount <= 0 {
		return 0, 0
	}
	start = clamp(v.ScrollTop/rowHeight, 0, rowCount-1)
	end = min((v.ScrollTop+v.Height+rowHeight-1)/rowHeight, rowCount)
	if end < start {
		end = start
	}
	return start, end
}

// ClampScroll keeps a scroll offset inside [0, content-view].
func ClampScroll(offset, content, view int) int {
	return clamp(offset, 0, max(0, content-view))
}

// scrollBand is the vertical pixel window overlays are kept for. Scroll
// offsets are bucketed by viewport height, so scrolling inside one bucket
// leaves the band, and every signature derived from it, unchanged. The band
// spans two buckets plus overscan, since an unaligned viewport straddles the
// bucket it starts in and the next one.
type scrollBand struct {
	top, bottom int
	bounded     bool
}

func bandFor(v Viewport, overscan int) scrollBand {
	if v.Height <= 0 {
		return scrollBand{}
	}
	bucket := max(v.ScrollTop, 0) / v.Height
	return scrollBand{
		top:     (bucket - overscan) * v.Height,
		bottom:  (bucket + 2 + overscan) * v.Height,
		bounded: true,
	}
}

func (b scrollBand) clip(top, bottom int) (int, int, bool) {
	if !b.bounded {
		return top, bottom, bottom > top
	}
	top = max(top, b.top)
	bottom = min(bottom, b.bottom)
	return top, bottom, bottom > top
}
