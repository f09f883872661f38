package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/kungfusheep/gridsel"
)

const (
	gutterWidth  = 6
	columnWidth  = 10
	headerHeight = 1
	footerHeight = 1
)

// sheet is the host side of the demo: it owns the rows, answers the engine's
// callbacks and tracks the viewport.
type sheet struct {
	gridsel.BaseCollaborators

	cols   []gridsel.Column
	widths map[string]int

	ids  []string
	data [][]string

	view     []int
	index    map[string]int
	filtered bool

	viewport gridsel.Viewport
	engine   *gridsel.Engine

	history []gridsel.HistoryEntry
	status  string
}

func newSheet(rows, cols int) *sheet {
	s := &sheet{widths: map[string]int{}}
	s.cols = append(s.cols, gridsel.Column{Key: "#", Label: "#", Pin: gridsel.PinLeft, System: true})
	s.widths["#"] = gutterWidth
	for c := 0; c < cols; c++ {
		key := columnName(c)
		s.cols = append(s.cols, gridsel.Column{Key: key, Label: key})
		s.widths[key] = columnWidth
	}
	s.ids = make([]string, rows)
	s.data = make([][]string, rows)
	for r := 0; r < rows; r++ {
		s.ids[r] = uuid.NewString()
		line := make([]string, cols)
		for c := range line {
			line[c] = fmt.Sprintf("%s%d", columnName(c), r+1)
		}
		s.data[r] = line
	}
	s.rebuildView()
	return s
}

// pin marks the first left data columns as pinned left and the last right
// ones as pinned right, which keeps the columns in display order.
func (s *sheet) pin(left, right int) {
	data := s.cols[1:]
	left = min(left, len(data))
	right = min(right, len(data)-left)
	for i := range data {
		switch {
		case i < left:
			data[i].Pin = gridsel.PinLeft
		case i >= len(data)-right:
			data[i].Pin = gridsel.PinRight
		default:
			data[i].Pin = gridsel.PinNone
		}
	}
}

func (s *sheet) rebuildView() {
	s.view = s.view[:0]
	s.index = make(map[string]int, len(s.ids))
	for base := range s.ids {
		if s.filtered && base%3 == 2 {
			continue
		}
		s.index[s.ids[base]] = len(s.view)
		s.view = append(s.view, base)
	}
}

func (s *sheet) grid() gridsel.GridContext {
	return gridsel.GridContext{
		RowCount: len(s.view),
		ColCount: len(s.cols),
		RowIDOf: func(row int) string {
			return s.ids[s.view[row]]
		},
		RowIndexOf: func(id string) (int, bool) {
			idx, ok := s.index[id]
			return idx, ok
		},
	}
}

func (s *sheet) layout() gridsel.Layout {
	return gridsel.Layout{
		Columns:   s.cols,
		Widths:    s.widths,
		RowHeight: 1,
		Viewport:  s.viewport,
	}
}

func (s *sheet) toggleFilter() {
	s.filtered = !s.filtered
	s.rebuildView()
	s.clampScroll()
	s.engine.SetGrid(s.grid())
	s.engine.SetViewport(s.viewport)
}

func (s *sheet) ReadCell(row, col int) any {
	if row < 0 || row >= len(s.view) || col < 0 || col >= len(s.cols) {
		return nil
	}
	base := s.view[row]
	if col == 0 {
		return strconv.Itoa(base + 1)
	}
	return s.data[base][col-1]
}

func (s *sheet) WriteCell(row, col int, value any) bool {
	if row < 0 || row >= len(s.view) || col <= 0 || col >= len(s.cols) {
		return false
	}
	base := s.view[row]
	v := gridsel.FormatCell(value)
	if s.data[base][col-1] == v {
		return false
	}
	s.data[base][col-1] = v
	return true
}

func (s *sheet) Editable(row, col int) bool {
	return col > 0
}

func (s *sheet) DeleteRows(rows []int) {
	drop := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r >= 0 && r < len(s.view) {
			drop[s.view[r]] = true
		}
	}
	ids := s.ids[:0]
	data := s.data[:0]
	for base := range s.ids {
		if drop[base] {
			continue
		}
		ids = append(ids, s.ids[base])
		data = append(data, s.data[base])
	}
	s.ids, s.data = ids, data
	s.rebuildView()
	s.clampScroll()
	s.status = fmt.Sprintf("deleted %d rows", len(drop))
	s.engine.SetGrid(s.grid())
	s.engine.SetViewport(s.viewport)
}

func (s *sheet) RecordHistory(entries []gridsel.HistoryEntry) {
	s.history = append(s.history, entries...)
}

func (s *sheet) DispatchEditEvents(events []gridsel.EditEvent) {
	if len(events) == 0 {
		return
	}
	s.status = fmt.Sprintf("%s: %d cells changed", events[0].Source, len(events))
}

// ResolveCell maps a viewport position to a cell. Positions outside the grid
// resolve to the nearest cell; the engine clamps rows past either end.
func (s *sheet) ResolveCell(x, y float64) (gridsel.Point, bool) {
	if len(s.view) == 0 {
		return gridsel.Point{}, false
	}
	row := s.viewport.ScrollTop + int(y)
	if y < 0 {
		row = s.viewport.ScrollTop - 1
	}
	return gridsel.Point{Row: row, Col: s.colAt(int(x))}, true
}

func (s *sheet) ScrollBy(dx, dy int) {
	s.viewport.ScrollLeft += dx
	s.viewport.ScrollTop += dy
	s.clampScroll()
	s.engine.SetViewport(s.viewport)
}

// ScrollIntoView scrolls just enough to show the top-left of r.
func (s *sheet) ScrollIntoView(r gridsel.Rect) {
	v := &s.viewport
	if r.Top < v.ScrollTop {
		v.ScrollTop = r.Top
	} else if r.Top >= v.ScrollTop+v.Height {
		v.ScrollTop = r.Top - v.Height + 1
	}
	if r.Pin == gridsel.PinNone {
		left, center, right := s.layout().PinWidths()
		view := v.Width - left - right
		x := r.Left - left
		if x < v.ScrollLeft {
			v.ScrollLeft = x
		} else if x+min(r.Width, view) > v.ScrollLeft+view {
			v.ScrollLeft = x + min(r.Width, view) - view
		}
		v.ScrollLeft = gridsel.ClampScroll(v.ScrollLeft, center, view)
	}
	s.clampScroll()
	s.engine.SetViewport(s.viewport)
}

func (s *sheet) clampScroll() {
	left, center, right := s.layout().PinWidths()
	s.viewport.ScrollTop = gridsel.ClampScroll(s.viewport.ScrollTop, len(s.view), s.viewport.Height)
	s.viewport.ScrollLeft = gridsel.ClampScroll(s.viewport.ScrollLeft, center, s.viewport.Width-left-right)
}

// span is where a column lands on screen, clipped to its pin region.
type span struct {
	x0, x1 int // unclipped
	lo, hi int // visible part
}

func (s *sheet) columnSpans() []span {
	left, center, right := s.layout().PinWidths()
	w := s.viewport.Width
	out := make([]span, len(s.cols))
	xl, xc, xr := 0, left-s.viewport.ScrollLeft, w-right
	for i, c := range s.cols {
		cw := s.widths[c.Key]
		var x0, lo, hi int
		switch c.Pin {
		case gridsel.PinLeft:
			x0, lo, hi = xl, 0, left
			xl += cw
		case gridsel.PinRight:
			x0, lo, hi = xr, w-right, w
			xr += cw
		default:
			x0, lo, hi = xc, left, min(left+center, w-right)
			xc += cw
		}
		out[i] = span{x0: x0, x1: x0 + cw, lo: max(x0, lo), hi: min(x0+cw, hi)}
	}
	return out
}

func (s *sheet) colAt(x int) int {
	spans := s.columnSpans()
	best, bestDist := 0, -1
	for i, sp := range spans {
		if sp.hi <= sp.lo {
			continue
		}
		if x >= sp.lo && x < sp.hi {
			return i
		}
		d := sp.lo - x
		if x >= sp.hi {
			d = x - sp.hi + 1
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func columnName(c int) string {
	name := ""
	for c >= 0 {
		name = string(rune('A'+c%26)) + name
		c = c/26 - 1
	}
	return name
}
