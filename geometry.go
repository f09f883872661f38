// Package gridsel is a headless selection and overlay engine for virtualized,
// pinned-column data grids. It tracks selected cells, rows and columns,
// drives drag/fill/cut interactions and turns the result into a small set of
// pooled rectangles for a renderer to draw.
package gridsel

// GridContext is the grid every point and range is relative to.
// Points and ranges must be re-clamped whenever it changes.
type GridContext struct {
	RowCount int
	ColCount int

	// RowIDOf returns the stable identity of a row, or "" when rows have none.
	RowIDOf func(row int) string

	// RowIndexOf resolves a stable row identity against the current row list.
	RowIndexOf func(id string) (int, bool)
}

// Empty reports whether the grid has no addressable cells.
func (g GridContext) Empty() bool {
	return g.RowCount <= 0 || g.ColCount <= 0
}

// LastRow returns the index of the last row, or -1 for an empty grid.
func (g GridContext) LastRow() int { return g.RowCount - 1 }

// LastCol returns the index of the last column, or -1 for an empty grid.
func (g GridContext) LastCol() int { return g.ColCount - 1 }

func (g GridContext) rowID(row int) string {
	if g.RowIDOf == nil || row < 0 || row >= g.RowCount {
		return ""
	}
	return g.RowIDOf(row)
}

func (g GridContext) rowIndex(id string) (int, bool) {
	if id == "" || g.RowIndexOf == nil {
		return 0, false
	}
	idx, ok := g.RowIndexOf(id)
	if !ok || idx < 0 || idx >= g.RowCount {
		return 0, false
	}
	return idx, true
}

// Point addresses a single cell. RowID is optional; when both sides of a
// comparison carry one it wins over Row.
type Point struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	RowID string `json:"rowId,omitempty"`
}

// Equal reports whether p and o address the same cell.
func (p Point) Equal(o Point) bool {
	if p.Col != o.Col {
		return false
	}
	if p.RowID != "" && o.RowID != "" {
		return p.RowID == o.RowID
	}
	return p.Row == o.Row
}

// PointsEqual compares two optional points.
func PointsEqual(a, b *Point) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// ClampPoint clamps p into the grid and re-resolves its RowID.
func ClampPoint(p Point, g GridContext) Point {
	p.Row = clamp(p.Row, 0, g.RowCount-1)
	p.Col = clamp(p.Col, 0, g.ColCount-1)
	p.RowID = g.rowID(p.Row)
	return p
}

// Area is a bounding box of cells without direction. All bounds are inclusive.
type Area struct {
	StartRow int `json:"startRow"`
	EndRow   int `json:"endRow"`
	StartCol int `json:"startCol"`
	EndCol   int `json:"endCol"`
}

// AreaOf returns the normalized area spanning two cells.
func AreaOf(r0, c0, r1, c1 int) Area {
	return Area{
		StartRow: min(r0, r1),
		EndRow:   max(r0, r1),
		StartCol: min(c0, c1),
		EndCol:   max(c0, c1),
	}
}

// Rows returns the number of rows the area spans.
func (a Area) Rows() int { return a.EndRow - a.StartRow + 1 }

// Cols returns the number of columns the area spans.
func (a Area) Cols() int { return a.EndCol - a.StartCol + 1 }

// IsSingleCell reports whether the area covers exactly one cell.
func (a Area) IsSingleCell() bool {
	return a.StartRow == a.EndRow && a.StartCol == a.EndCol
}

// ContainsCell reports whether (row, col) lies inside the area.
func (a Area) ContainsCell(row, col int) bool {
	return a.ContainsRow(row) && a.ContainsColumn(col)
}

// ContainsRow reports whether row lies inside the area's row span.
func (a Area) ContainsRow(row int) bool {
	return row >= a.StartRow && row <= a.EndRow
}

// ContainsColumn reports whether col lies inside the area's column span.
func (a Area) ContainsColumn(col int) bool {
	return col >= a.StartCol && col <= a.EndCol
}

// Clamp clips the area to the grid. The result may be inverted (empty) when
// the grid has no cells.
func (a Area) Clamp(g GridContext) Area {
	return Area{
		StartRow: clamp(a.StartRow, 0, g.RowCount-1),
		EndRow:   clamp(a.EndRow, 0, g.RowCount-1),
		StartCol: clamp(a.StartCol, 0, g.ColCount-1),
		EndCol:   clamp(a.EndCol, 0, g.ColCount-1),
	}
}

// Edges marks which sides of a shape a cell touches.
type Edges struct {
	Top    bool
	Bottom bool
	Left   bool
	Right  bool
}

// EdgesOf returns the boundary sides of a touched by (row, col), so a renderer
// can draw one border around a shape instead of one per cell. It returns nil
// when the cell is outside a.
func EdgesOf(a Area, row, col int) *Edges {
	if !a.ContainsCell(row, col) {
		return nil
	}
	return &Edges{
		Top:    row == a.StartRow,
		Bottom: row == a.EndRow,
		Left:   col == a.StartCol,
		Right:  col == a.EndCol,
	}
}

// Range is a selection with direction: Anchor is where the gesture started,
// Focus is where it is now. The bounds are always the normalized box of the two.
type Range struct {
	StartRow   int    `json:"startRow"`
	EndRow     int    `json:"endRow"`
	StartCol   int    `json:"startCol"`
	EndCol     int    `json:"endCol"`
	Anchor     Point  `json:"anchor"`
	Focus      Point  `json:"focus"`
	StartRowID string `json:"startRowId,omitempty"`
	EndRowID   string `json:"endRowId,omitempty"`
}

// CreateRange clamps anchor and focus into the grid and returns their
// normalized bounding box.
func CreateRange(anchor, focus Point, g GridContext) Range {
	a := ClampPoint(anchor, g)
	f := ClampPoint(focus, g)
	r := Range{
		StartRow: min(a.Row, f.Row),
		EndRow:   max(a.Row, f.Row),
		StartCol: min(a.Col, f.Col),
		EndCol:   max(a.Col, f.Col),
		Anchor:   a,
		Focus:    f,
	}
	r.StartRowID = g.rowID(r.StartRow)
	r.EndRowID = g.rowID(r.EndRow)
	return r
}

// Area returns the range's bounds without direction.
func (r Range) Area() Area {
	return Area{StartRow: r.StartRow, EndRow: r.EndRow, StartCol: r.StartCol, EndCol: r.EndCol}
}

// IsSingleCell reports whether the range covers exactly one cell.
func (r Range) IsSingleCell() bool { return r.Area().IsSingleCell() }

// RowSpan is a contiguous inclusive run of rows or columns.
type RowSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SpanOf returns the normalized span between two lines.
func SpanOf(a, b int) RowSpan {
	return RowSpan{Start: min(a, b), End: max(a, b)}
}

// Len returns the number of lines in the span.
func (s RowSpan) Len() int { return s.End - s.Start + 1 }

// Lines returns every line index in the span in ascending order.
func (s RowSpan) Lines() []int {
	out := make([]int, 0, s.Len())
	for i := s.Start; i <= s.End; i++ {
		out = append(out, i)
	}
	return out
}

// RangeForRows returns the single range equivalent to a full-row selection
// from anchorRow to focusRow.
func RangeForRows(anchorRow, focusRow int, g GridContext) Range {
	return CreateRange(
		Point{Row: anchorRow, Col: 0},
		Point{Row: focusRow, Col: g.ColCount - 1},
		g,
	)
}

// RangeForColumns returns the single range equivalent to a full-column
// selection from anchorCol to focusCol.
func RangeForColumns(anchorCol, focusCol int, g GridContext) Range {
	return CreateRange(
		Point{Row: 0, Col: anchorCol},
		Point{Row: g.RowCount - 1, Col: focusCol},
		g,
	)
}

// DetectFullColumnSelectionIndex returns the selected column iff ranges is a
// single range of exactly one column running from the first to the last row.
// A partial-height single-column range is not a column selection.
func DetectFullColumnSelectionIndex(ranges []Range, g GridContext) (int, bool) {
	if len(ranges) != 1 || g.Empty() {
		return 0, false
	}
	r := ranges[0]
	if r.StartCol != r.EndCol || r.StartRow != 0 || r.EndRow != g.RowCount-1 {
		return 0, false
	}
	return r.StartCol, true
}

// DetectFullRowSelection returns the selected rows iff ranges is a single
// range covering every column.
func DetectFullRowSelection(ranges []Range, g GridContext) (RowSpan, bool) {
	if len(ranges) != 1 || g.Empty() {
		return RowSpan{}, false
	}
	r := ranges[0]
	if r.StartCol != 0 || r.EndCol != g.ColCount-1 {
		return RowSpan{}, false
	}
	return RowSpan{Start: r.StartRow, End: r.EndRow}, true
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
