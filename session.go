package gridsel

// Axis is a drag direction.
type Axis uint8

const (
	AxisNone Axis = iota
	AxisRow
	AxisCol
)

func (a Axis) String() string {
	switch a {
	case AxisRow:
		return "row"
	case AxisCol:
		return "col"
	default:
		return "none"
	}
}

// SessionKind identifies a DragSession variant.
type SessionKind uint8

const (
	SessionSelection SessionKind = iota
	SessionFill
	SessionRows
	SessionColumns
)

func (k SessionKind) String() string {
	switch k {
	case SessionSelection:
		return "selection"
	case SessionFill:
		return "fill"
	case SessionRows:
		return "rows"
	case SessionColumns:
		return "columns"
	default:
		return "unknown"
	}
}

// DragSession is the interaction in progress between pointer-down and
// pointer-up. The variants are *SelectionDrag, *FillDrag and *LineDrag;
// the interface is sealed.
type DragSession interface {
	Kind() SessionKind
	dragSession()
}

// DragMode decides how a cell drag combines with the existing selection.
type DragMode uint8

const (
	// DragReplace starts a new single-range selection.
	DragReplace DragMode = iota
	// DragAdd adds a range and makes it active.
	DragAdd
	// DragExtend keeps the active range's anchor and moves its focus.
	DragExtend
)

// SelectionDrag extends the active range from a fixed anchor cell.
type SelectionDrag struct {
	Anchor Point

	last    Point
	applied bool
}

func (*SelectionDrag) Kind() SessionKind { return SessionSelection }
func (*SelectionDrag) dragSession()      {}

// advance records target and reports whether it differs, by row identity and
// column, from the last applied target.
func (d *SelectionDrag) advance(target Point) bool {
	if d.applied && d.last.Equal(target) {
		return false
	}
	d.last = target
	d.applied = true
	return true
}

// LineDrag selects whole rows (AxisRow) or whole columns (AxisCol).
type LineDrag struct {
	Axis   Axis
	Anchor int

	last    int
	applied bool
}

func (d *LineDrag) Kind() SessionKind {
	if d.Axis == AxisCol {
		return SessionColumns
	}
	return SessionRows
}
func (*LineDrag) dragSession() {}

func (d *LineDrag) advance(line int) bool {
	if d.applied && d.last == line {
		return false
	}
	d.last = line
	d.applied = true
	return true
}

// Span returns the contiguous lines between the anchor and line.
func (d *LineDrag) Span(line int) RowSpan {
	return SpanOf(d.Anchor, line)
}

// Range returns the single range equivalent to dragging to line.
func (d *LineDrag) Range(line int, g GridContext) Range {
	if d.Axis == AxisCol {
		return RangeForColumns(d.Anchor, line, g)
	}
	return RangeForRows(d.Anchor, line, g)
}

func (d *LineDrag) lineOf(p Point) int {
	if d.Axis == AxisCol {
		return p.Col
	}
	return p.Row
}
