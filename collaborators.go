package gridsel

import "fmt"

// Collaborators are the host callbacks the engine reads and writes through.
// The engine never inspects the dataset directly.
type Collaborators interface {
	ReadCell(row, col int) any
	// WriteCell stores value and reports whether the cell changed.
	WriteCell(row, col int, value any) bool
	DeleteRows(rows []int)
	RecordHistory(entries []HistoryEntry)
	DispatchEditEvents(events []EditEvent)

	// ResolveCell maps a viewport-space pointer position to a cell.
	ResolveCell(x, y float64) (Point, bool)
	ScrollBy(dx, dy int)
	ScrollIntoView(r Rect)
}

// Editor is implemented by collaborators that restrict which cells may be written.
type Editor interface {
	Editable(row, col int) bool
}

// Measurer is implemented by collaborators that measure rendered geometry.
// done may be called later; the engine drops results of superseded requests.
type Measurer interface {
	Measure(a Area, done func(r Rect, ok bool)) Handle
}

// BaseCollaborators implements every callback as a no-op. Embed it and
// override what the host supports.
type BaseCollaborators struct{}

func (BaseCollaborators) ReadCell(int, int) any                      { return nil }
func (BaseCollaborators) WriteCell(int, int, any) bool               { return false }
func (BaseCollaborators) DeleteRows([]int)                           {}
func (BaseCollaborators) RecordHistory([]HistoryEntry)               {}
func (BaseCollaborators) DispatchEditEvents([]EditEvent)             {}
func (BaseCollaborators) ResolveCell(float64, float64) (Point, bool) { return Point{}, false }
func (BaseCollaborators) ScrollBy(int, int)                          {}
func (BaseCollaborators) ScrollIntoView(Rect)                        {}

// EditSource names the interaction that produced an edit.
type EditSource uint8

const (
	EditFill EditSource = iota
	EditPaste
	EditCut
)

func (s EditSource) String() string {
	switch s {
	case EditFill:
		return "fill"
	case EditPaste:
		return "paste"
	case EditCut:
		return "cut"
	default:
		return "unknown"
	}
}

// CellEdit is one cell value change.
type CellEdit struct {
	Row   int
	Col   int
	RowID string
	Old   any
	New   any
}

// EditEvent is dispatched to the host for every changed cell.
type EditEvent struct {
	Source EditSource
	CellEdit
}

// HistoryEntry groups the edits of one interaction for undo.
type HistoryEntry struct {
	Source    EditSource
	Edits     []CellEdit
	Selection Area
}

// FormatCell renders a cell value for copy and matrix export.
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// editBatch collects the edits of one interaction so they reach the host as
// a single dispatch and a single history entry.
type editBatch struct {
	source EditSource
	grid   GridContext
	cols   []Column
	collab Collaborators
	edits  []CellEdit
	skip   *Area
}

func newEditBatch(source EditSource, g GridContext, cols []Column, collab Collaborators) *editBatch {
	return &editBatch{source: source, grid: g, cols: cols, collab: collab}
}

func (b *editBatch) editable(row, col int) bool {
	if row < 0 || row >= b.grid.RowCount || col < 0 || col >= b.grid.ColCount {
		return false
	}
	if b.skip != nil && b.skip.ContainsCell(row, col) {
		return false
	}
	if col < len(b.cols) && b.cols[col].System {
		return false
	}
	if ed, ok := b.collab.(Editor); ok {
		return ed.Editable(row, col)
	}
	return true
}

func (b *editBatch) write(row, col int, v any) {
	if !b.editable(row, col) {
		return
	}
	old := b.collab.ReadCell(row, col)
	if !b.collab.WriteCell(row, col, v) {
		return
	}
	b.edits = append(b.edits, CellEdit{Row: row, Col: col, RowID: b.grid.rowID(row), Old: old, New: v})
}

// dispatch hands the batch to the host. An empty batch sends nothing.
func (b *editBatch) dispatch(sel Area) int {
	if len(b.edits) == 0 {
		return 0
	}
	events := make([]EditEvent, len(b.edits))
	for i, e := range b.edits {
		events[i] = EditEvent{Source: b.source, CellEdit: e}
	}
	b.collab.DispatchEditEvents(events)
	b.collab.RecordHistory([]HistoryEntry{{Source: b.source, Edits: b.edits, Selection: sel}})
	return len(b.edits)
}
