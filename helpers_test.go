package gridsel

import (
	"strconv"
	"time"
)

// testGrid builds a grid whose rows carry ids "r0", "r1", ... in order.
func testGrid(rows, cols int) GridContext {
	ids := make([]string, rows)
	for i := range ids {
		ids[i] = "r" + strconv.Itoa(i)
	}
	return gridOf(ids, cols)
}

// gridOf builds a grid over an explicit row id list.
func gridOf(ids []string, cols int) GridContext {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return GridContext{
		RowCount:   len(ids),
		ColCount:   cols,
		RowIDOf:    func(row int) string { return ids[row] },
		RowIndexOf: func(id string) (int, bool) { i, ok := index[id]; return i, ok },
	}
}

func testColumns(keys ...string) ([]Column, map[string]int) {
	cols := make([]Column, len(keys))
	widths := make(map[string]int, len(keys))
	for i, k := range keys {
		cols[i] = Column{Key: k, Label: k}
		widths[k] = 100
	}
	return cols, widths
}

func testLayout(cols int) Layout {
	keys := make([]string, cols)
	for i := range keys {
		keys[i] = "c" + strconv.Itoa(i)
	}
	c, w := testColumns(keys...)
	return Layout{
		Columns:   c,
		Widths:    w,
		RowHeight: 20,
		Viewport:  Viewport{Width: 400, Height: 200},
	}
}

// table is an in-memory host recording every call the engine makes.
type table struct {
	BaseCollaborators

	cells    map[[2]int]string
	readonly map[[2]int]bool

	writes     [][2]int
	deleted    [][]int
	events     [][]EditEvent
	history    [][]HistoryEntry
	scrolledBy [][2]int
	revealed   []Rect

	resolve func(x, y float64) (Point, bool)
}

func newTable(rows, cols int) *table {
	t := &table{cells: map[[2]int]string{}, readonly: map[[2]int]bool{}}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t.cells[[2]int{r, c}] = strconv.Itoa(r) + ":" + strconv.Itoa(c)
		}
	}
	return t
}

func (t *table) ReadCell(row, col int) any {
	v, ok := t.cells[[2]int{row, col}]
	if !ok {
		return nil
	}
	return v
}

func (t *table) WriteCell(row, col int, value any) bool {
	k := [2]int{row, col}
	v := FormatCell(value)
	if t.cells[k] == v {
		return false
	}
	t.cells[k] = v
	t.writes = append(t.writes, k)
	return true
}

func (t *table) Editable(row, col int) bool {
	return !t.readonly[[2]int{row, col}]
}

func (t *table) DeleteRows(rows []int) {
	t.deleted = append(t.deleted, append([]int(nil), rows...))
}

func (t *table) RecordHistory(entries []HistoryEntry) {
	t.history = append(t.history, entries)
}

func (t *table) DispatchEditEvents(events []EditEvent) {
	t.events = append(t.events, events)
}

func (t *table) ResolveCell(x, y float64) (Point, bool) {
	if t.resolve == nil {
		return Point{}, false
	}
	return t.resolve(x, y)
}

func (t *table) ScrollBy(dx, dy int) {
	t.scrolledBy = append(t.scrolledBy, [2]int{dx, dy})
}

func (t *table) ScrollIntoView(r Rect) {
	t.revealed = append(t.revealed, r)
}

// countingRecorder counts what the engine records.
type countingRecorder struct {
	computed map[Concern]int
	applied  int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{computed: map[Concern]int{}}
}

func (r *countingRecorder) OverlayComputed(c Concern, _ time.Duration) { r.computed[c]++ }
func (r *countingRecorder) StateApplied()                              { r.applied++ }

func pt(row, col int) Point { return Point{Row: row, Col: col} }
