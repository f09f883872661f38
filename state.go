package gridsel

// State is the selection of one grid instance. ActiveRangeIndex always
// indexes Ranges when Ranges is non-empty; the active range owns the cursor
// and the fill handle.
type State struct {
	Ranges           []Range `json:"ranges"`
	ActiveRangeIndex int     `json:"activeRangeIndex"`
	SelectedPoint    *Point  `json:"selectedPoint,omitempty"`
	AnchorPoint      *Point  `json:"anchorPoint,omitempty"`
	DragAnchorPoint  *Point  `json:"dragAnchorPoint,omitempty"`

	// RowMode is set when the selection was made from row headers. Only then
	// does a cut remove rows instead of clearing cells.
	RowMode bool `json:"rowMode,omitempty"`
}

// Active returns the active range.
func (s State) Active() (Range, bool) {
	if len(s.Ranges) == 0 {
		return Range{}, false
	}
	return s.Ranges[s.ActiveRangeIndex], true
}

// Empty reports whether nothing is selected.
func (s State) Empty() bool {
	return len(s.Ranges) == 0 && s.SelectedPoint == nil
}

// Clone returns a deep copy, so a scheduled copy cannot be changed by later
// in-place mutation of the working state.
func (s State) Clone() State {
	out := State{ActiveRangeIndex: s.ActiveRangeIndex, RowMode: s.RowMode}
	if len(s.Ranges) > 0 {
		out.Ranges = append([]Range(nil), s.Ranges...)
	}
	out.SelectedPoint = clonePoint(s.SelectedPoint)
	out.AnchorPoint = clonePoint(s.AnchorPoint)
	out.DragAnchorPoint = clonePoint(s.DragAnchorPoint)
	return out
}

// FullRows returns the rows selected when the state is one full-row range
// chosen from row headers. A cell selection that happens to span every
// column is not a row selection.
func (s State) FullRows(g GridContext) (RowSpan, bool) {
	if !s.RowMode {
		return RowSpan{}, false
	}
	return DetectFullRowSelection(s.Ranges, g)
}

// FullColumn returns the column selected when the state is one full-column range.
func (s State) FullColumn(g GridContext) (int, bool) {
	return DetectFullColumnSelectionIndex(s.Ranges, g)
}

// NormalizeState is the single entry point that (re)establishes every
// invariant: ranges are rebuilt from their anchor/focus against g, points are
// clamped and the active index is brought back into bounds. An empty grid
// clears the selection.
func NormalizeState(s State, g GridContext) State {
	if g.Empty() {
		return State{}
	}
	out := State{ActiveRangeIndex: s.ActiveRangeIndex}
	if len(s.Ranges) > 0 {
		out.Ranges = make([]Range, 0, len(s.Ranges))
		for _, r := range s.Ranges {
			out.Ranges = append(out.Ranges, CreateRange(r.Anchor, r.Focus, g))
		}
	}
	out.ActiveRangeIndex = clamp(out.ActiveRangeIndex, 0, len(out.Ranges)-1)
	if len(out.Ranges) == 0 {
		out.ActiveRangeIndex = 0
	} else {
		out.RowMode = s.RowMode
	}
	out.SelectedPoint = clampOptional(s.SelectedPoint, g)
	out.AnchorPoint = clampOptional(s.AnchorPoint, g)
	out.DragAnchorPoint = clampOptional(s.DragAnchorPoint, g)

	// A range without a cursor gets one at its focus so the active cell is
	// always resolvable.
	if out.SelectedPoint == nil {
		if r, ok := out.Active(); ok {
			p := r.Focus
			out.SelectedPoint = &p
		}
	}
	return out
}

// SingleRangeState returns the state selecting exactly r.
func SingleRangeState(r Range) State {
	focus := r.Focus
	anchor := r.Anchor
	return State{
		Ranges:        []Range{r},
		SelectedPoint: &focus,
		AnchorPoint:   &anchor,
	}
}

// RowSelectionState selects rows start..end as a row-header selection.
func RowSelectionState(start, end int, g GridContext) State {
	s := SingleRangeState(RangeForRows(start, end, g))
	s.RowMode = true
	return s
}

func clonePoint(p *Point) *Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func clampOptional(p *Point, g GridContext) *Point {
	if p == nil {
		return nil
	}
	c := ClampPoint(*p, g)
	return &c
}
