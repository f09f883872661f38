package gridsel

// RemapState re-resolves every point of s against next by row identity.
// Points whose row is gone are dropped, as are ranges with a vanished
// endpoint. Points without an identity keep their index. The survivors go
// through NormalizeState so all invariants hold again.
func RemapState(s State, next GridContext) (State, int) {
	dropped := 0
	out := State{}

	active := -1
	for i, r := range s.Ranges {
		a, okA := remapPoint(r.Anchor, next)
		f, okF := remapPoint(r.Focus, next)
		if !okA || !okF {
			dropped++
			continue
		}
		if i == s.ActiveRangeIndex {
			active = len(out.Ranges)
		}
		out.Ranges = append(out.Ranges, Range{Anchor: a, Focus: f})
	}
	if active < 0 {
		active = len(out.Ranges) - 1
	}
	out.ActiveRangeIndex = max(active, 0)
	out.RowMode = s.RowMode

	remapOptional := func(p *Point) *Point {
		if p == nil {
			return nil
		}
		q, ok := remapPoint(*p, next)
		if !ok {
			dropped++
			return nil
		}
		return &q
	}
	out.SelectedPoint = remapOptional(s.SelectedPoint)
	out.AnchorPoint = remapOptional(s.AnchorPoint)
	out.DragAnchorPoint = remapOptional(s.DragAnchorPoint)

	norm := NormalizeState(out, next)
	if s.SelectedPoint != nil && out.SelectedPoint == nil {
		// The cursor's row is gone; normalising must not invent a new one.
		norm.SelectedPoint = nil
	}
	return norm, dropped
}

func remapPoint(p Point, next GridContext) (Point, bool) {
	if p.RowID == "" || next.RowIndexOf == nil {
		return p, true
	}
	idx, ok := next.rowIndex(p.RowID)
	if !ok {
		return Point{}, false
	}
	p.Row = idx
	return p, true
}
