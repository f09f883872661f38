package gridsel

// FillDrag extends the origin range along one locked axis. The first
// movement outside the origin decides the axis; it never changes afterwards.
type FillDrag struct {
	Origin     Range
	OriginArea Area
	Preview    *Area
	Target     *Point
	Axis       Axis
}

func (*FillDrag) Kind() SessionKind { return SessionFill }
func (*FillDrag) dragSession()      {}

// NewFillDrag captures origin as the fill source.
func NewFillDrag(origin Range) *FillDrag {
	return &FillDrag{Origin: origin, OriginArea: origin.Area()}
}

// Update moves the fill target. It reports whether the preview changed.
// A target equal to the previous one, by row identity and column, is ignored.
func (f *FillDrag) Update(target Point, g GridContext) bool {
	if g.Empty() {
		return false
	}
	t := ClampPoint(target, g)
	if f.Target != nil && f.Target.Equal(t) {
		return false
	}
	f.Target = &t

	o := f.OriginArea
	dRow := outside(t.Row, o.StartRow, o.EndRow)
	dCol := outside(t.Col, o.StartCol, o.EndCol)
	if f.Axis == AxisNone {
		switch {
		case dRow > 0 && dRow >= dCol:
			f.Axis = AxisRow
		case dCol > 0:
			f.Axis = AxisCol
		}
	}

	next := o
	switch f.Axis {
	case AxisRow:
		next.StartRow = min(o.StartRow, t.Row)
		next.EndRow = max(o.EndRow, t.Row)
	case AxisCol:
		next.StartCol = min(o.StartCol, t.Col)
		next.EndCol = max(o.EndCol, t.Col)
	}
	if f.Preview != nil && *f.Preview == next {
		return false
	}
	f.Preview = &next
	return true
}

// Meaningful reports whether committing would write anything.
func (f *FillDrag) Meaningful() bool {
	return HasMeaningfulFillPreview(f.OriginArea, f.Preview)
}

// HasMeaningfulFillPreview reports whether preview differs from origin by value.
func HasMeaningfulFillPreview(origin Area, preview *Area) bool {
	return preview != nil && *preview != origin
}

// fillSource maps a destination line to the origin line it copies, repeating
// the origin cyclically away from it in either direction.
func fillSource(line, start, end int) int {
	n := end - start + 1
	switch {
	case line > end:
		return start + (line-end-1)%n
	case line < start:
		return end - (start-1-line)%n
	default:
		return line
	}
}

// writeFill replays origin values into every preview cell outside the origin.
func writeFill(f *FillDrag, b *editBatch) {
	if f.Preview == nil {
		return
	}
	o, p := f.OriginArea, *f.Preview
	for row := p.StartRow; row <= p.EndRow; row++ {
		for col := p.StartCol; col <= p.EndCol; col++ {
			if o.ContainsCell(row, col) {
				continue
			}
			srcRow := fillSource(row, o.StartRow, o.EndRow)
			srcCol := fillSource(col, o.StartCol, o.EndCol)
			b.write(row, col, b.collab.ReadCell(srcRow, srcCol))
		}
	}
}

// fillResultRange is the selection after a fill: the anchor stays on the
// origin edge facing away from the extension and the focus lands on the far
// edge of the preview.
func fillResultRange(origin Range, p Area, g GridContext) Range {
	o := origin.Area()
	anchor := origin.Anchor
	focus := origin.Focus
	switch {
	case p.EndRow > o.EndRow:
		anchor.Row, focus.Row = p.StartRow, p.EndRow
	case p.StartRow < o.StartRow:
		anchor.Row, focus.Row = p.EndRow, p.StartRow
	}
	switch {
	case p.EndCol > o.EndCol:
		anchor.Col, focus.Col = p.StartCol, p.EndCol
	case p.StartCol < o.StartCol:
		anchor.Col, focus.Col = p.EndCol, p.StartCol
	}
	return CreateRange(anchor, focus, g)
}

func outside(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	default:
		return 0
	}
}
