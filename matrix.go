package gridsel

// CellReader reads one cell value.
type CellReader interface {
	ReadCell(row, col int) any
}

// BuildSelectionMatrix reads bounds, or the whole grid when bounds is nil,
// into row-major strings. withHeader prepends a row of column labels.
func BuildSelectionMatrix(bounds *Area, g GridContext, cols []Column, read CellReader, withHeader bool) [][]string {
	if g.Empty() {
		return nil
	}
	a := Area{StartRow: 0, EndRow: g.LastRow(), StartCol: 0, EndCol: g.LastCol()}
	if bounds != nil {
		a = bounds.Clamp(g)
	}
	out := make([][]string, 0, a.Rows()+1)
	if withHeader {
		header := make([]string, 0, a.Cols())
		for col := a.StartCol; col <= a.EndCol; col++ {
			header = append(header, columnLabel(cols, col))
		}
		out = append(out, header)
	}
	for row := a.StartRow; row <= a.EndRow; row++ {
		line := make([]string, 0, a.Cols())
		for col := a.StartCol; col <= a.EndCol; col++ {
			line = append(line, FormatCell(read.ReadCell(row, col)))
		}
		out = append(out, line)
	}
	return out
}

// MatrixSize returns the row count and the widest row of m.
func MatrixSize(m [][]string) (rows, cols int) {
	for _, line := range m {
		cols = max(cols, len(line))
	}
	return len(m), cols
}

// PasteTarget decides where m lands. When the active range covers more than
// one cell and m fits inside it on both axes, the paste is constrained to
// that range. Otherwise it is m's own footprint anchored at base.
func PasteTarget(m [][]string, base Point, s State, g GridContext) (Area, bool) {
	rows, cols := MatrixSize(m)
	if rows == 0 || cols == 0 || g.Empty() {
		return Area{}, false
	}
	if r, ok := s.Active(); ok && !r.IsSingleCell() {
		a := r.Area()
		if rows <= a.Rows() && cols <= a.Cols() {
			return a, true
		}
	}
	b := ClampPoint(base, g)
	return Area{
		StartRow: b.Row,
		EndRow:   min(b.Row+rows-1, g.LastRow()),
		StartCol: b.Col,
		EndCol:   min(b.Col+cols-1, g.LastCol()),
	}, true
}

// ApplyMatrixToSelection writes m into its paste target through collab as a
// single edit batch and returns the resulting selection. A target larger than
// m, which only happens when constrained to the selection, repeats m.
func ApplyMatrixToSelection(m [][]string, base Point, s State, g GridContext, cols []Column, collab Collaborators) (Range, int, error) {
	if collab == nil {
		return Range{}, 0, ErrNoCollaborator
	}
	target, ok := PasteTarget(m, base, s, g)
	if !ok {
		return Range{}, 0, nil
	}
	b := newEditBatch(EditPaste, g, cols, collab)
	writeMatrix(m, target, b)
	n := b.dispatch(target)

	result := CreateRange(
		Point{Row: target.StartRow, Col: target.StartCol},
		Point{Row: target.EndRow, Col: target.EndCol},
		g,
	)
	if r, ok := s.Active(); ok && r.Area() == target {
		result = CreateRange(r.Anchor, r.Focus, g)
	}
	return result, n, nil
}

func writeMatrix(m [][]string, target Area, b *editBatch) {
	rows := len(m)
	for row := target.StartRow; row <= target.EndRow; row++ {
		line := m[(row-target.StartRow)%rows]
		if len(line) == 0 {
			continue
		}
		for col := target.StartCol; col <= target.EndCol; col++ {
			i := (col - target.StartCol) % len(line)
			b.write(row, col, line[i])
		}
	}
}

func columnLabel(cols []Column, col int) string {
	if col < 0 || col >= len(cols) {
		return ""
	}
	if cols[col].Label != "" {
		return cols[col].Label
	}
	return cols[col].Key
}
