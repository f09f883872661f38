package gridsel

// CutPreview is what a pending cut shows: the cut areas and which one is active.
type CutPreview struct {
	Areas       []Area
	ActiveIndex int
}

// CutSnapshot is what a cut captured. When FullRows is set the cut removes
// those rows on commit instead of clearing cells.
type CutSnapshot struct {
	Areas       []Area
	ActiveIndex int
	FullRows    *RowSpan
}

// SnapshotForCut captures the current selection for a later cut commit.
func SnapshotForCut(s State, g GridContext) CutSnapshot {
	var snap CutSnapshot
	for _, r := range s.Ranges {
		snap.Areas = append(snap.Areas, r.Area())
	}
	snap.ActiveIndex = s.ActiveRangeIndex
	if rows, ok := s.FullRows(g); ok {
		snap.FullRows = &rows
	}
	return snap
}

type pendingCut struct {
	snapshot CutSnapshot
}

func (p *pendingCut) preview() *CutPreview {
	if p == nil || len(p.snapshot.Areas) == 0 {
		return nil
	}
	return &CutPreview{
		Areas:       p.snapshot.Areas,
		ActiveIndex: clamp(p.snapshot.ActiveIndex, 0, len(p.snapshot.Areas)-1),
	}
}

// writeCut clears every editable cell the snapshot covers.
func writeCut(snap CutSnapshot, b *editBatch) {
	for _, a := range snap.Areas {
		a = a.Clamp(b.grid)
		for row := a.StartRow; row <= a.EndRow; row++ {
			for col := a.StartCol; col <= a.EndCol; col++ {
				b.write(row, col, "")
			}
		}
	}
}
