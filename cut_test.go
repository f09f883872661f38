package gridsel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSnapshotForCut(t *testing.T) {
	g := testGrid(10, 4)

	t.Run("full rows", func(t *testing.T) {
		snap := SnapshotForCut(RowSelectionState(2, 4, g), g)
		if snap.FullRows == nil {
			t.Fatal("expected full rows")
		}
		if diff := cmp.Diff([]int{2, 3, 4}, snap.FullRows.Lines()); diff != "" {
			t.Errorf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("cells spanning every column", func(t *testing.T) {
		snap := SnapshotForCut(SingleRangeState(RangeForRows(2, 4, g)), g)
		if snap.FullRows != nil {
			t.Error("expected a cell cut without row mode")
		}
	})

	t.Run("cells", func(t *testing.T) {
		s := SingleRangeState(CreateRange(pt(1, 1), pt(2, 2), g))
		s.Ranges = append(s.Ranges, CreateRange(pt(5, 0), pt(5, 0), g))
		s.ActiveRangeIndex = 1
		snap := SnapshotForCut(s, g)
		if snap.FullRows != nil {
			t.Error("expected no full rows")
		}
		want := []Area{{StartRow: 1, EndRow: 2, StartCol: 1, EndCol: 2}, {StartRow: 5, EndRow: 5, StartCol: 0, EndCol: 0}}
		if diff := cmp.Diff(want, snap.Areas); diff != "" {
			t.Errorf("areas mismatch (-want +got):\n%s", diff)
		}
		if snap.ActiveIndex != 1 {
			t.Errorf("expected active index 1, got %d", snap.ActiveIndex)
		}
	})
}

func TestPendingCutPreview(t *testing.T) {
	var p *pendingCut
	if p.preview() != nil {
		t.Error("expected nil preview from nil cut")
	}
	p = &pendingCut{snapshot: CutSnapshot{Areas: []Area{{}}, ActiveIndex: 4}}
	if got := p.preview(); got == nil || got.ActiveIndex != 0 {
		t.Errorf("expected clamped active index, got %+v", got)
	}
}

func TestWriteCut(t *testing.T) {
	g := testGrid(4, 3)
	tbl := newTable(4, 3)
	cols, _ := testColumns("a", "b", "c")
	tbl.readonly[[2]int{1, 1}] = true

	b := newEditBatch(EditCut, g, cols, tbl)
	writeCut(CutSnapshot{Areas: []Area{{StartRow: 0, EndRow: 1, StartCol: 0, EndCol: 1}}}, b)
	n := b.dispatch(Area{})

	if n != 3 {
		t.Errorf("expected 3 cleared cells, got %d", n)
	}
	if tbl.cells[[2]int{1, 1}] != "1:1" {
		t.Error("expected read-only cell kept")
	}
	if tbl.cells[[2]int{0, 0}] != "" {
		t.Errorf("expected cleared cell, got %q", tbl.cells[[2]int{0, 0}])
	}
	for _, ev := range tbl.events[0] {
		if ev.Source != EditCut {
			t.Errorf("expected cut source, got %s", ev.Source)
		}
	}
}
