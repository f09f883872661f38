package gridsel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeState(t *testing.T) {
	g := testGrid(5, 3)

	t.Run("empty grid clears", func(t *testing.T) {
		s := SingleRangeState(CreateRange(pt(1, 1), pt(2, 2), g))
		got := NormalizeState(s, GridContext{})
		if diff := cmp.Diff(State{}, got); diff != "" {
			t.Errorf("state mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("clamps active index", func(t *testing.T) {
		s := State{
			Ranges:           []Range{{Anchor: pt(0, 0), Focus: pt(0, 0)}, {Anchor: pt(1, 1), Focus: pt(2, 2)}},
			ActiveRangeIndex: 7,
		}
		got := NormalizeState(s, g)
		if got.ActiveRangeIndex != 1 {
			t.Errorf("expected active index 1, got %d", got.ActiveRangeIndex)
		}
	})

	t.Run("rebuilds bounds from anchor and focus", func(t *testing.T) {
		s := State{Ranges: []Range{{StartRow: 99, Anchor: pt(9, 9), Focus: pt(1, 0)}}}
		got := NormalizeState(s, g)
		want := Area{StartRow: 1, EndRow: 4, StartCol: 0, EndCol: 2}
		if got.Ranges[0].Area() != want {
			t.Errorf("expected %+v, got %+v", want, got.Ranges[0].Area())
		}
	})

	t.Run("cursor defaults to active focus", func(t *testing.T) {
		s := State{Ranges: []Range{{Anchor: pt(0, 0), Focus: pt(3, 2)}}}
		got := NormalizeState(s, g)
		want := Point{Row: 3, Col: 2, RowID: "r3"}
		if diff := cmp.Diff(&want, got.SelectedPoint); diff != "" {
			t.Errorf("cursor mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("clamps optional points", func(t *testing.T) {
		p := pt(40, -2)
		got := NormalizeState(State{AnchorPoint: &p}, g)
		want := Point{Row: 4, Col: 0, RowID: "r4"}
		if diff := cmp.Diff(&want, got.AnchorPoint); diff != "" {
			t.Errorf("anchor mismatch (-want +got):\n%s", diff)
		}
		if got.SelectedPoint != nil {
			t.Errorf("expected no cursor without ranges, got %v", got.SelectedPoint)
		}
	})

	t.Run("no ranges resets active index", func(t *testing.T) {
		got := NormalizeState(State{ActiveRangeIndex: 3}, g)
		if got.ActiveRangeIndex != 0 {
			t.Errorf("expected 0, got %d", got.ActiveRangeIndex)
		}
	})
}

func TestStateClone(t *testing.T) {
	g := testGrid(5, 3)
	s := SingleRangeState(CreateRange(pt(0, 0), pt(1, 1), g))
	c := s.Clone()

	c.Ranges[0].EndRow = 4
	c.SelectedPoint.Row = 4
	if s.Ranges[0].EndRow != 1 {
		t.Error("expected ranges to be copied")
	}
	if s.SelectedPoint.Row != 1 {
		t.Error("expected selected point to be copied")
	}
}

func TestStateFullSelections(t *testing.T) {
	g := testGrid(5, 3)

	s := RowSelectionState(1, 2, g)
	if rows, ok := s.FullRows(g); !ok || rows != (RowSpan{Start: 1, End: 2}) {
		t.Errorf("expected rows 1-2, got %+v %v", rows, ok)
	}
	if !NormalizeState(s, g).RowMode || !s.Clone().RowMode {
		t.Error("expected row mode kept through normalise and clone")
	}

	s = SingleRangeState(RangeForRows(1, 2, g))
	if _, ok := s.FullRows(g); ok {
		t.Error("expected full-width cells not to count as rows")
	}

	s = SingleRangeState(RangeForColumns(2, 2, g))
	if col, ok := s.FullColumn(g); !ok || col != 2 {
		t.Errorf("expected column 2, got %d %v", col, ok)
	}
}
