package gridsel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFillDragAxisLock(t *testing.T) {
	g := testGrid(20, 10)

	t.Run("locks to dominant delta", func(t *testing.T) {
		f := NewFillDrag(CreateRange(pt(2, 2), pt(3, 3), g))
		if !f.Update(pt(8, 5), g) {
			t.Fatal("expected preview to change")
		}
		if f.Axis != AxisRow {
			t.Fatalf("expected row axis, got %s", f.Axis)
		}
		want := Area{StartRow: 2, EndRow: 8, StartCol: 2, EndCol: 3}
		if *f.Preview != want {
			t.Errorf("expected %+v, got %+v", want, *f.Preview)
		}

		// Later column movement does not switch the axis.
		f.Update(pt(4, 9), g)
		if f.Axis != AxisRow {
			t.Errorf("expected axis to stay row, got %s", f.Axis)
		}
		want = Area{StartRow: 2, EndRow: 4, StartCol: 2, EndCol: 3}
		if *f.Preview != want {
			t.Errorf("expected %+v, got %+v", want, *f.Preview)
		}
	})

	t.Run("column axis extending left", func(t *testing.T) {
		f := NewFillDrag(CreateRange(pt(2, 5), pt(2, 5), g))
		f.Update(pt(3, 1), g)
		if f.Axis != AxisCol {
			t.Fatalf("expected col axis, got %s", f.Axis)
		}
		want := Area{StartRow: 2, EndRow: 2, StartCol: 1, EndCol: 5}
		if *f.Preview != want {
			t.Errorf("expected %+v, got %+v", want, *f.Preview)
		}
	})

	t.Run("inside origin has no axis", func(t *testing.T) {
		f := NewFillDrag(CreateRange(pt(2, 2), pt(4, 4), g))
		f.Update(pt(3, 3), g)
		if f.Axis != AxisNone {
			t.Errorf("expected no axis, got %s", f.Axis)
		}
		if f.Meaningful() {
			t.Error("expected preview equal to origin to be meaningless")
		}
	})

	t.Run("repeated target is ignored", func(t *testing.T) {
		f := NewFillDrag(CreateRange(pt(0, 0), pt(0, 0), g))
		if !f.Update(pt(3, 0), g) {
			t.Fatal("expected first update to change")
		}
		if f.Update(pt(3, 0), g) {
			t.Error("expected duplicate target to be ignored")
		}
	})
}

func TestHasMeaningfulFillPreview(t *testing.T) {
	origin := Area{StartRow: 1, EndRow: 2, StartCol: 1, EndCol: 1}
	same := origin
	grown := Area{StartRow: 1, EndRow: 5, StartCol: 1, EndCol: 1}

	if HasMeaningfulFillPreview(origin, nil) {
		t.Error("expected nil preview to be meaningless")
	}
	if HasMeaningfulFillPreview(origin, &same) {
		t.Error("expected equal preview to be meaningless")
	}
	if !HasMeaningfulFillPreview(origin, &grown) {
		t.Error("expected grown preview to be meaningful")
	}
}

func TestFillSource(t *testing.T) {
	tests := []struct {
		line, want int
	}{
		{2, 2}, {3, 3},
		{4, 2}, {5, 3}, {6, 2},
		{1, 3}, {0, 2}, {-1, 3},
	}
	for _, tt := range tests {
		if got := fillSource(tt.line, 2, 3); got != tt.want {
			t.Errorf("fillSource(%d): expected %d, got %d", tt.line, tt.want, got)
		}
	}
}

func TestWriteFillRepeatsOrigin(t *testing.T) {
	g := testGrid(10, 3)
	tbl := newTable(10, 3)
	tbl.cells[[2]int{0, 1}] = "a"
	tbl.cells[[2]int{1, 1}] = "b"

	f := NewFillDrag(CreateRange(pt(0, 1), pt(1, 1), g))
	f.Update(pt(4, 1), g)

	cols, _ := testColumns("x", "y", "z")
	b := newEditBatch(EditFill, g, cols, tbl)
	writeFill(f, b)
	n := b.dispatch(*f.Preview)

	if n != 3 {
		t.Fatalf("expected 3 edits, got %d", n)
	}
	got := []string{tbl.cells[[2]int{2, 1}], tbl.cells[[2]int{3, 1}], tbl.cells[[2]int{4, 1}]}
	if diff := cmp.Diff([]string{"a", "b", "a"}, got); diff != "" {
		t.Errorf("filled values mismatch (-want +got):\n%s", diff)
	}
	if len(tbl.events) != 1 || len(tbl.history) != 1 {
		t.Errorf("expected one dispatch and one history entry, got %d and %d", len(tbl.events), len(tbl.history))
	}
}

func TestFillResultRange(t *testing.T) {
	g := testGrid(20, 10)

	t.Run("down", func(t *testing.T) {
		origin := CreateRange(pt(3, 2), pt(2, 2), g)
		r := fillResultRange(origin, Area{StartRow: 2, EndRow: 7, StartCol: 2, EndCol: 2}, g)
		if r.Anchor.Row != 2 || r.Focus.Row != 7 {
			t.Errorf("expected anchor row 2 focus row 7, got %d %d", r.Anchor.Row, r.Focus.Row)
		}
	})

	t.Run("up", func(t *testing.T) {
		origin := CreateRange(pt(5, 2), pt(6, 2), g)
		r := fillResultRange(origin, Area{StartRow: 1, EndRow: 6, StartCol: 2, EndCol: 2}, g)
		if r.Anchor.Row != 6 || r.Focus.Row != 1 {
			t.Errorf("expected anchor row 6 focus row 1, got %d %d", r.Anchor.Row, r.Focus.Row)
		}
	})

	t.Run("right keeps row direction", func(t *testing.T) {
		origin := CreateRange(pt(4, 1), pt(3, 1), g)
		r := fillResultRange(origin, Area{StartRow: 3, EndRow: 4, StartCol: 1, EndCol: 6}, g)
		if r.Anchor != (Point{Row: 4, Col: 1, RowID: "r4"}) || r.Focus != (Point{Row: 3, Col: 6, RowID: "r3"}) {
			t.Errorf("unexpected result anchor %+v focus %+v", r.Anchor, r.Focus)
		}
	})
}
