package gridsel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func without(ids []string, drop string) []string {
	var out []string
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

func TestRemapState(t *testing.T) {
	ids := []string{"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8", "r9"}
	before := gridOf(ids, 4)
	after := gridOf(without(ids, "r5"), 4)

	t.Run("drops ranges touching a removed row", func(t *testing.T) {
		s := State{
			Ranges: []Range{
				CreateRange(pt(5, 0), pt(5, 1), before),
				CreateRange(pt(6, 2), pt(6, 2), before),
			},
			ActiveRangeIndex: 1,
		}
		got, dropped := RemapState(s, after)
		if dropped != 1 {
			t.Errorf("expected 1 dropped, got %d", dropped)
		}
		if len(got.Ranges) != 1 {
			t.Fatalf("expected 1 range, got %d", len(got.Ranges))
		}
		r := got.Ranges[0]
		want := Point{Row: 5, Col: 2, RowID: "r6"}
		if diff := cmp.Diff(want, r.Anchor); diff != "" {
			t.Errorf("anchor mismatch (-want +got):\n%s", diff)
		}
		if got.ActiveRangeIndex != 0 {
			t.Errorf("expected active index 0, got %d", got.ActiveRangeIndex)
		}
	})

	t.Run("active falls back to last survivor", func(t *testing.T) {
		s := State{
			Ranges: []Range{
				CreateRange(pt(1, 0), pt(2, 0), before),
				CreateRange(pt(8, 0), pt(9, 0), before),
				CreateRange(pt(4, 0), pt(5, 0), before),
			},
			ActiveRangeIndex: 2,
		}
		got, _ := RemapState(s, after)
		if len(got.Ranges) != 2 {
			t.Fatalf("expected 2 ranges, got %d", len(got.Ranges))
		}
		if got.ActiveRangeIndex != 1 {
			t.Errorf("expected active index 1, got %d", got.ActiveRangeIndex)
		}
		want := Area{StartRow: 7, EndRow: 8, StartCol: 0, EndCol: 0}
		if got.Ranges[1].Area() != want {
			t.Errorf("expected %+v, got %+v", want, got.Ranges[1].Area())
		}
	})

	t.Run("cursor on removed row is dropped", func(t *testing.T) {
		s := SingleRangeState(CreateRange(pt(2, 0), pt(7, 0), before))
		p := Point{Row: 5, Col: 0, RowID: "r5"}
		s.SelectedPoint = &p
		got, dropped := RemapState(s, after)
		if dropped != 1 {
			t.Errorf("expected 1 dropped, got %d", dropped)
		}
		if got.SelectedPoint != nil {
			t.Errorf("expected no cursor, got %+v", got.SelectedPoint)
		}
		if len(got.Ranges) != 1 {
			t.Errorf("expected the range kept, got %d", len(got.Ranges))
		}
	})

	t.Run("cursor dropped with its active range", func(t *testing.T) {
		s := State{
			Ranges: []Range{
				CreateRange(pt(6, 0), pt(6, 0), before),
				CreateRange(pt(5, 1), pt(5, 1), before),
			},
			ActiveRangeIndex: 1,
		}
		p := Point{Row: 5, Col: 1, RowID: "r5"}
		s.SelectedPoint = &p
		got, _ := RemapState(s, after)
		if len(got.Ranges) != 1 || got.ActiveRangeIndex != 0 {
			t.Fatalf("expected the surviving range active, got %+v", got)
		}
		if got.SelectedPoint != nil {
			t.Errorf("expected no cursor, got %+v", got.SelectedPoint)
		}
	})

	t.Run("missing cursor is defaulted", func(t *testing.T) {
		s := State{Ranges: []Range{CreateRange(pt(6, 0), pt(7, 0), before)}}
		got, _ := RemapState(s, after)
		want := Point{Row: 6, Col: 0, RowID: "r7"}
		if diff := cmp.Diff(&want, got.SelectedPoint); diff != "" {
			t.Errorf("cursor mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rows reordered", func(t *testing.T) {
		reversed := make([]string, len(ids))
		for i, id := range ids {
			reversed[len(ids)-1-i] = id
		}
		s := SingleRangeState(CreateRange(pt(1, 0), pt(3, 2), before))
		got, _ := RemapState(s, gridOf(reversed, 4))
		want := Area{StartRow: 6, EndRow: 8, StartCol: 0, EndCol: 2}
		if got.Ranges[0].Area() != want {
			t.Errorf("expected %+v, got %+v", want, got.Ranges[0].Area())
		}
	})

	t.Run("points without identity keep their index", func(t *testing.T) {
		s := State{Ranges: []Range{{Anchor: pt(2, 1), Focus: pt(3, 1)}}}
		got, dropped := RemapState(s, after)
		if dropped != 0 || got.Ranges[0].StartRow != 2 {
			t.Errorf("expected range kept at row 2, got %+v (dropped %d)", got.Ranges[0].Area(), dropped)
		}
	})
}
