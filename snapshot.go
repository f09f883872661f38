package gridsel

import "encoding/json"

// Snapshot is the serializable view of a selection handed to outside
// consumers such as status bars or a sync server.
type Snapshot struct {
	Ranges      []Area `json:"ranges"`
	ActiveIndex int    `json:"activeIndex"`
	ActiveCell  *Point `json:"activeCell,omitempty"`
}

// SnapshotOf captures s.
func SnapshotOf(s State) Snapshot {
	snap := Snapshot{ActiveIndex: s.ActiveRangeIndex, Ranges: []Area{}}
	for _, r := range s.Ranges {
		snap.Ranges = append(snap.Ranges, r.Area())
	}
	if s.SelectedPoint != nil {
		p := *s.SelectedPoint
		snap.ActiveCell = &p
	}
	return snap
}

// CellCount returns the number of selected cells, counting overlaps once per range.
func (s Snapshot) CellCount() int {
	n := 0
	for _, a := range s.Ranges {
		n += a.Rows() * a.Cols()
	}
	return n
}

// MarshalIndent renders the snapshot as indented JSON.
func (s Snapshot) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
