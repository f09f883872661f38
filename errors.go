package gridsel

import "github.com/pkg/errors"

// Host contract errors. These are programmer errors on the host side and are
// returned, never swallowed.
var (
	// ErrNoColumnWidth indicates a column key with no entry in the width map.
	ErrNoColumnWidth = errors.New("column has no width binding")

	// ErrNoCollaborator indicates a commit path was reached without host callbacks.
	ErrNoCollaborator = errors.New("no collaborators bound")

	// ErrColumnMismatch indicates the layout and the grid disagree on column count.
	ErrColumnMismatch = errors.New("layout column count does not match grid")
)
