package main

import (
	"fmt"
	"io"

	"github.com/kungfusheep/gridsel"
	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
)

// step is one scripted interaction.
type step struct {
	name string
	run  func(e *gridsel.Engine) error
}

// runScript plays a fixed session against the sheet and writes each commit,
// for terminals that cannot host the interactive grid and for smoke tests.
func runScript(w io.Writer, s *sheet, opts options, log logrus.FieldLogger) error {
	s.pin(opts.pinLeft, opts.pinRight)
	s.viewport = gridsel.Viewport{Width: 80, Height: 20}
	host := gridsel.NewManualHost()
	e, err := gridsel.NewEngine(host, s, s.grid(), s.layout(), gridsel.DefaultConfig().WithLogger(log))
	if err != nil {
		return err
	}
	defer e.Close()
	s.engine = e

	var last gridsel.Commit
	commits := 0
	unsub := e.Subscribe(func(c gridsel.Commit) {
		last = c
		commits++
	})
	defer unsub()

	var clip [][]string
	steps := []step{
		{"select B2", func(e *gridsel.Engine) error {
			e.SelectCell(gridsel.Point{Row: 1, Col: 2})
			return nil
		}},
		{"drag to D4", func(e *gridsel.Engine) error {
			e.BeginCellDrag(gridsel.Point{Row: 1, Col: 2}, gridsel.DragReplace)
			e.DragTo(gridsel.Point{Row: 2, Col: 3})
			e.DragTo(gridsel.Point{Row: 3, Col: 4})
			return e.PointerUp()
		}},
		{"add F1", func(e *gridsel.Engine) error {
			e.AddRange(gridsel.Point{Row: 0, Col: 6}, gridsel.Point{Row: 0, Col: 6})
			return nil
		}},
		{"fill F1 down to F6", func(e *gridsel.Engine) error {
			if !e.BeginFillDrag() {
				return errors.New("no active range to fill from")
			}
			e.DragTo(gridsel.Point{Row: 5, Col: 6})
			return e.PointerUp()
		}},
		{"copy B2:D4", func(e *gridsel.Engine) error {
			e.SelectCell(gridsel.Point{Row: 1, Col: 2})
			e.ExtendActive(gridsel.Point{Row: 3, Col: 4})
			clip = e.CopyMatrix(false)
			return nil
		}},
		{"paste at H10", func(e *gridsel.Engine) error {
			e.SelectCell(gridsel.Point{Row: 9, Col: 8})
			return e.Paste(clip)
		}},
		{"cut rows 3-5", func(e *gridsel.Engine) error {
			e.SelectRows(2, 4)
			e.CutSelection()
			return e.CommitPendingCut()
		}},
		{"filter", func(e *gridsel.Engine) error {
			e.SelectCell(gridsel.Point{Row: 4, Col: 1})
			s.toggleFilter()
			return nil
		}},
	}

	for i, st := range steps {
		if err := st.run(e); err != nil {
			return errors.Wrapf(err, "step %q", st.name)
		}
		host.RunFrame()
		host.RunIdle()
		e.Flush()

		js, err := last.Snapshot.MarshalIndent()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "== %d. %s (changed: %s, status: %q)\n%s\n", i+1, st.name, last.Changed, s.status, js)
		log.WithFields(logrus.Fields{"step": st.name, "commits": commits}).Debug("step done")
	}

	fmt.Fprintln(w, "== overlay")
	fmt.Fprintln(w, litter.Options{HidePrivateFields: true, Compact: false}.Sdump(last.Overlay))
	fmt.Fprintf(w, "== history: %d entries, %d commits\n", len(s.history), commits)
	return nil
}
