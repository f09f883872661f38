package gridsel

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Commit is what subscribers receive after an overlay pass: the applied
// selection, the overlay, which concerns changed and a serializable snapshot.
type Commit struct {
	State    State
	Overlay  Overlay
	Changed  Concern
	Snapshot Snapshot
}

// frame is the unit the state scheduler coalesces.
type frame struct {
	state State
	fill  *Area
	cut   *CutPreview
}

// Engine owns the selection of one grid instance. User input mutates the
// working state, a StateScheduler batches it into frame-aligned applies and
// an OverlayScheduler recomputes the overlay for what was applied. It is not
// safe for concurrent use; drive it from the host's event loop.
type Engine struct {
	cfg    Config
	log    logrus.FieldLogger
	host   Host
	collab Collaborators
	grid   GridContext
	layout Layout

	state   State
	session DragSession
	cut     *pendingCut

	states    *StateScheduler[frame]
	overlays  *OverlayScheduler
	priority  Priority
	pool      *RectPool
	overlay   *OverlayComputer
	committed frame
	observers observers[Commit]

	scroll  autoScroller
	measure measureTracker
}

// NewEngine creates an engine for grid and layout running on host.
// collab may be nil for read-only use; commit paths then return ErrNoCollaborator.
func NewEngine(host Host, collab Collaborators, grid GridContext, layout Layout, cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if len(layout.Columns) != grid.ColCount {
		return nil, errors.Wrapf(ErrColumnMismatch, "layout has %d columns, grid %d", len(layout.Columns), grid.ColCount)
	}
	e := &Engine{
		cfg:      cfg,
		log:      cfg.Logger,
		host:     host,
		collab:   collab,
		grid:     grid,
		layout:   layout,
		pool:     NewRectPool(),
		priority: PriorityBackground,
	}
	e.overlay = NewOverlayComputer(e.pool, cfg)
	e.states = NewStateScheduler(host, e.apply)
	e.overlays = NewOverlayScheduler(host, cfg.IdleTimeout, e.recompute)
	return e, nil
}

// Subscribe registers fn for every commit and returns an unsubscribe function.
func (e *Engine) Subscribe(fn func(Commit)) func() {
	return e.observers.Subscribe(fn)
}

// State returns a copy of the working selection, including unapplied changes.
func (e *Engine) State() State { return e.state.Clone() }

// Committed returns the last applied selection.
func (e *Engine) Committed() State { return e.committed.state.Clone() }

// Overlay returns the last committed overlay.
func (e *Engine) Overlay() Overlay { return e.overlay.Current() }

// Session returns the drag in progress, or nil.
func (e *Engine) Session() DragSession { return e.session }

// Grid returns the current grid context.
func (e *Engine) Grid() GridContext { return e.grid }

// Layout returns the current layout.
func (e *Engine) Layout() Layout { return e.layout }

// SetState replaces the selection. It is the one entry point every other
// selection change funnels through.
func (e *Engine) SetState(s State) {
	e.state = NormalizeState(s, e.grid)
	e.schedule(PriorityUserBlocking)
}

// SelectCell selects the single cell p.
func (e *Engine) SelectCell(p Point) {
	if e.grid.Empty() {
		return
	}
	p = ClampPoint(p, e.grid)
	e.SetState(SingleRangeState(CreateRange(p, p, e.grid)))
}

// AddRange adds a range from anchor to focus and makes it active.
func (e *Engine) AddRange(anchor, focus Point) {
	if e.grid.Empty() {
		return
	}
	s := e.state.Clone()
	s.RowMode = false
	r := CreateRange(anchor, focus, e.grid)
	s.Ranges = append(s.Ranges, r)
	s.ActiveRangeIndex = len(s.Ranges) - 1
	f := r.Focus
	a := r.Anchor
	s.SelectedPoint = &f
	s.AnchorPoint = &a
	e.SetState(s)
}

// ExtendActive moves the active range's focus to p, keeping its anchor.
// With no selection it selects p.
func (e *Engine) ExtendActive(p Point) {
	r, ok := e.state.Active()
	if !ok {
		e.SelectCell(p)
		return
	}
	s := e.state.Clone()
	s.RowMode = false
	s.Ranges[s.ActiveRangeIndex] = CreateRange(r.Anchor, p, e.grid)
	e.SetState(s)
}

// MoveCursor moves the active cell by (dRow, dCol). With extend set the
// active range's focus moves instead and the anchor stays.
func (e *Engine) MoveCursor(dRow, dCol int, extend bool) {
	r, ok := e.state.Active()
	if !ok {
		e.SelectCell(Point{})
		return
	}
	if extend {
		f := r.Focus
		e.ExtendActive(Point{Row: f.Row + dRow, Col: f.Col + dCol})
		return
	}
	from := r.Focus
	if e.state.SelectedPoint != nil {
		from = *e.state.SelectedPoint
	}
	e.SelectCell(Point{Row: from.Row + dRow, Col: from.Col + dCol})
}

// SelectAll selects every cell.
func (e *Engine) SelectAll() {
	if e.grid.Empty() {
		return
	}
	r := CreateRange(Point{}, Point{Row: e.grid.LastRow(), Col: e.grid.LastCol()}, e.grid)
	s := SingleRangeState(r)
	a := r.Anchor
	s.SelectedPoint = &a
	e.SetState(s)
}

// SelectRows selects whole rows from anchor to focus.
func (e *Engine) SelectRows(anchor, focus int) {
	if e.grid.Empty() {
		return
	}
	e.SetState(RowSelectionState(anchor, focus, e.grid))
}

// SelectColumns selects whole columns from anchor to focus.
func (e *Engine) SelectColumns(anchor, focus int) {
	if e.grid.Empty() {
		return
	}
	e.SetState(SingleRangeState(RangeForColumns(anchor, focus, e.grid)))
}

// Clear drops the selection.
func (e *Engine) Clear() {
	e.SetState(State{})
}

// BeginCellDrag starts a selection drag at p.
func (e *Engine) BeginCellDrag(p Point, mode DragMode) {
	if e.grid.Empty() {
		return
	}
	e.endSession()
	p = ClampPoint(p, e.grid)
	anchor := p
	s := e.state.Clone()
	s.RowMode = false
	switch mode {
	case DragAdd:
		s.Ranges = append(s.Ranges, CreateRange(p, p, e.grid))
		s.ActiveRangeIndex = len(s.Ranges) - 1
	case DragExtend:
		if r, ok := s.Active(); ok {
			anchor = r.Anchor
			s.Ranges[s.ActiveRangeIndex] = CreateRange(anchor, p, e.grid)
			break
		}
		s = SingleRangeState(CreateRange(p, p, e.grid))
	default:
		s = SingleRangeState(CreateRange(p, p, e.grid))
	}
	cursor := anchor
	s.SelectedPoint = &cursor
	s.AnchorPoint = &anchor
	s.DragAnchorPoint = &anchor

	d := &SelectionDrag{Anchor: anchor}
	d.advance(p)
	e.session = d
	e.log.WithFields(logrus.Fields{"session": d.Kind(), "row": p.Row, "col": p.Col}).Debug("drag started")
	e.SetState(s)
}

// BeginFillDrag starts a fill drag from the active range. It reports false
// when there is nothing to fill from.
func (e *Engine) BeginFillDrag() bool {
	r, ok := e.state.Active()
	if !ok {
		return false
	}
	e.endSession()
	e.session = NewFillDrag(r)
	e.log.WithField("session", SessionFill).Debug("drag started")
	return true
}

// BeginRowDrag starts a full-row selection drag at row.
func (e *Engine) BeginRowDrag(row int) {
	e.beginLineDrag(AxisRow, row)
}

// BeginColumnDrag starts a full-column selection drag at col.
func (e *Engine) BeginColumnDrag(col int) {
	e.beginLineDrag(AxisCol, col)
}

func (e *Engine) beginLineDrag(axis Axis, line int) {
	if e.grid.Empty() {
		return
	}
	e.endSession()
	if axis == AxisCol {
		line = clamp(line, 0, e.grid.LastCol())
	} else {
		line = clamp(line, 0, e.grid.LastRow())
	}
	d := &LineDrag{Axis: axis, Anchor: line}
	d.advance(line)
	e.session = d
	e.log.WithField("session", d.Kind()).Debug("drag started")
	e.SetState(e.lineState(d, line))
}

// PointerMove records the pointer position, in viewport space, and moves the
// drag target to the cell under it. Near a viewport edge it starts autoscroll.
func (e *Engine) PointerMove(x, y float64) {
	if e.session == nil {
		return
	}
	e.scroll.track(x, y)
	e.resolvePointer()
	e.maybeAutoscroll()
}

// DragTo moves the drag target to p directly, for hosts that resolve cells
// themselves.
func (e *Engine) DragTo(p Point) {
	if e.session == nil || e.grid.Empty() {
		return
	}
	p = ClampPoint(p, e.grid)
	switch d := e.session.(type) {
	case *SelectionDrag:
		if !d.advance(p) {
			return
		}
		s := e.state.Clone()
		s.RowMode = false
		if len(s.Ranges) == 0 {
			s = SingleRangeState(CreateRange(d.Anchor, p, e.grid))
		} else {
			s.Ranges[s.ActiveRangeIndex] = CreateRange(d.Anchor, p, e.grid)
		}
		e.SetState(s)
	case *FillDrag:
		if d.Update(p, e.grid) {
			e.schedule(PriorityUserBlocking)
		}
	case *LineDrag:
		line := d.lineOf(p)
		if !d.advance(line) {
			return
		}
		e.SetState(e.lineState(d, line))
	}
}

// lineState is the selection of a header drag from its anchor to line. Row
// header drags select in row mode.
func (e *Engine) lineState(d *LineDrag, line int) State {
	if d.Axis == AxisRow {
		return RowSelectionState(d.Anchor, line, e.grid)
	}
	return SingleRangeState(d.Range(line, e.grid))
}

// PointerUp ends the drag. A fill drag with a meaningful preview is
// committed through the host.
func (e *Engine) PointerUp() error {
	if e.session == nil {
		return nil
	}
	var err error
	switch d := e.session.(type) {
	case *SelectionDrag, *LineDrag:
	case *FillDrag:
		err = e.commitFill(d)
	}
	e.endSession()
	e.schedule(PriorityUserBlocking)
	return err
}

// CancelDrag abandons the drag without committing. Safe to call at any time.
func (e *Engine) CancelDrag() {
	if e.session == nil {
		return
	}
	e.endSession()
	e.schedule(PriorityUserBlocking)
}

func (e *Engine) endSession() {
	e.scroll.reset()
	if e.session == nil {
		return
	}
	e.log.WithField("session", e.session.Kind()).Debug("drag ended")
	e.session = nil
	e.state.DragAnchorPoint = nil
}

func (e *Engine) resolvePointer() {
	if e.collab == nil || !e.scroll.hasPointer {
		return
	}
	p, ok := e.collab.ResolveCell(e.scroll.x, e.scroll.y)
	if !ok {
		return
	}
	e.DragTo(p)
}

func (e *Engine) maybeAutoscroll() {
	dx, dy := e.scroll.delta(e.layout.Viewport, e.cfg.AutoScrollEdge, e.cfg.AutoScrollStep)
	if dx == 0 && dy == 0 {
		return
	}
	gen, ok := e.scroll.start()
	if !ok {
		return
	}
	e.scroll.frame = e.host.RequestFrame(func() { e.autoscrollFrame(gen) })
}

// autoscrollFrame scrolls one step and re-resolves the target from the last
// pointer position, so scrolling continues without new pointer events.
func (e *Engine) autoscrollFrame(gen uint64) {
	e.scroll.frame = nil
	if !e.scroll.valid(gen) || e.session == nil || e.collab == nil {
		e.scroll.active = false
		return
	}
	dx, dy := e.scroll.delta(e.layout.Viewport, e.cfg.AutoScrollEdge, e.cfg.AutoScrollStep)
	if dx == 0 && dy == 0 {
		e.scroll.active = false
		return
	}
	e.collab.ScrollBy(dx, dy)
	e.resolvePointer()
	if e.scroll.valid(gen) {
		e.scroll.frame = e.host.RequestFrame(func() { e.autoscrollFrame(gen) })
	}
}

// Autoscrolling reports whether an autoscroll loop is running.
func (e *Engine) Autoscrolling() bool {
	return e.scroll.active
}

// AutoFillDown fills the active range down to the last row.
func (e *Engine) AutoFillDown() error {
	r, ok := e.state.Active()
	if !ok {
		return nil
	}
	f := NewFillDrag(r)
	f.Axis = AxisRow
	f.Update(Point{Row: e.grid.LastRow(), Col: r.Focus.Col}, e.grid)
	err := e.commitFill(f)
	e.schedule(PriorityUserBlocking)
	return err
}

func (e *Engine) commitFill(f *FillDrag) error {
	if !f.Meaningful() {
		return nil
	}
	if e.collab == nil {
		return errors.Wrap(ErrNoCollaborator, "fill")
	}
	b := newEditBatch(EditFill, e.grid, e.layout.Columns, e.collab)
	writeFill(f, b)
	n := b.dispatch(*f.Preview)

	result := fillResultRange(f.Origin, *f.Preview, e.grid)
	s := e.state.Clone()
	s.RowMode = false
	if len(s.Ranges) == 0 {
		s = SingleRangeState(result)
	} else {
		s.Ranges[s.ActiveRangeIndex] = result
	}
	e.state = NormalizeState(s, e.grid)
	e.log.WithFields(logrus.Fields{"axis": f.Axis, "edits": n}).Debug("fill committed")
	return nil
}

// CutSelection captures the selection as a pending cut.
func (e *Engine) CutSelection() {
	if len(e.state.Ranges) == 0 {
		return
	}
	e.BeginCutPreview(SnapshotForCut(e.state, e.grid))
}

// BeginCutPreview stores snap as the pending cut and shows its preview.
// Nothing is changed until CommitPendingCut.
func (e *Engine) BeginCutPreview(snap CutSnapshot) {
	e.cut = &pendingCut{snapshot: snap}
	e.schedule(PriorityUserBlocking)
}

// CutPreview returns the pending cut's preview, if any.
func (e *Engine) CutPreview() (CutPreview, bool) {
	p := e.cut.preview()
	if p == nil {
		return CutPreview{}, false
	}
	return *p, true
}

// ClearCutPreview discards the pending cut without committing it.
func (e *Engine) ClearCutPreview() {
	if e.cut == nil {
		return
	}
	e.cut = nil
	e.schedule(PriorityUserBlocking)
}

// CommitPendingCut applies the pending cut: full-row cuts delete their rows
// through the host in one call, cell cuts clear every editable cell in one
// edit batch.
func (e *Engine) CommitPendingCut() error {
	return e.commitCut(nil)
}

func (e *Engine) commitCut(skip *Area) error {
	if e.cut == nil {
		return nil
	}
	if e.collab == nil {
		return errors.Wrap(ErrNoCollaborator, "cut")
	}
	snap := e.cut.snapshot
	e.cut = nil
	defer e.schedule(PriorityUserBlocking)

	if snap.FullRows != nil {
		rows := snap.FullRows.Lines()
		e.collab.DeleteRows(rows)
		e.log.WithField("rows", len(rows)).Debug("cut rows deleted")
		return nil
	}
	b := newEditBatch(EditCut, e.grid, e.layout.Columns, e.collab)
	b.skip = skip
	writeCut(snap, b)
	sel := Area{}
	if len(snap.Areas) > 0 {
		sel = snap.Areas[clamp(snap.ActiveIndex, 0, len(snap.Areas)-1)]
	}
	n := b.dispatch(sel)
	e.log.WithField("edits", n).Debug("cut committed")
	return nil
}

// CopyMatrix returns the active range, or the whole grid, as strings.
func (e *Engine) CopyMatrix(withHeader bool) [][]string {
	if e.collab == nil {
		return nil
	}
	var bounds *Area
	if r, ok := e.state.Active(); ok {
		a := r.Area()
		bounds = &a
	}
	return BuildSelectionMatrix(bounds, e.grid, e.layout.Columns, e.collab, withHeader)
}

// Paste writes m at the active cell and selects what it covered. A pending
// cut is committed afterwards, leaving the pasted cells alone.
func (e *Engine) Paste(m [][]string) error {
	if e.collab == nil {
		return errors.Wrap(ErrNoCollaborator, "paste")
	}
	base := Point{}
	if e.state.SelectedPoint != nil {
		base = *e.state.SelectedPoint
	} else if r, ok := e.state.Active(); ok {
		base = Point{Row: r.StartRow, Col: r.StartCol}
	}
	result, n, err := ApplyMatrixToSelection(m, base, e.state, e.grid, e.layout.Columns, e.collab)
	if err != nil {
		return err
	}
	rows, cols := MatrixSize(m)
	if rows == 0 || cols == 0 {
		return nil
	}
	e.log.WithFields(logrus.Fields{"rows": rows, "cols": cols, "edits": n}).Debug("paste applied")

	s := SingleRangeState(result)
	a := result.Anchor
	s.SelectedPoint = &a
	e.state = NormalizeState(s, e.grid)

	written := result.Area()
	if err := e.commitCut(&written); err != nil {
		return err
	}
	e.schedule(PriorityUserBlocking)
	return nil
}

// SetGrid replaces the grid context after the host's row list changed.
// The selection is re-resolved by row identity and rebuilt; a drag in
// progress and a pending cut are abandoned since their indexes are stale.
func (e *Engine) SetGrid(g GridContext) {
	e.grid = g
	e.endSession()
	e.cut = nil
	s, dropped := RemapState(e.state, g)
	e.state = s
	e.log.WithFields(logrus.Fields{"rows": g.RowCount, "dropped": dropped}).Debug("selection remapped")
	e.schedule(PriorityBackground)
}

// SetLayout replaces the column and row geometry.
func (e *Engine) SetLayout(l Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if len(l.Columns) != e.grid.ColCount {
		return errors.Wrapf(ErrColumnMismatch, "layout has %d columns, grid %d", len(l.Columns), e.grid.ColCount)
	}
	e.layout = l
	e.schedule(PriorityBackground)
	return nil
}

// SetViewport updates the viewport after a scroll or resize.
func (e *Engine) SetViewport(v Viewport) {
	if e.layout.Viewport == v {
		return
	}
	e.layout.Viewport = v
	e.overlays.Request(PriorityBackground)
}

// ScrollActiveIntoView asks the host to reveal the active range. When the
// host measures rendered geometry, only the newest measurement applies.
func (e *Engine) ScrollActiveIntoView() {
	r, ok := e.state.Active()
	if !ok || e.collab == nil {
		return
	}
	gen := e.measure.begin()
	if m, ok := e.collab.(Measurer); ok {
		h := m.Measure(r.Area(), func(rect Rect, ok bool) {
			if !ok || !e.measure.current(gen) {
				return
			}
			e.collab.ScrollIntoView(rect)
		})
		if e.measure.current(gen) {
			e.measure.track(h)
		}
		return
	}
	if rect, ok := e.overlay.Bounds(r.Area(), e.layout); ok {
		e.collab.ScrollIntoView(rect)
	}
}

// Flush applies pending state and recomputes the overlay immediately.
func (e *Engine) Flush() {
	e.states.Flush()
	if _, ok := e.overlays.Pending(); ok {
		e.overlays.Cancel()
		e.recompute()
	}
}

// Close cancels every pending callback and returns all rects to the pool.
// Safe to call more than once.
func (e *Engine) Close() {
	e.endSession()
	e.measure.cancel()
	e.states.Cancel()
	e.overlays.Cancel()
	e.overlay.Release()
	e.observers.clear()
}

func (e *Engine) schedule(p Priority) {
	if p < e.priority {
		e.priority = p
	}
	f := frame{state: e.state.Clone(), cut: e.cut.preview()}
	if d, ok := e.session.(*FillDrag); ok && d.Meaningful() {
		a := *d.Preview
		f.fill = &a
	}
	e.states.Schedule(f)
}

func (e *Engine) apply(f frame) {
	e.committed = f
	e.cfg.Metrics.StateApplied()
	p := e.priority
	e.priority = PriorityBackground
	e.overlays.Request(p)
}

func (e *Engine) recompute() {
	ov, changed, err := e.overlay.Compute(OverlayInput{
		Ranges:      e.committed.state.Ranges,
		ActiveIndex: e.committed.state.ActiveRangeIndex,
		Fill:        e.committed.fill,
		Cut:         e.committed.cut,
		Layout:      e.layout,
	})
	if err != nil {
		e.log.WithError(err).Error("overlay not computed")
		return
	}
	e.observers.notify(Commit{
		State:    e.committed.state.Clone(),
		Overlay:  ov,
		Changed:  changed,
		Snapshot: SnapshotOf(e.committed.state),
	})
}
