package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kungfusheep/gridsel"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"
)

const frameInterval = 16 * time.Millisecond

// class is what an overlay paints on a screen cell; higher wins.
type class uint8

const (
	classNone class = iota
	classRange
	classActive
	classFill
	classCut
	classCursor
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	gutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	classStyles = map[class]lipgloss.Style{
		classNone:   lipgloss.NewStyle(),
		classRange:  lipgloss.NewStyle().Background(lipgloss.Color("237")),
		classActive: lipgloss.NewStyle().Background(lipgloss.Color("24")),
		classFill:   lipgloss.NewStyle().Background(lipgloss.Color("58")),
		classCut:    lipgloss.NewStyle().Background(lipgloss.Color("52")).Faint(true),
		classCursor: lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15")).Bold(true),
	}
)

type frameMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

type model struct {
	sheet  *sheet
	engine *gridsel.Engine
	host   *gridsel.ManualHost

	snap gridsel.Snapshot
	clip [][]string
	err  error
}

func runInteractive(s *sheet, opts options, log logrus.FieldLogger) error {
	s.pin(opts.pinLeft, opts.pinRight)
	host := gridsel.NewManualHost()
	e, err := gridsel.NewEngine(host, s, s.grid(), s.layout(), gridsel.DefaultConfig().WithLogger(log))
	if err != nil {
		return err
	}
	defer e.Close()
	s.engine = e

	m := &model{sheet: s, engine: e, host: host}
	unsub := e.Subscribe(func(c gridsel.Commit) { m.snap = c.Snapshot })
	defer unsub()
	e.SelectCell(gridsel.Point{Row: 0, Col: 1})

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

func (m *model) Init() tea.Cmd {
	return tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.sheet.viewport.Width = msg.Width
		m.sheet.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.sheet.clampScroll()
		m.engine.SetViewport(m.sheet.viewport)
	case frameMsg:
		m.host.RunFrame()
		m.host.RunExpired()
		cmd = tick()
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		cmd = m.key(msg)
	}
	m.host.RunImmediate()
	return m, cmd
}

func (m *model) mouse(msg tea.MouseMsg) {
	e := m.engine
	x, y := float64(msg.X), float64(msg.Y-headerHeight)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.sheet.ScrollBy(0, -3)
		case tea.MouseButtonWheelDown:
			m.sheet.ScrollBy(0, 3)
		case tea.MouseButtonLeft:
			m.press(msg, x, y)
		}
	case tea.MouseActionMotion:
		e.PointerMove(x, y)
	case tea.MouseActionRelease:
		m.err = e.PointerUp()
	}
}

func (m *model) press(msg tea.MouseMsg, x, y float64) {
	e := m.engine
	if msg.Y < headerHeight {
		e.BeginColumnDrag(m.sheet.colAt(msg.X))
		return
	}
	p, ok := m.sheet.ResolveCell(x, y)
	if !ok {
		return
	}
	switch {
	case msg.X < gutterWidth:
		e.BeginRowDrag(p.Row)
	case msg.Alt:
		if e.BeginFillDrag() {
			e.DragTo(p)
		}
	case msg.Shift:
		e.BeginCellDrag(p, gridsel.DragExtend)
	case msg.Ctrl:
		e.BeginCellDrag(p, gridsel.DragAdd)
	default:
		e.BeginCellDrag(p, gridsel.DragReplace)
	}
}

func (m *model) key(msg tea.KeyMsg) tea.Cmd {
	e := m.engine
	m.err = nil
	switch msg.String() {
	case "q", "ctrl+q":
		return tea.Quit
	case "up":
		e.MoveCursor(-1, 0, false)
	case "down":
		e.MoveCursor(1, 0, false)
	case "left":
		e.MoveCursor(0, -1, false)
	case "right":
		e.MoveCursor(0, 1, false)
	case "shift+up":
		e.MoveCursor(-1, 0, true)
	case "shift+down":
		e.MoveCursor(1, 0, true)
	case "shift+left":
		e.MoveCursor(0, -1, true)
	case "shift+right":
		e.MoveCursor(0, 1, true)
	case "ctrl+a":
		e.SelectAll()
		return nil
	case "ctrl+c":
		m.clip = e.CopyMatrix(false)
		m.sheet.status = fmt.Sprintf("copied %dx%d", len(m.clip), rowWidth(m.clip))
		return nil
	case "ctrl+x":
		m.clip = e.CopyMatrix(false)
		e.CutSelection()
		return nil
	case "ctrl+v":
		m.err = e.Paste(m.clip)
		return nil
	case "ctrl+d":
		m.err = e.AutoFillDown()
		return nil
	case "esc":
		e.CancelDrag()
		e.ClearCutPreview()
		return nil
	case "f":
		m.sheet.toggleFilter()
		return nil
	default:
		return nil
	}
	e.ScrollActiveIntoView()
	return nil
}

func (m *model) View() string {
	s := m.sheet
	l := m.engine.Layout()
	w, h := l.Viewport.Width, l.Viewport.Height
	if w <= 0 || h <= 0 {
		return ""
	}
	spans := s.columnSpans()
	classes := m.paint(l)

	var out strings.Builder
	out.WriteString(m.header(spans, w))
	out.WriteByte('\n')

	start, end := gridsel.VisibleRows(l.Viewport, l.RowHeight, len(s.view))
	line := make([]rune, w)
	for y := 0; y < h; y++ {
		row := start + y
		for i := range line {
			line[i] = ' '
		}
		if row < end {
			for col, sp := range spans {
				drawText(line, sp, gridsel.FormatCell(s.ReadCell(row, col)))
			}
		}
		out.WriteString(renderRuns(line, classes[y*w:(y+1)*w], spans[0]))
		out.WriteByte('\n')
	}
	out.WriteString(m.footer(w))
	return out.String()
}

// paint marks every screen cell covered by an overlay rect.
func (m *model) paint(l gridsel.Layout) []class {
	w, h := l.Viewport.Width, l.Viewport.Height
	classes := make([]class, w*h)
	left, _, right := l.PinWidths()
	ov := m.engine.Overlay()
	mark := func(rects []*gridsel.Rect, c class) {
		for _, r := range rects {
			if r == nil {
				continue
			}
			v := l.ToViewport(*r)
			lo, hi := 0, w
			if v.Pin == gridsel.PinNone {
				lo, hi = left, w-right
			}
			for y := max(v.Top, 0); y < min(v.Bottom(), h); y++ {
				for x := max(v.Left, lo); x < min(v.Right(), hi); x++ {
					if i := y*w + x; classes[i] < c {
						classes[i] = c
					}
				}
			}
		}
	}
	mark(ov.Ranges, classRange)
	mark(ov.Active, classActive)
	mark(ov.Fill, classFill)
	mark(ov.Cut, classCut)
	mark([]*gridsel.Rect{ov.Cursor}, classCursor)
	return classes
}

func (m *model) header(spans []span, w int) string {
	line := make([]rune, w)
	for i := range line {
		line[i] = ' '
	}
	for col, sp := range spans {
		drawText(line, sp, m.sheet.cols[col].Label)
	}
	return headerStyle.Render(string(line))
}

func (m *model) footer(w int) string {
	snap := m.snap
	text := fmt.Sprintf(" %d ranges, %d cells", len(snap.Ranges), snap.CellCount())
	if snap.ActiveCell != nil {
		text += fmt.Sprintf(" | %s%d", columnName(snap.ActiveCell.Col-1), snap.ActiveCell.Row+1)
	}
	if _, ok := m.engine.CutPreview(); ok {
		text += " | cut pending"
	}
	if m.sheet.filtered {
		text += " | filtered"
	}
	if m.sheet.status != "" {
		text += " | " + m.sheet.status
	}
	text = runewidth.Truncate(text, w, "…")
	if m.err != nil {
		return errorStyle.Render(runewidth.Truncate(" "+m.err.Error(), w, "…"))
	}
	return statusStyle.Render(text)
}

// drawText writes text into the visible part of sp, leaving one cell of padding.
func drawText(line []rune, sp span, text string) {
	width := sp.x1 - sp.x0 - 1
	if width <= 0 {
		return
	}
	text = runewidth.FillRight(runewidth.Truncate(text, width, "…"), width)
	x := sp.x0
	for _, r := range text {
		if x >= sp.lo && x < sp.hi && x >= 0 && x < len(line) {
			line[x] = r
		}
		x += runewidth.RuneWidth(r)
	}
}

// renderRuns styles consecutive cells sharing a class as one string.
func renderRuns(line []rune, classes []class, gutter span) string {
	var b strings.Builder
	for start := 0; start < len(line); {
		end := start + 1
		for end < len(line) && classes[end] == classes[start] && (end < gutter.hi) == (start < gutter.hi) {
			end++
		}
		style := classStyles[classes[start]]
		if classes[start] == classNone && start < gutter.hi {
			style = gutterStyle
		}
		b.WriteString(style.Render(string(line[start:end])))
		start = end
	}
	return b.String()
}

func rowWidth(m [][]string) int {
	_, cols := gridsel.MatrixSize(m)
	return cols
}
