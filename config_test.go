package gridsel

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestConfigDefaults(t *testing.T) {
	got := Config{Overscan: -3}.withDefaults()
	if got.IdleTimeout != 160*time.Millisecond {
		t.Errorf("expected 160ms, got %v", got.IdleTimeout)
	}
	if got.Overscan != 0 {
		t.Errorf("expected overscan clamped to 0, got %d", got.Overscan)
	}
	if got.Logger == nil || got.Metrics == nil {
		t.Error("expected logger and metrics defaults")
	}

	c := DefaultConfig().WithIdleTimeout(time.Second).WithAutoScroll(10, 4).WithOverscan(2)
	if c.IdleTimeout != time.Second || c.AutoScrollEdge != 10 || c.AutoScrollStep != 4 || c.Overscan != 2 {
		t.Errorf("unexpected config %+v", c)
	}
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder("gridsel", reg)
	rec.OverlayComputed(ConcernActive, time.Millisecond)
	rec.OverlayComputed(ConcernActive, time.Millisecond)
	rec.OverlayComputed(ConcernCut, time.Millisecond)
	rec.StateApplied()

	want := `
# HELP gridsel_overlay_recompute_total Overlay concern recomputations, by concern
# TYPE gridsel_overlay_recompute_total counter
gridsel_overlay_recompute_total{concern="active"} 2
gridsel_overlay_recompute_total{concern="cut"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "gridsel_overlay_recompute_total"); err != nil {
		t.Error(err)
	}
	n, err := testutil.GatherAndCount(reg, "gridsel_state_apply_total")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 apply series, got %d", n)
	}
}

func TestEngineLogsOverlayErrors(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	g := testGrid(10, 3)
	l := testLayout(3)
	h := NewManualHost()
	e, err := NewEngine(h, newTable(10, 3), g, l, DefaultConfig().WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	e.SelectCell(pt(1, 1))
	h.RunImmediate()
	if hook.LastEntry() == nil {
		t.Fatal("expected debug output")
	}

	// Drop a width binding behind the engine's back.
	delete(e.layout.Widths, "c1")
	e.layout.RowHeight = 30
	e.SelectCell(pt(2, 1))
	h.RunImmediate()

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected an error entry, got %+v", entry)
	}
	if entry.Message != "overlay not computed" {
		t.Errorf("unexpected message %q", entry.Message)
	}
}
