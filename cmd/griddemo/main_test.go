package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kungfusheep/gridsel"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScript(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := newSheet(30, 8)
	var out bytes.Buffer

	require.NoError(t, runScript(&out, s, options{pinLeft: 1, pinRight: 1}, log))

	text := out.String()
	assert.Contains(t, text, "== 1. select B2")
	assert.Contains(t, text, "== 8. filter")
	assert.Contains(t, text, "== overlay")
	assert.Len(t, s.ids, 27, "rows 3-5 are cut")
	assert.NotEmpty(t, s.history)
}

func TestColumnName(t *testing.T) {
	tests := map[int]string{0: "A", 25: "Z", 26: "AA", 27: "AB", 701: "ZZ", 702: "AAA"}
	for in, want := range tests {
		assert.Equal(t, want, columnName(in), "column %d", in)
	}
}

func TestSheetColumnSpans(t *testing.T) {
	s := newSheet(5, 4)
	s.pin(1, 1)
	s.viewport.Width = 40
	spans := s.columnSpans()

	// gutter and A pinned left, D pinned right, B and C scroll between.
	assert.Equal(t, 0, spans[0].lo)
	assert.Equal(t, gutterWidth, spans[1].x0)
	assert.Equal(t, 40-columnWidth, spans[4].x0)
	assert.Equal(t, 2, s.colAt(gutterWidth+columnWidth+1))
}

func TestSheetResolveCell(t *testing.T) {
	s := newSheet(50, 4)
	s.pin(0, 0)
	s.viewport = gridsel.Viewport{Width: 40, Height: 10, ScrollTop: 5}

	p, ok := s.ResolveCell(gutterWidth+1, 3)
	require.True(t, ok)
	assert.Equal(t, 8, p.Row)
	assert.Equal(t, 1, p.Col)

	p, _ = s.ResolveCell(gutterWidth+1, -2)
	assert.Equal(t, 4, p.Row, "above the viewport resolves to the row before it")
}

func TestNewLoggerBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "demo.log")
	_, _, err := newLogger(options{logPath: path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log "+path)
	var pathErr *os.PathError
	assert.ErrorAs(t, errors.Cause(err), &pathErr)
}
