package gridsel

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds engine tunables. Start from DefaultConfig and chain With* calls.
type Config struct {
	// IdleTimeout bounds how long a background overlay request may wait for idle.
	IdleTimeout time.Duration

	// AutoScrollEdge is the distance from a viewport edge, in pixels, that
	// starts autoscroll during a drag.
	AutoScrollEdge float64

	// AutoScrollStep is how far one autoscroll frame scrolls, in pixels.
	AutoScrollStep int

	// Overscan is how many viewport heights above and below the visible one
	// overlay rectangles are kept for.
	Overscan int

	Logger  logrus.FieldLogger
	Metrics Recorder
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:    160 * time.Millisecond,
		AutoScrollEdge: 24,
		AutoScrollStep: 16,
		Overscan:       1,
		Logger:         discardLogger(),
		Metrics:        NewNopRecorder(),
	}
}

// WithIdleTimeout sets the background overlay timeout.
func (c Config) WithIdleTimeout(d time.Duration) Config {
	c.IdleTimeout = d
	return c
}

// WithAutoScroll sets the autoscroll edge distance and per-frame step.
func (c Config) WithAutoScroll(edge float64, step int) Config {
	c.AutoScrollEdge = edge
	c.AutoScrollStep = step
	return c
}

// WithOverscan sets how many extra viewport heights keep their rectangles.
func (c Config) WithOverscan(n int) Config {
	c.Overscan = n
	return c
}

// WithLogger sets the logger.
func (c Config) WithLogger(l logrus.FieldLogger) Config {
	c.Logger = l
	return c
}

// WithMetrics sets the metrics recorder.
func (c Config) WithMetrics(m Recorder) Config {
	c.Metrics = m
	return c
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.AutoScrollEdge <= 0 {
		c.AutoScrollEdge = d.AutoScrollEdge
	}
	if c.AutoScrollStep <= 0 {
		c.AutoScrollStep = d.AutoScrollStep
	}
	if c.Overscan < 0 {
		c.Overscan = 0
	}
	if c.Logger == nil {
		c.Logger = d.Logger
	}
	if c.Metrics == nil {
		c.Metrics = d.Metrics
	}
	return c
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
