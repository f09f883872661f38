// griddemo: drives the selection engine from a terminal grid.
//
// Drag to select, shift-drag to extend, ctrl-drag to add a range, alt-drag
// from a selection to fill. Click the header to select columns and the
// gutter to select rows.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type options struct {
	rows     int
	cols     int
	pinLeft  int
	pinRight int
	logPath  string
	debug    bool
	script   bool
}

func main() {
	var opts options

	root := &cobra.Command{
		Use:   "griddemo",
		Short: "Interactive selection engine demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closeLog, err := newLogger(opts)
			if err != nil {
				return err
			}
			defer closeLog()

			sheet := newSheet(opts.rows, opts.cols)
			if opts.script || !term.IsTerminal(int(os.Stdout.Fd())) {
				return runScript(cmd.OutOrStdout(), sheet, opts, log)
			}
			return runInteractive(sheet, opts, log)
		},
	}
	root.Flags().IntVar(&opts.rows, "rows", 5000, "number of data rows")
	root.Flags().IntVar(&opts.cols, "cols", 12, "number of data columns")
	root.Flags().IntVar(&opts.pinLeft, "pin-left", 1, "data columns pinned to the left")
	root.Flags().IntVar(&opts.pinRight, "pin-right", 1, "data columns pinned to the right")
	root.Flags().StringVar(&opts.logPath, "log", "", "write engine logs to this file")
	root.Flags().BoolVar(&opts.debug, "debug", false, "log at debug level")
	root.Flags().BoolVar(&opts.script, "script", false, "run a scripted session and dump the result")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(opts options) (logrus.FieldLogger, func(), error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	if opts.debug {
		l.SetLevel(logrus.DebugLevel)
	}
	if opts.logPath == "" {
		if !opts.script {
			l.SetOutput(io.Discard)
		}
		return l, func() {}, nil
	}
	f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log %s", opts.logPath)
	}
	l.SetOutput(f)
	return l, func() { f.Close() }, nil
}
