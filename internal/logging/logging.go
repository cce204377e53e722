// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package logging builds the zerolog logger shared by the CLI and the
// registry. Log events carry public keys and derivation paths only.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w at level. With pretty set the output is
// human readable console text, otherwise one JSON object per line.
func New(w io.Writer, level zerolog.Level, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Auto returns a logger on w that is pretty when w is a terminal and JSON
// otherwise.
func Auto(w io.Writer, level zerolog.Level) zerolog.Logger {
	pretty := false
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		pretty = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return New(w, level, pretty)
}
