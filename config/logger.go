// SPDX-License-Identifier: MIT
package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"
)

// NewLogger returns a text logger at the configured level. With a File set,
// records go to a rotating log file; otherwise they go to stderr.
// The returned closer releases the file and is never nil.
func (l LogConfig) NewLogger() (*slog.Logger, io.Closer, error) {
	lvl, err := l.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if l.File != "" {
		lj := &lumberjack.Logger{
			Filename: l.File,
			MaxSize:  l.MaxSize, // megabytes
			MaxAge:   l.MaxAge,  // days
		}
		w, closer = lj, lj
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})

	return slog.New(h), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
