// seehuhn.de/go/bquad - partition vector paths for GPU rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package bquad

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// nopHandler discards all log records.  Enabled reports false, so callers
// skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger.  It is the only state shared between
// instances of the builder types.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by this package.
// By default no log output is produced.  Pass nil to restore the default.
//
// Log levels:
//   - [slog.LevelDebug]: per-pass statistics (segment, quad and vertex counts)
//   - [slog.LevelWarn]: rejected input (invalid indices or ranges)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// LogEnv is the environment variable read by InitEnvLogger.
const LogEnv = "BQUAD_LOG"

var envLoggerOnce sync.Once

// InitEnvLogger installs a text logger on stderr whose level is taken from
// the BQUAD_LOG environment variable ("debug", "info", "warn" or "error";
// unset means "error").  Only the first call has an effect.  The return
// value reports whether this call installed a logger.
func InitEnvLogger() bool {
	ok := false
	envLoggerOnce.Do(func() {
		var level slog.Level
		if s := strings.TrimSpace(os.Getenv(LogEnv)); s != "" {
			if err := level.UnmarshalText([]byte(s)); err != nil {
				return
			}
		} else {
			level = slog.LevelError
		}
		SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
		ok = true
	})
	return ok
}
