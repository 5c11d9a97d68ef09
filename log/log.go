// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package log is the structured, key/value logger used across this tree,
// in place of fmt.Printf debugging. It mirrors the call shape of
// go-ethereum's log package (Debug/Info/Warn/Error/Crit(msg, "k", v, ...))
// so call sites read the same way they do in the teacher codebase. Levels
// use the standard library's slog.Level type; every line is logfmt-encoded,
// and on a color-capable terminal only the level field is colored.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-logfmt/logfmt"
	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var root = New(os.Stderr)

// Logger writes leveled, key/value annotated lines to an underlying writer.
type Logger struct {
	out   io.Writer
	color bool
}

// New creates a Logger writing to w, auto-detecting ANSI color support the
// same way go-ethereum's terminal handler does (isatty + go-colorable).
func New(w io.Writer) *Logger {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		if color {
			w = colorable.NewColorable(f)
		}
	}
	return &Logger{out: w, color: color}
}

// Root returns the package-level default logger, mirroring log.Root() in
// go-ethereum's log package.
func Root() *Logger { return root }

// SetOutput redirects the default logger to w, e.g. a file instead of
// stderr.
func SetOutput(w io.Writer) { root = New(w) }

func (l *Logger) log(level slog.Level, msg string, ctx []interface{}) {
	var buf fmtBuffer
	enc := logfmt.NewEncoder(&buf)
	enc.EncodeKeyval("t", nowRFC3339())
	enc.EncodeKeyval("lvl", levelString(level, l.color))
	enc.EncodeKeyval("msg", msg)
	for i := 0; i+1 < len(ctx); i += 2 {
		enc.EncodeKeyval(fmt.Sprint(ctx[i]), ctx[i+1])
	}
	if level >= levelCrit {
		enc.EncodeKeyval("caller", stack.Caller(2).String())
	}
	enc.EndRecord()
	io.WriteString(l.out, buf.String()+"\n")
}

// The standard six levels used throughout the teacher's call sites.
const (
	levelTrace = slog.Level(-8)
	levelDebug = slog.LevelDebug
	levelInfo  = slog.LevelInfo
	levelWarn  = slog.LevelWarn
	levelError = slog.LevelError
	levelCrit  = slog.Level(12)
)

func (l *Logger) Trace(msg string, ctx ...interface{}) { l.log(levelTrace, msg, ctx) }
func (l *Logger) Debug(msg string, ctx ...interface{}) { l.log(levelDebug, msg, ctx) }
func (l *Logger) Info(msg string, ctx ...interface{})  { l.log(levelInfo, msg, ctx) }
func (l *Logger) Warn(msg string, ctx ...interface{})  { l.log(levelWarn, msg, ctx) }
func (l *Logger) Error(msg string, ctx ...interface{}) { l.log(levelError, msg, ctx) }
func (l *Logger) Crit(msg string, ctx ...interface{})  { l.log(levelCrit, msg, ctx) }

func Trace(msg string, ctx ...interface{}) { root.log(levelTrace, msg, ctx) }
func Debug(msg string, ctx ...interface{}) { root.log(levelDebug, msg, ctx) }
func Info(msg string, ctx ...interface{})  { root.log(levelInfo, msg, ctx) }
func Warn(msg string, ctx ...interface{})  { root.log(levelWarn, msg, ctx) }
func Error(msg string, ctx ...interface{}) { root.log(levelError, msg, ctx) }
func Crit(msg string, ctx ...interface{})  { root.log(levelCrit, msg, ctx) }

func levelString(l slog.Level, color bool) string {
	var s string
	switch {
	case l < levelDebug:
		s = "trce"
	case l < levelInfo:
		s = "dbug"
	case l < levelWarn:
		s = "info"
	case l < levelError:
		s = "warn"
	case l < levelCrit:
		s = "eror"
	default:
		s = "crit"
	}
	if !color {
		return s
	}
	switch s {
	case "warn":
		return "[33m" + s + "[0m"
	case "eror", "crit":
		return "[31m" + s + "[0m"
	default:
		return s
	}
}
