// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/fixclaims/pkg/text"
)

// 🎯 Logger writes human-readable patch results to a console and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n", color.GreenString("✓"), msg)
	l.zlog.Debug().Msg(msg)
}

// 📝 Failure logs a failure message
func (l *Logger) Failure(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n", color.RedString("✗"), msg)
	l.zlog.Debug().Msg(msg)
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Failuref logs a formatted failure message
func (l *Logger) Failuref(format string, args ...interface{}) {
	l.Failure(fmt.Sprintf(format, args...))
}

// 📝 Excerpt prints the location of a marker hit followed by its numbered window
func (l *Logger) Excerpt(ex text.Excerpt) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "Found at line %d\n", ex.Line)
	for _, line := range ex.Lines {
		num := fmt.Sprintf("%d:", line.Number)
		if line.Number == ex.Line {
			num = color.New(color.Bold).Sprint(num)
		}
		fmt.Fprintf(l.console, "%s %s\n", num, line.Text)
	}

	l.zlog.Debug().
		Int("line", ex.Line).
		Int("context_lines", len(ex.Lines)).
		Msg("marker found")
}

// 📝 Diff prints a line diff between before and after, skipping unchanged lines
func (l *Logger) Diff(path string, before, after string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	fmt.Fprintf(l.console, "%s\n%s\n",
		color.New(color.Faint).Sprint("--- "+path),
		color.New(color.Faint).Sprint("+++ "+path))

	added, removed := 0, 0
	for _, d := range diffs {
		var prefix string
		var c *color.Color
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, c = "+", color.New(color.FgGreen)
		case diffmatchpatch.DiffDelete:
			prefix, c = "-", color.New(color.FgRed)
		default:
			continue
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintln(l.console, c.Sprint(prefix+strings.TrimSuffix(line, "\n")))
			if d.Type == diffmatchpatch.DiffInsert {
				added++
			} else {
				removed++
			}
		}
	}

	l.zlog.Debug().
		Str("file", path).
		Int("added", added).
		Int("removed", removed).
		Msg("diff")
}
