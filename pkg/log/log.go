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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent = 4 // spaces to indent file entries
)

// 🎯 FileOperation represents the outcome for one file
type FileOperation struct {
	Path         string            // File path
	Status       status.FileStatus // Outcome
	Replacements int               // Number of replacements made
	Err          error             // Failure reason
}

// 📦 PassOperation describes a pass over a tree
type PassOperation struct {
	Root   string // Root directory
	Suffix string // Candidate suffix
	Rules  int    // Number of rules applied
	Check  bool   // Whether files are only checked, not written
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	formatter  status.FileFormatter
	mu         sync.Mutex
	currentOp  *PassOperation
	operations []FileOperation
}

// 🏭 New creates a new logger writing structured events to a console writer
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return NewWithLogger(console, zlog)
}

// 🏭 NewWithLogger creates a logger that sends structured events to zlog
func NewWithLogger(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFileFormatter(),
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

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	var label string
	switch op.Status {
	case status.StatusFailed:
		symbol = '✗'
		symbolColor = color.FgRed
		label = "Failed:"
	case status.StatusPending:
		symbol = '•'
		symbolColor = color.FgYellow
		label = "Would fix:"
	default:
		symbol = '⟳'
		symbolColor = color.FgBlue
		label = "Fixed:"
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		label,
		op.Path)

	switch {
	case op.Err != nil:
		line += color.New(color.Faint).Sprintf(" (%v)", op.Err)
	case op.Replacements == 1:
		line += color.New(color.Faint).Sprint(" (1 replacement)")
	case op.Replacements > 1:
		line += color.New(color.Faint).Sprintf(" (%d replacements)", op.Replacements)
	}
	return line
}

// 📝 LogFileOperation logs a file outcome. Unchanged files produce no
// console line.
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	if op.Status != status.StatusUnchanged {
		fmt.Fprintln(l.console, l.formatFileOperation(op))
	}

	l.zlog.Info().
		Str("file", op.Path).
		Str("status", op.Status.String()).
		Int("replacements", op.Replacements).
		AnErr("reason", op.Err).
		Msg("file operation")
}

// 📝 StartPass starts a new pass. Nothing is printed to the console until a
// file changes, so a pass with no matches prints only the completion line.
func (l *Logger) StartPass(ctx context.Context, op PassOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	l.zlog.Info().
		Str("root", op.Root).
		Str("suffix", op.Suffix).
		Int("rules", op.Rules).
		Bool("check", op.Check).
		Msg("starting pass")
}

// 📝 EndPass ends the current pass and prints the completion line
func (l *Logger) EndPass(ctx context.Context, summary status.Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := "Done! " + l.formatter.FormatSummary(summary)
	if summary.Failed > 0 {
		fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	} else {
		fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	}

	event := l.zlog.Info()
	if l.currentOp != nil {
		event = event.Str("root", l.currentOp.Root)
	}
	event.
		Int("files", len(l.operations)).
		Int("scanned", summary.Scanned).
		Int("modified", summary.Modified).
		Int("pending", summary.Pending).
		Int("failed", summary.Failed).
		Msg("pass complete")

	l.currentOp = nil
	l.operations = nil
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("rewriterc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
