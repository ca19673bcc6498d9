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

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/morefs/pkg/morefs"
)

// 🎨 Display configuration
const (
	entryIndent = 4  // spaces to indent entry lines
	nameWidth   = 48 // Base width for the target path
	typeWidth   = 6  // Width for the entry type
)

// 🎯 Logger handles structured logging with console output. It is also a morefs.Observer: with
// verbose set it prints one line per replicated entry, and it always prints one line per tree.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	verbose bool
	mu      sync.Mutex
}

var _ morefs.Observer = (*Logger)(nil)

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return NewWithZerolog(console, zlog)
}

// NewWithZerolog creates a logger around an existing zerolog logger
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// SetVerbose turns per-entry lines on or off
func (l *Logger) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// Zerolog returns the structured logger behind l
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
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

// 🎯 NewContext adds the logger to context, along with its zerolog logger for zerolog.Ctx
func NewContext(ctx context.Context, l *Logger) context.Context {
	ctx = l.zlog.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatEntry formats one replicated entry for display
func formatEntry(entry morefs.Entry, target string, n int64) string {
	var symbol rune
	var symbolColor color.Attribute
	switch entry.Type {
	case morefs.EntryDirectory:
		symbol = '▸'
		symbolColor = color.FgBlue
	case morefs.EntryFile:
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '•'
		symbolColor = color.FgYellow
	}

	size := ""
	if !entry.IsDir() {
		size = humanize.Bytes(uint64(n))
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", entryIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, target),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", typeWidth, entry.Type)),
		size)
}

// 📝 EntryReplicated implements morefs.Observer
func (l *Logger) EntryReplicated(ctx context.Context, op morefs.Operation, entry morefs.Entry, target string, n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.verbose {
		fmt.Fprintln(l.console, formatEntry(entry, target, n))
	}

	l.zlog.Trace().
		Str("operation", op.String()).
		Str("source", entry.Path).
		Str("target", target).
		Str("type", entry.Type.String()).
		Int64("bytes", n).
		Msg("entry replicated")
}

// 📝 TreeReplicated implements morefs.Observer
func (l *Logger) TreeReplicated(ctx context.Context, op morefs.Operation, from, to string, n int64, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		fmt.Fprintf(l.console, "%s %s %s %s\n",
			color.New(color.FgRed).Sprint("✗"),
			color.New(color.Bold).Sprint(op.String()),
			from,
			color.New(color.Faint).Sprint("failed"))
		l.zlog.Error().Err(err).Str("operation", op.String()).Str("from", from).Str("to", to).Msg("tree operation failed")
		return
	}

	fmt.Fprintf(l.console, "%s %s %s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.String()),
		from,
		color.New(color.Faint).Sprint("→"),
		color.New(color.FgCyan).Sprint(to),
		color.New(color.FgYellow).Sprint(humanize.Bytes(uint64(n))))

	l.zlog.Info().
		Str("operation", op.String()).
		Str("from", from).
		Str("to", to).
		Int64("bytes", n).
		Msg("tree operation complete")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("morefs")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
