// Package log provides context-aware logging for devcontainer.
//
// Human-facing diagnostics go to the Logger's writer (stderr in the CLI)
// and respect --verbose and --quiet. Independently of those flags, every
// message can also be recorded as structured JSON in a rotated debug file
// (see OpenFile), which is what operators inspect after a failed hook or
// a partial replication.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

// Logger provides output and verbose command logging.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	file    *slog.Logger
}

// New creates a new logger.
// When quiet is set all terminal output is suppressed, including verbose output.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// WithFile returns a copy of l that additionally records every message as
// JSON to w at debug level.
func (l *Logger) WithFile(w io.Writer) *Logger {
	c := *l
	c.file = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &c
}

// OpenFile returns a size-rotated writer for the debug log at path.
func OpenFile(path string, maxSizeMB, maxBackups int) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   false,
	}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	l.record(slog.LevelInfo, strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	l.record(slog.LevelInfo, strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Warn writes a warning line prefixed with "warning: ".
func (l *Logger) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.record(slog.LevelWarn, msg)
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, "warning: %s\n", msg)
}

// Debug writes a message with key-value pairs, only in verbose mode.
// An odd trailing key is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	l.record(slog.LevelDebug, msg, keyvals...)
	if !l.IsVerbose() {
		return
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.out, b.String())
}

// Record writes msg to the debug file only. Use it for output that already
// reached the terminal some other way.
func (l *Logger) Record(level slog.Level, msg string, keyvals ...any) {
	l.record(level, msg, keyvals...)
}

// Command logs an external command execution.
// The returned func must be called with the elapsed time once the command
// finished. Terminal output only happens in verbose mode.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	return func(d time.Duration) {
		l.record(slog.LevelDebug, "exec", "dir", dir, "cmd", line, "duration", d.String())
		if !l.IsVerbose() {
			return
		}
		if dir != "" {
			fmt.Fprintf(l.out, "[%s] $ %s (%s)\n", dir, line, d.Round(time.Millisecond))
			return
		}
		fmt.Fprintf(l.out, "$ %s (%s)\n", line, d.Round(time.Millisecond))
	}
}

// IsVerbose returns true if verbose output is enabled and not silenced by quiet.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}

func (l *Logger) record(level slog.Level, msg string, keyvals ...any) {
	if l.file == nil {
		return
	}
	if len(keyvals)%2 == 1 {
		keyvals = keyvals[:len(keyvals)-1]
	}
	l.file.Log(context.Background(), level, msg, keyvals...)
}
