// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pterm/pterm"
)

// Logger is the structured logging capability handed to runners and commands.
// Args are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Format selects how log lines are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures a pterm-backed Logger.
type Options struct {
	Level  string
	Format Format
	Writer io.Writer
}

type ptermLogger struct {
	pl *pterm.Logger
}

// New builds a Logger on top of pterm's structured logger.
func New(opts Options) Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level, _ := ParseLevel(opts.Level)
	pl := pterm.DefaultLogger.WithLevel(level).WithWriter(w)
	if opts.Format == FormatJSON {
		pl = pl.WithFormatter(pterm.LogFormatterJSON)
	}
	return &ptermLogger{pl: pl}
}

func (l *ptermLogger) Debug(msg string, args ...any) { l.pl.Debug(msg, l.pl.Args(normalize(args)...)) }
func (l *ptermLogger) Info(msg string, args ...any)  { l.pl.Info(msg, l.pl.Args(normalize(args)...)) }
func (l *ptermLogger) Warn(msg string, args ...any)  { l.pl.Warn(msg, l.pl.Args(normalize(args)...)) }
func (l *ptermLogger) Error(msg string, args ...any) { l.pl.Error(msg, l.pl.Args(normalize(args)...)) }

// normalize pads odd argument lists and masks string values so DSNs never leak.
func normalize(args []any) []any {
	if len(args)%2 == 1 {
		args = append(args, "")
	}
	out := make([]any, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok && i%2 == 1 {
			out[i] = Mask(s)
			continue
		}
		if err, ok := a.(error); ok {
			out[i] = Mask(err.Error())
			continue
		}
		out[i] = a
	}
	return out
}

// ParseLevel maps a textual level to a pterm level. Unknown values fall back to info.
func ParseLevel(raw string) (pterm.LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return pterm.LogLevelTrace, true
	case "debug":
		return pterm.LogLevelDebug, true
	case "info":
		return pterm.LogLevelInfo, true
	case "warn", "warning":
		return pterm.LogLevelWarn, true
	case "error":
		return pterm.LogLevelError, true
	case "off", "disabled", "none":
		return pterm.LogLevelDisabled, true
	default:
		return pterm.LogLevelInfo, false
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

// Entry is a single captured log call.
type Entry struct {
	Level string
	Msg   string
	Args  map[string]any
}

// Recorder captures log calls in memory. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) record(level, msg string, args []any) {
	fields := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		fields[fmt.Sprint(args[i])] = args[i+1]
	}
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Args: fields})
	r.mu.Unlock()
}

func (r *Recorder) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *Recorder) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *Recorder) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *Recorder) Error(msg string, args ...any) { r.record("error", msg, args) }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the recorded messages at the given level, in order.
func (r *Recorder) Messages(level string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Msg)
		}
	}
	return out
}
