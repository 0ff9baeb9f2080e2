// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package launcherui

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status line.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg clears the status line notice it was scheduled for.
// A newer notice bumps the sequence, so stale fades are ignored.
type logRecordFadeMsg struct {
	sequence int
}

// logRecordFadeDelay is how long a log notice stays in the status line.
const logRecordFadeDelay = 5 * time.Second

// Sender is the part of *tea.Program the handler needs.
type Sender interface {
	Send(message tea.Msg)
}

// TUILogHandler is a slog.Handler that shows log records in the
// launcher's status line. Records below the configured level are
// dropped, as are records arriving before SetProgram.
//
// Records are delivered from a separate goroutine: the completion code
// logs from inside Update, and tea.Program.Send blocks until the event
// loop receives the message.
//
// Handlers derived via WithAttrs/WithGroup share the program pointer,
// so one SetProgram call reaches all of them.
type TUILogHandler struct {
	level   slog.Level
	program *atomic.Pointer[Sender]
	attrs   []slog.Attr
	groups  []string
}

// NewTUILogHandler creates a handler that delivers records at or above
// level. Call SetProgram once the tea.Program exists.
func NewTUILogHandler(level slog.Level) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[Sender]{},
	}
}

// SetProgram sets the receiver of log messages. Safe to call from any
// goroutine; nil stops delivery.
func (handler *TUILogHandler) SetProgram(program Sender) {
	if program == nil {
		handler.program.Store(nil)
		return
	}
	handler.program.Store(&program)
}

// Enabled reports whether records at level are delivered.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record as "message (key=value, ...)" and sends it
// to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, attr.Key+"="+attr.Value.String())
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, prefix+attr.Key+"="+attr.Value.String())
		return true
	})

	summary := record.Message
	if len(attrParts) > 0 {
		summary += " (" + strings.Join(attrParts, ", ") + ")"
	}

	message := logRecordMsg{Summary: summary, Level: record.Level}
	go (*program).Send(message)
	return nil
}

// WithAttrs returns a handler with attrs appended, sharing the program
// pointer.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   append(sliceClone(handler.attrs), attrs...),
		groups:  sliceClone(handler.groups),
	}
}

// WithGroup returns a handler with name appended to the group path,
// sharing the program pointer.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   sliceClone(handler.attrs),
		groups:  append(sliceClone(handler.groups), name),
	}
}

// sliceClone returns a shallow copy, so derived handlers never share a
// backing array.
func sliceClone[T any](source []T) []T {
	if source == nil {
		return nil
	}
	result := make([]T, len(source))
	copy(result, source)
	return result
}
