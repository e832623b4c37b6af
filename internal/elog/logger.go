package elog

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// EventLogger is the interface for logging status messages. The engine
// only ever writes through this interface; it never performs I/O itself.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-2d P%d %-20s %s", e.Turn, e.Player+1, e.Type, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- LogrusLogger: structured, leveled logging on top of a MemoryLogger ---

// LogrusLogger wraps a MemoryLogger (so Events()/EventsOfType() assertions
// still work) and additionally emits each event as a structured logrus entry,
// for callers that want field-based log aggregation instead of (or alongside)
// in-memory replay.
type LogrusLogger struct {
	MemoryLogger
	entry *logrus.Entry
}

// NewLogrusLogger builds a LogrusLogger. A nil logger falls back to
// logrus.StandardLogger().
func NewLogrusLogger(logger *logrus.Logger) *LogrusLogger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusLogger{entry: logrus.NewEntry(logger)}
}

func (l *LogrusLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	l.entry.WithFields(logrus.Fields{
		"turn":   event.Turn,
		"player": event.Player,
		"type":   event.Type.String(),
		"card":   event.Card,
		"amount": event.Amount,
	}).Info(event.Details)
}
