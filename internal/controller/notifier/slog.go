package notifier

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

type SLogNotifier struct {
	Logger *slog.Logger
}

var _ Notifier = &SLogNotifier{}

func (s SLogNotifier) Notify(e Event) {
	args := []any{"mode", e.Mode}
	if e.Kind == Changed {
		args = append(args, "previous", e.Previous, "temperature", e.Temperature, "reason", e.Reason)
	}
	s.Logger.Info(e.Title(), args...)
}

// WriterNotifier writes events to a terminal.
type WriterNotifier struct {
	W io.Writer
}

var _ Notifier = &WriterNotifier{}

func (w WriterNotifier) Notify(e Event) {
	line := e.Time.Format(time.RFC1123Z) + ": " + e.Title()
	if e.Reason != "" {
		line += " (" + e.Reason + ")"
	}
	_, _ = fmt.Fprintln(w.W, line)
}
