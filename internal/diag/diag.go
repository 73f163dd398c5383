// Package diag carries non-fatal parse anomalies out of the calculator.
package diag

import "github.com/rs/zerolog"

// Sink receives non-fatal parse anomalies. Implementations must not fail.
type Sink interface {
	Report(word, reason string)
}

// Func adapts a function to a Sink.
type Func func(word, reason string)

// Report calls f.
func (f Func) Report(word, reason string) { f(word, reason) }

// Nop discards every report.
var Nop Sink = Func(func(string, string) {})

// Event is one recorded anomaly.
type Event struct {
	Word   string
	Reason string
}

// Recorder keeps every report in order.
type Recorder struct {
	Events []Event
}

// Report appends an Event.
func (r *Recorder) Report(word, reason string) {
	r.Events = append(r.Events, Event{Word: word, Reason: reason})
}

// Reset drops recorded events.
func (r *Recorder) Reset() { r.Events = nil }

// LogSink writes reports to a zerolog logger at warn level.
type LogSink struct {
	Log zerolog.Logger
}

// Report logs the anomaly.
func (s LogSink) Report(word, reason string) {
	s.Log.Warn().Str("word", word).Str("reason", reason).Msg("ignored malformed number")
}

// Tee fans a report out to several sinks.
func Tee(sinks ...Sink) Sink {
	return Func(func(word, reason string) {
		for _, s := range sinks {
			s.Report(word, reason)
		}
	})
}
