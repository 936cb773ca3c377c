// Package session implements the typing-session engine: it chunks a reference
// text, judges committed words, runs the countdown and derives the final
// metrics. A Session is not safe for concurrent use; hosts funnel input events
// and timer ticks through one goroutine (see Driver).
package session

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/typeboard/internal/clock"
	"github.com/verte-zerg/typeboard/internal/model"
	"github.com/verte-zerg/typeboard/internal/stats"
)

const (
	// ChunkSize is the number of words presented together.
	ChunkSize = 15
	// DefaultDuration is the countdown length in seconds.
	DefaultDuration = 60
	// MissedShown bounds the missed words listed with the results.
	MissedShown = 5
	// Tips is shown before the first keystroke.
	Tips = "Write as quickly as you can, pressing the space bar after each word."
)

const separator = " "

// State is the lifecycle stage of a Session.
type State int

const (
	NotStarted State = iota
	InProgress
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "not_started":
		*s = NotStarted
	case "in_progress":
		*s = InProgress
	case "finished":
		*s = Finished
	default:
		return fmt.Errorf("unknown session state %q", text)
	}
	return nil
}

// Metrics summarizes a finished session.
type Metrics struct {
	Correct        int     `json:"correct"`
	Wrong          int     `json:"wrong"`
	Accuracy       float64 `json:"accuracy"`
	ElapsedSeconds int64   `json:"elapsed_seconds"`
	WPM            float64 `json:"wpm"`
}

// Option configures a Session.
type Option func(*Session)

// WithDuration sets the countdown length in seconds. Non-positive values are ignored.
func WithDuration(seconds int) Option {
	return func(s *Session) {
		if seconds > 0 {
			s.duration = seconds
		}
	}
}

// Session holds the state of one user's typing run.
type Session struct {
	content model.Content
	clock   clock.Clock
	chunks  [][]string

	chunkIndex int
	wordIndex  int
	committed  []string
	input      string

	correct int
	wrong   int
	missed  []string

	started   bool
	startedAt int64

	duration    int
	remaining   int
	timerActive bool

	state   State
	metrics Metrics
	trace   []int
}

// New starts a session over c. The content is chunked once, here.
func New(c model.Content, clk clock.Clock, opts ...Option) *Session {
	if clk == nil {
		clk = clock.Real()
	}
	s := &Session{
		content:  c.Clone(),
		clock:    clk,
		chunks:   Chunk(c.Body),
		duration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.remaining = s.duration
	if len(s.chunks) == 0 {
		s.finish()
	}
	return s
}

// Input applies the full current value of the input field. It reports whether
// the session changed. A value ending in a space commits the trimmed word.
func (s *Session) Input(value string) bool {
	if s.state == Finished {
		return false
	}
	if s.state == NotStarted {
		s.start()
	}
	if !strings.HasSuffix(value, separator) {
		s.input = value
		return true
	}
	s.commit(strings.TrimSpace(value))
	return true
}

// Tick advances the countdown by one second while the timer is active.
func (s *Session) Tick() bool {
	if !s.timerActive {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	s.trace = append(s.trace, s.correct)
	if s.remaining == 0 {
		s.finish()
	}
	return true
}

// State returns the lifecycle stage.
func (s *Session) State() State {
	return s.state
}

// Metrics returns the metrics frozen at finish time, or the running tally
// with no elapsed time before that.
func (s *Session) Metrics() Metrics {
	if s.state == Finished {
		return s.metrics
	}
	return s.computeMetrics(s.startedAt)
}

// Content returns the reference text the session was started with.
func (s *Session) Content() model.Content {
	return s.content.Clone()
}

func (s *Session) start() {
	s.state = InProgress
	s.started = true
	s.startedAt = clock.Unix(s.clock)
	s.timerActive = true
}

func (s *Session) commit(word string) {
	chunk := s.chunks[s.chunkIndex]
	s.committed = append(s.committed, word)
	if word == chunk[s.wordIndex] {
		s.correct++
	} else {
		s.wrong++
		s.missed = append(s.missed, chunk[s.wordIndex])
	}
	s.wordIndex++
	s.input = ""
	if s.wordIndex >= len(chunk) {
		s.advanceChunk()
	}
}

// advanceChunk moves to the next chunk; committed words are scoped to a chunk
// and are cleared here and nowhere else.
func (s *Session) advanceChunk() {
	s.wordIndex = 0
	s.chunkIndex++
	s.committed = nil
	if s.chunkIndex >= len(s.chunks) {
		s.finish()
	}
}

func (s *Session) finish() {
	if s.state == Finished {
		return
	}
	s.state = Finished
	s.timerActive = false
	s.input = ""
	s.metrics = s.computeMetrics(clock.Unix(s.clock))
}

func (s *Session) computeMetrics(now int64) Metrics {
	var elapsed int64
	if s.started && now > s.startedAt {
		elapsed = now - s.startedAt
	}
	wpm, acc := stats.SessionMetrics(s.correct, s.wrong, elapsed)
	return Metrics{
		Correct:        s.correct,
		Wrong:          s.wrong,
		Accuracy:       acc,
		ElapsedSeconds: elapsed,
		WPM:            wpm,
	}
}

// Chunk splits body on whitespace runs and groups the words by ChunkSize.
func Chunk(body string) [][]string {
	words := strings.Fields(body)
	if len(words) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(words)+ChunkSize-1)/ChunkSize)
	for start := 0; start < len(words); start += ChunkSize {
		end := start + ChunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, words[start:end:end])
	}
	return chunks
}
