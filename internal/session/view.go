package session

import "github.com/verte-zerg/typeboard/internal/stats"

// WordClass classifies a word of the current chunk for rendering.
type WordClass string

const (
	WordPending WordClass = "pending"
	WordCurrent WordClass = "current"
	WordCorrect WordClass = "correct"
	WordWrong   WordClass = "wrong"
)

// Word is one reference word with its classification.
type Word struct {
	Text  string    `json:"text"`
	Class WordClass `json:"class"`
}

// View is the render-ready projection of a Session.
type View struct {
	Title          string   `json:"title,omitempty"`
	Sources        []string `json:"sources,omitempty"`
	Current        []Word   `json:"current"`
	Next           []string `json:"next"`
	WordIndex      int      `json:"word_index"`
	ChunkIndex     int      `json:"chunk_index"`
	Chunks         int      `json:"chunks"`
	Input          string   `json:"input"`
	TimerRemaining int      `json:"timer_remaining"`
	Duration       int      `json:"duration"`
	State          State    `json:"state"`
	Finished       bool     `json:"finished"`
	ShowTips       bool     `json:"show_tips"`
	Metrics        *Metrics `json:"metrics,omitempty"`
	Trace          []int    `json:"trace,omitempty"`
	Missed         []string `json:"missed,omitempty"`
}

// View builds the projection of the current state. It has no side effects.
func (s *Session) View() View {
	v := View{
		Title:          s.content.Title,
		Sources:        append([]string(nil), s.content.Sources...),
		WordIndex:      s.wordIndex,
		ChunkIndex:     s.chunkIndex,
		Chunks:         len(s.chunks),
		Input:          s.input,
		TimerRemaining: s.remaining,
		Duration:       s.duration,
		State:          s.state,
		Finished:       s.state == Finished,
		ShowTips:       s.state == NotStarted && s.remaining == s.duration,
	}
	if s.chunkIndex < len(s.chunks) {
		v.Current = s.classify(s.chunks[s.chunkIndex])
	}
	if s.chunkIndex+1 < len(s.chunks) {
		v.Next = append([]string(nil), s.chunks[s.chunkIndex+1]...)
	}
	if v.Finished {
		m := s.metrics
		v.Metrics = &m
		v.Trace = append([]int(nil), s.trace...)
		v.Missed = stats.TopMissed(s.missed, MissedShown)
	}
	return v
}

func (s *Session) classify(chunk []string) []Word {
	words := make([]Word, len(chunk))
	for i, ref := range chunk {
		class := WordPending
		switch {
		case i < s.wordIndex && i < len(s.committed):
			if s.committed[i] == ref {
				class = WordCorrect
			} else {
				class = WordWrong
			}
		case i == s.wordIndex && s.state != Finished:
			class = WordCurrent
		}
		words[i] = Word{Text: ref, Class: class}
	}
	return words
}
