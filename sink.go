package opts

import (
	"io"
	"sync"
)

// Sink receives the lines produced by a show request.
type Sink interface {
	Print(line string)
	Error(line string)
}

// WriterSink writes newline-terminated lines to Out and Err. Write failures
// are ignored; the terminal is the only consumer.
type WriterSink struct {
	Out io.Writer
	Err io.Writer
}

// Print implements Sink.
func (s WriterSink) Print(line string) {
	if s.Out != nil {
		_, _ = io.WriteString(s.Out, line+"\n")
	}
}

// Error implements Sink.
func (s WriterSink) Error(line string) {
	if s.Err != nil {
		_, _ = io.WriteString(s.Err, line+"\n")
	}
}

// BufferSink records lines in memory.
type BufferSink struct {
	mu     sync.Mutex
	Lines  []string
	Errors []string
}

// Print implements Sink.
func (s *BufferSink) Print(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lines = append(s.Lines, line)
}

// Error implements Sink.
func (s *BufferSink) Error(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, line)
}

// Reset discards recorded lines.
func (s *BufferSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lines = nil
	s.Errors = nil
}

type countingSink struct {
	Sink
	lines int
}

func (s *countingSink) Print(line string) {
	s.lines++
	if s.Sink != nil {
		s.Sink.Print(line)
	}
}
