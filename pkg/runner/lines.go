package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// lineSource reads lines on a background goroutine so a cancelled context can
// interrupt a blocked prompt.
type lineSource struct {
	reader    *bufio.Reader
	lines     chan lineResult
	startOnce sync.Once
}

type lineResult struct {
	text string
	err  error
}

func newLineSource(r io.Reader) *lineSource {
	return &lineSource{reader: bufio.NewReader(r)}
}

func (s *lineSource) initPump() {
	s.startOnce.Do(func() {
		s.lines = make(chan lineResult)
		go s.pump()
	})
}

func (s *lineSource) pump() {
	for {
		text, err := s.reader.ReadString('\n')
		if text != "" {
			s.lines <- lineResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				s.lines <- lineResult{err: err}
				// Backoff for non-fatal errors to prevent CPU spikes on persistent failure
				time.Sleep(50 * time.Millisecond)
				continue
			}
			close(s.lines)
			return
		}
	}
}

// next returns the next sanitized line without its terminator.
// Rejected lines are reported on feedback and skipped. io.EOF means the source is exhausted.
func (s *lineSource) next(ctx context.Context, feedback io.Writer) (string, error) {
	s.initPump()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-s.lines:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			clean, err := SanitizeInput(trimLine(res.text))
			if err != nil {
				fmt.Fprintf(feedback, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}
