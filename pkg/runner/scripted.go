package runner

import (
	"context"
	"sync"
)

// ScriptedPort is an InteractionPort fed from a queue of answers.
// It backs non-interactive hosts (HTTP requests, batch runs) and tests.
// When the queue runs dry every further question is cancelled.
type ScriptedPort struct {
	mu      sync.Mutex
	answers []string
	prompts []string
	invalid int
}

// NewScriptedPort creates a port that answers with the given lines, in order.
func NewScriptedPort(answers ...string) *ScriptedPort {
	return &ScriptedPort{answers: append([]string(nil), answers...)}
}

func (p *ScriptedPort) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, ok := p.next(prompt)
	if !ok {
		return "", ErrNoAnswer
	}
	return line, nil
}

func (p *ScriptedPort) GetAnswer(ctx context.Context, prompt string, options []string, def int) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return NoAnswer, err
		}
		line, ok := p.next(prompt)
		if !ok {
			return NoAnswer, nil
		}
		if idx := Match(line, options, def); idx >= 0 {
			return idx, nil
		}
		p.mu.Lock()
		p.invalid++
		p.mu.Unlock()
	}
}

func (p *ScriptedPort) next(prompt string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
	if len(p.answers) == 0 {
		return "", false
	}
	line := p.answers[0]
	p.answers = p.answers[1:]
	return line, true
}

// Prompts returns every prompt presented so far, repeats included.
func (p *ScriptedPort) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.prompts...)
}

// Invalid returns how many answers were rejected and re-prompted.
func (p *ScriptedPort) Invalid() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.invalid
}

// Remaining returns how many queued answers are left.
func (p *ScriptedPort) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.answers)
}
