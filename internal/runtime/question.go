package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/ports"
)

// evalQuestion asks the interaction port for an answer, stores it and branches into
// the direct child sitting at the answer's position.
func (e *Engine) evalQuestion(ctx context.Context, s *scope, node *domain.Node) error {
	attrs := questionAttrs{Type: domain.DefaultQuestionType, Text: domain.MissingText}
	if err := decodeAttrs(node, &attrs); err != nil {
		return err
	}

	var (
		options []string
		answer  = ports.NoAnswer
		err     error
	)

	switch strings.ToLower(attrs.Type) {
	case domain.QuestionSelect:
		candidates, ferr := e.resolveFragments(s, node, domain.KindOption)
		if ferr != nil {
			return ferr
		}
		for _, c := range candidates {
			options = append(options, c.AttrOr(domain.AttrValue, domain.MissingValue))
		}
		if len(options) == 0 {
			e.logger.DebugContext(ctx, "select question has no options", "text", attrs.Text)
			return nil
		}
		answer, err = e.port.GetAnswer(ctx, SelectPrompt(attrs.Text, options), options, ports.NoAnswer)

	case domain.QuestionYesNo:
		options = domain.YesNoOptions
		answer, err = e.port.GetAnswer(ctx, YesNoPrompt(attrs.Text), options, 0)

	case domain.QuestionInput:
		var line string
		line, err = e.port.Ask(ctx, attrs.Text)
		if err == nil {
			options = []string{line}
			answer = 0
		}

	default:
		e.logger.DebugContext(ctx, "unknown question type", "type", attrs.Type)
		return nil
	}

	if errors.Is(err, ports.ErrNoAnswer) {
		answer, err = ports.NoAnswer, nil
	}
	if err != nil {
		return fmt.Errorf("interaction failed: %w", err)
	}
	if answer < 0 || answer >= len(options) {
		e.logger.DebugContext(ctx, "question skipped", "text", attrs.Text)
		return nil
	}

	if err := e.write(ctx, s, node, options[answer]); err != nil {
		return err
	}

	// Branches are positional over the literal children, not over the option list.
	if len(node.Children) > answer {
		return e.evalChildren(ctx, s, node.Children[answer])
	}
	return nil
}

// SelectPrompt formats the prompt of a select question.
func SelectPrompt(text string, options []string) string {
	var b strings.Builder
	b.WriteString(text)
	b.WriteString(" (Enter Number or Substring):")
	for i, opt := range options {
		fmt.Fprintf(&b, "\n%d) %s", i+1, opt)
	}
	return b.String()
}

// YesNoPrompt formats the prompt of a yes/no question.
func YesNoPrompt(text string) string {
	return fmt.Sprintf("%s ([%s]/%s)", text, domain.YesNoOptions[0], domain.YesNoOptions[1])
}
