package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/context-lens/internal/model"
)

// maxPromptAttempts bounds re-asking for a required answer.
const maxPromptAttempts = 3

// ErrNoAnswer is returned when a required prompt stays unanswered.
var ErrNoAnswer = errors.New("no answer given")

// Prompter asks the user questions on a terminal.
type Prompter struct {
	reader *LineReader
	writer io.Writer
}

// NewPrompter creates a prompter reading answers from r and writing questions to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		reader: NewLineReader(r),
		writer: w,
	}
}

// Ask prints question and returns the answer, or def for an empty answer.
func (p *Prompter) Ask(ctx context.Context, question, def string) (string, error) {
	prompt := question
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", question, def)
	}
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question; anything but y or yes is a no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.Ask(ctx, question+" (y/N)", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PromptLogin collects the login form: a display name and a preferred currency.
func (p *Prompter) PromptLogin(ctx context.Context) (username, currency string, err error) {
	if _, err := fmt.Fprintln(p.writer, FormatTitle("Welcome to Context Lens")); err != nil {
		return "", "", fmt.Errorf("failed to write prompt: %w", err)
	}

	for attempt := 0; attempt < maxPromptAttempts && username == ""; attempt++ {
		username, err = p.Ask(ctx, "What should we call you?", "")
		if err != nil {
			return "", "", err
		}
		username = strings.TrimSpace(username)
		if username == "" {
			if _, err := fmt.Fprintln(p.writer, FormatWarning("A name is required.")); err != nil {
				return "", "", fmt.Errorf("failed to write prompt: %w", err)
			}
		}
	}
	if username == "" {
		return "", "", fmt.Errorf("%w: username", ErrNoAnswer)
	}

	if _, err := fmt.Fprintln(p.writer, RenderCurrencies(model.DefaultCurrency)); err != nil {
		return "", "", fmt.Errorf("failed to write prompt: %w", err)
	}
	currency, err = p.Ask(ctx, "Preferred currency", model.DefaultCurrency)
	if err != nil {
		return "", "", err
	}

	return username, strings.ToUpper(currency), nil
}
