// Package input collects the student's skill levels.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	"github.com/spigell/skillmatch/internal/skills"
)

// ParseError reports an answer that is not an integer skill level.
type ParseError struct {
	Category string
	Input    string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("skill level for %q: %q is not an integer", e.Category, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Prompter asks a single question and returns the raw answer.
type Prompter interface {
	Ask(label string) (string, error)
}

// Label is the question asked for a category.
func Label(category string) string {
	return fmt.Sprintf("Enter your skill level for %s : ", category)
}

// Collect asks for every category in order. The first malformed answer aborts
// the collection.
func Collect(p Prompter, categories skills.Categories) (skills.Vector, error) {
	student := make(skills.Vector, 0, categories.Len())
	for _, category := range categories {
		answer, err := p.Ask(Label(category))
		if err != nil {
			return nil, fmt.Errorf("reading skill level for %q: %w", category, err)
		}

		level, err := parseLevel(category, answer)
		if err != nil {
			return nil, err
		}
		student = append(student, level)
	}
	return student, nil
}

// Parse reads a comma separated list of levels, one per category.
func Parse(categories skills.Categories, raw string) (skills.Vector, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != categories.Len() {
		return nil, fmt.Errorf("%w: got %d values, want %d", skills.ErrVectorLength, len(parts), categories.Len())
	}

	student := make(skills.Vector, 0, len(parts))
	for idx, part := range parts {
		level, err := parseLevel(categories[idx], part)
		if err != nil {
			return nil, err
		}
		student = append(student, level)
	}
	return student, nil
}

func parseLevel(category, answer string) (int, error) {
	trimmed := strings.TrimSpace(answer)
	level, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &ParseError{Category: category, Input: trimmed, Err: err}
	}
	return level, nil
}

// NewPrompter picks promptui when in is a terminal and a plain line reader otherwise.
func NewPrompter(in *os.File, out io.Writer) Prompter {
	if term.IsTerminal(int(in.Fd())) {
		return &TerminalPrompter{Stdin: in}
	}
	return NewLinePrompter(in, out)
}

// TerminalPrompter asks through promptui. Answers are not validated in place:
// a malformed answer is returned as is and fails in Collect.
type TerminalPrompter struct {
	Stdin io.ReadCloser
}

var promptTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}",
	Valid:   "{{ . }}",
	Invalid: "{{ . }}",
	Success: "{{ . }}",
}

func (p *TerminalPrompter) Ask(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Templates: promptTemplates,
		Stdin:     p.Stdin,
	}
	return prompt.Run()
}

// LinePrompter writes the label and reads one line per question.
type LinePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{scanner: bufio.NewScanner(in), out: out}
}

func (p *LinePrompter) Ask(label string) (string, error) {
	if p.out != nil {
		if _, err := io.WriteString(p.out, label); err != nil {
			return "", err
		}
	}

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return p.scanner.Text(), nil
}

// IsParseError reports whether err carries a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
