// Package report prints match results.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spigell/skillmatch/internal/matcher"
)

// DefaultTop is how many ranked matches are printed by default.
const DefaultTop = 3

const (
	eligibleHeader = "Eligible Matches:"
	feedbackHeader = "Eligibility Feedback for Non-Eligible Companies and Roles:"
	noMatches      = "No eligible matches found based on your skills."
	noMatchesShort = "No eligible matches."
)

type Writer struct {
	out io.Writer
	top int
}

func New(out io.Writer, top int) *Writer {
	if top <= 0 {
		top = DefaultTop
	}
	return &Writer{out: out, top: top}
}

// Write prints the rankings followed by the feedback section.
func (w *Writer) Write(r *matcher.Result) error {
	if err := w.Rankings(r); err != nil {
		return err
	}
	return w.Feedback(r)
}

func (w *Writer) Rankings(r *matcher.Result) error {
	if len(r.Rankings) == 0 {
		return w.println(noMatches)
	}

	lines := []string{"", eligibleHeader}
	for i, ranking := range r.Rankings {
		if i == w.top {
			break
		}
		lines = append(lines, fmt.Sprintf("Rank %d: %s - %s", i+1, ranking.Company, ranking.Role))
	}
	return w.println(lines...)
}

func (w *Writer) Feedback(r *matcher.Result) error {
	lines := []string{"", feedbackHeader}
	for _, feedback := range r.Feedback {
		lines = append(lines, fmt.Sprintf("%s - %s: Suggest improving: %s",
			feedback.Company, feedback.Role, strings.Join(feedback.Suggestions, ", ")))
	}
	return w.println(lines...)
}

// NoMatches closes the report when there is nothing to visualize.
func (w *Writer) NoMatches() error {
	return w.println(noMatchesShort)
}

// Advice prints an improvement plan under its own header.
func (w *Writer) Advice(summary string, steps []string) error {
	lines := []string{"", "Improvement Plan:"}
	if summary != "" {
		lines = append(lines, summary)
	}
	for i, step := range steps {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
	}
	return w.println(lines...)
}

func (w *Writer) println(lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w.out, line); err != nil {
			return err
		}
	}
	return nil
}

// DumpToTmpFile writes the full result, distances included, as indented JSON.
func DumpToTmpFile(r *matcher.Result) (string, error) {
	file, err := os.CreateTemp("", "skillmatch_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
