// Package ai turns match results into improvement advice.
package ai

import (
	"context"

	"github.com/spigell/skillmatch/internal/matcher"
	"github.com/spigell/skillmatch/internal/skills"
)

type Advice struct {
	Summary string
	Steps   []string
	Raw     string
}

// Request is the student profile and what the matcher concluded about it.
type Request struct {
	Categories  skills.Categories
	Thresholds  skills.Thresholds
	Student     skills.Vector
	Suggestions []string
	// Top is nil when no role is eligible.
	Top             *matcher.Ranking
	TopRequirements skills.Vector
}

type Advisor interface {
	Advise(ctx context.Context, req *Request) (*Advice, error)
}

// NewRequest builds the advice request for a match result.
func NewRequest(m *matcher.Matcher, thresholds skills.Thresholds, result *matcher.Result) (*Request, error) {
	req := &Request{
		Categories:  m.Categories(),
		Thresholds:  thresholds,
		Student:     result.Student,
		Suggestions: result.Suggestions(),
	}

	if top, ok := result.Top(); ok {
		requirements, err := m.Requirements(top)
		if err != nil {
			return nil, err
		}
		req.Top = &top
		req.TopRequirements = requirements
	}

	return req, nil
}
