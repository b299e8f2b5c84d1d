// Package matcher ranks catalogue roles by how close they are to a student's
// skill profile.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/filtering"
	"github.com/spigell/skillmatch/internal/skills"
)

// Config is everything a match depends on besides the student.
type Config struct {
	Categories        skills.Categories
	Thresholds        skills.Thresholds
	Catalogue         *skills.Catalogue
	SelectedCompanies []string
}

// Ranking is an eligible role and its distance to the student.
type Ranking struct {
	Company  string  `json:"company"`
	Role     string  `json:"role"`
	Distance float64 `json:"distance"`
}

// Feedback is an ineligible role and the skills to improve first.
type Feedback struct {
	Company     string   `json:"company"`
	Role        string   `json:"role"`
	Suggestions []string `json:"suggestions"`
}

type Result struct {
	Student  skills.Vector `json:"student"`
	Rankings []Ranking     `json:"rankings"`
	Feedback []Feedback    `json:"feedback"`
}

type Matcher struct {
	cfg    *Config
	logger *zap.Logger
}

// New validates the configuration and returns a matcher bound to it.
func New(cfg *Config, logger *zap.Logger) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{cfg: cfg, logger: logger}, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("matcher config is required")
	}
	if err := c.Categories.Validate(); err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	if err := c.Thresholds.Validate(c.Categories); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	if c.Catalogue == nil {
		return errors.New("catalogue is required")
	}
	if err := c.Catalogue.Validate(c.Categories); err != nil {
		return fmt.Errorf("catalogue: %w", err)
	}
	return nil
}

// Match filters the selected positions by the student's thresholds and ranks
// what is left by distance. It does not mutate the configuration, so repeated
// calls with the same student give the same result.
func (m *Matcher) Match(ctx context.Context, student skills.Vector) (*Result, error) {
	if err := student.Validate(m.cfg.Categories.Len()); err != nil {
		return nil, fmt.Errorf("student: %w", err)
	}

	deps := filtering.Deps{
		Logger:  m.logger,
		Student: student,
		Gaps: func(v skills.Vector) ([]string, error) {
			return Suggest(m.cfg.Categories, m.cfg.Thresholds, v)
		},
	}

	steps := []filtering.Filter{
		filtering.NewSelectedCompanies(),
		filtering.NewEligibility(),
	}

	cfg := &filtering.Config{
		Catalogue:         m.cfg.Catalogue,
		SelectedCompanies: m.cfg.SelectedCompanies,
	}

	eligible, rejections, err := filtering.Run(ctx, cfg, deps, steps, m.cfg.Catalogue.Positions())
	if err != nil {
		return nil, fmt.Errorf("filtering positions: %w", err)
	}

	for _, status := range filtering.Describe(steps) {
		m.logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.Any("details", status.Details),
		)
	}

	rankings, err := rank(student, eligible)
	if err != nil {
		return nil, err
	}

	feedback := make([]Feedback, 0, len(rejections))
	for _, r := range rejections {
		feedback = append(feedback, Feedback{Company: r.Company, Role: r.Role, Suggestions: r.Suggestions})
	}

	m.logger.Info("matching completed",
		zap.Int("eligible", len(rankings)),
		zap.Int("ineligible", len(feedback)),
	)

	return &Result{
		Student:  append(skills.Vector(nil), student...),
		Rankings: rankings,
		Feedback: feedback,
	}, nil
}

// Requirements returns the required vector of a ranked role.
func (m *Matcher) Requirements(r Ranking) (skills.Vector, error) {
	return m.cfg.Catalogue.Requirements(r.Company, r.Role)
}

func (m *Matcher) Categories() skills.Categories {
	return m.cfg.Categories
}

func rank(student skills.Vector, eligible *skills.Positions) ([]Ranking, error) {
	rankings := make([]Ranking, 0, eligible.Len())
	for _, position := range eligible.Items {
		distance, err := Distance(student, position.Requirements)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", position.Label(), err)
		}
		rankings = append(rankings, Ranking{
			Company:  position.Company,
			Role:     position.Role,
			Distance: distance,
		})
	}

	// Stable: equal distances keep catalogue order.
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Distance < rankings[j].Distance
	})

	return rankings, nil
}

// Top returns the closest eligible role.
func (r *Result) Top() (Ranking, bool) {
	if len(r.Rankings) == 0 {
		return Ranking{}, false
	}
	return r.Rankings[0], true
}

// Suggestions returns the skills suggested to ineligible students. All
// feedback entries share them.
func (r *Result) Suggestions() []string {
	if len(r.Feedback) == 0 {
		return nil
	}
	return r.Feedback[0].Suggestions
}
