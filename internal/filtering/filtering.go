package filtering

import (
	"context"
	"fmt"

	"github.com/spigell/skillmatch/internal/skills"
	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to catalogue positions.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, p *skills.Positions) (*skills.Positions, Step, error)
}

// GapFunc returns the categories the student should improve first.
// An empty result means the student passes every threshold.
type GapFunc func(student skills.Vector) ([]string, error)

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger  *zap.Logger
	Student skills.Vector
	Gaps    GapFunc
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	Catalogue         *skills.Catalogue
	SelectedCompanies []string
}

// Rejection records a position dropped because the student is not eligible.
type Rejection struct {
	Company     string
	Role        string
	Suggestions []string
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

type rejectionCollector interface {
	Rejections() []Rejection
}

// Run executes the supplied filters sequentially, returning the positions left
// and the rejections collected by the steps, in step order.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, p *skills.Positions) (*skills.Positions, []Rejection, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	var rejections []Rejection
	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, p)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Debug("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		p = next

		if collector, ok := step.(rejectionCollector); ok {
			rejections = append(rejections, collector.Rejections()...)
		}
	}

	return p, rejections, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
