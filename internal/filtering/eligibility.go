package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/skills"
)

type eligibilityFilter struct {
	disabled   bool
	reason     string
	gaps       []string
	rejections []Rejection
}

// NewEligibility creates the threshold step. The check depends on the student
// only, so a failing student is rejected for every remaining position alike.
func NewEligibility() Filter {
	return &eligibilityFilter{}
}

func (f *eligibilityFilter) Name() string { return "eligibility" }

func (f *eligibilityFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *eligibilityFilter) IsEnabled() bool { return !f.disabled }

func (f *eligibilityFilter) Validate(*Config) error { return nil }

func (f *eligibilityFilter) Apply(_ context.Context, deps Deps, p *skills.Positions) (*skills.Positions, Step, error) {
	initial := p.Len()
	f.gaps = nil
	f.rejections = nil

	if deps.Gaps == nil {
		return p, Step{}, fmt.Errorf("gap function is required")
	}
	if initial == 0 {
		return p, Step{}, nil
	}

	gaps, err := deps.Gaps(deps.Student)
	if err != nil {
		return p, Step{}, fmt.Errorf("checking thresholds: %w", err)
	}

	if len(gaps) == 0 {
		return p, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	f.gaps = gaps
	dropped := p.Keep(func(*skills.Position) bool { return false })
	for _, position := range dropped {
		f.rejections = append(f.rejections, Rejection{
			Company:     position.Company,
			Role:        position.Role,
			Suggestions: append([]string(nil), gaps...),
		})
	}

	if deps.Logger != nil {
		deps.Logger.Info("student is below thresholds; no position is eligible",
			zap.Strings("suggested_skills", gaps),
			zap.Int("rejected_positions", len(dropped)),
		)
	}

	return p, Step{Initial: initial, Dropped: len(dropped), Left: p.Len()}, nil
}

func (f *eligibilityFilter) Rejections() []Rejection {
	return f.rejections
}

func (f *eligibilityFilter) Status() Status {
	details := map[string]string{}
	if len(f.gaps) > 0 {
		details["suggested_skills"] = strings.Join(f.gaps, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
