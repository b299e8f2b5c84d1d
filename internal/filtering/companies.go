package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/skills"
)

type companiesFilter struct {
	selected map[string]struct{}
	names    []string
}

// NewSelectedCompanies creates a filter that keeps positions of the selected companies only.
func NewSelectedCompanies() Filter {
	return &companiesFilter{}
}

func (f *companiesFilter) Name() string { return "selected_companies" }

func (f *companiesFilter) Disable(string) {}

func (f *companiesFilter) IsEnabled() bool { return true }

// Validate resolves the selection against the catalogue. Unknown companies are
// reported instead of being silently skipped.
func (f *companiesFilter) Validate(cfg *Config) error {
	f.selected = make(map[string]struct{})
	f.names = nil
	if cfg == nil {
		return nil
	}
	if cfg.Catalogue == nil {
		return fmt.Errorf("catalogue is required")
	}

	for _, name := range cfg.SelectedCompanies {
		if _, err := cfg.Catalogue.Company(name); err != nil {
			return err
		}
		if _, ok := f.selected[name]; ok {
			continue
		}
		f.selected[name] = struct{}{}
		f.names = append(f.names, name)
	}
	return nil
}

func (f *companiesFilter) Apply(_ context.Context, deps Deps, p *skills.Positions) (*skills.Positions, Step, error) {
	initial := p.Len()

	dropped := p.Keep(func(position *skills.Position) bool {
		_, ok := f.selected[position.Company]
		return ok
	})

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Debug("excluding positions of companies not selected",
			zap.Strings("selected_companies", f.names),
			zap.Int("positions_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(dropped), Left: p.Len()}, nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.names) > 0 {
		details["companies"] = strings.Join(f.names, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
