package skills

import (
	"fmt"
	"strings"
)

// Catalogue is the ordered list of companies. Order matters: it breaks ties
// between equally distant roles.
type Catalogue struct {
	Items []*Company `json:"companies"`
}

type Company struct {
	Name  string  `mapstructure:"name" json:"name"`
	Roles []*Role `mapstructure:"roles" json:"roles"`
}

type Role struct {
	Name         string `mapstructure:"name" json:"name"`
	Requirements Vector `mapstructure:"requirements" json:"requirements"`
}

// Position is a single company role flattened out of the catalogue.
type Position struct {
	Company      string
	Role         string
	Requirements Vector
}

// Positions is an ordered list of positions.
type Positions struct {
	Items []*Position
}

// DecodeCatalogue decodes the raw `catalogue` config value.
func DecodeCatalogue(raw any) (*Catalogue, error) {
	var companies []*Company
	if err := decode(raw, &companies); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	return &Catalogue{Items: companies}, nil
}

func (c *Catalogue) Len() int {
	return len(c.Items)
}

// Names returns company names in catalogue order.
func (c *Catalogue) Names() []string {
	names := make([]string, 0, len(c.Items))
	for _, company := range c.Items {
		names = append(names, company.Name)
	}
	return names
}

func (c *Catalogue) FindByName(name string) *Company {
	for _, company := range c.Items {
		if company.Name == name {
			return company
		}
	}
	return nil
}

// Company is like FindByName but reports a missing company as an error.
func (c *Catalogue) Company(name string) (*Company, error) {
	company := c.FindByName(name)
	if company == nil {
		return nil, fmt.Errorf("%w: %q", ErrCompanyNotFound, name)
	}
	return company, nil
}

// Requirements returns the required vector of the company role.
func (c *Catalogue) Requirements(company, role string) (Vector, error) {
	co, err := c.Company(company)
	if err != nil {
		return nil, err
	}
	r, err := co.Role(role)
	if err != nil {
		return nil, err
	}
	return r.Requirements, nil
}

// Positions flattens the catalogue keeping company order, then role order.
func (c *Catalogue) Positions() *Positions {
	positions := &Positions{}
	for _, company := range c.Items {
		for _, role := range company.Roles {
			positions.Items = append(positions.Items, &Position{
				Company:      company.Name,
				Role:         role.Name,
				Requirements: role.Requirements,
			})
		}
	}
	return positions
}

// Validate checks names are set and unique and every requirement vector
// is aligned with the categories.
func (c *Catalogue) Validate(categories Categories) error {
	seen := make(map[string]struct{}, len(c.Items))
	for _, company := range c.Items {
		if company == nil || strings.TrimSpace(company.Name) == "" {
			return fmt.Errorf("company name must not be empty")
		}
		if _, ok := seen[company.Name]; ok {
			return fmt.Errorf("duplicate company %q", company.Name)
		}
		seen[company.Name] = struct{}{}

		if err := company.validate(categories); err != nil {
			return fmt.Errorf("company %q: %w", company.Name, err)
		}
	}
	return nil
}

func (c *Company) FindRole(name string) *Role {
	for _, role := range c.Roles {
		if role.Name == name {
			return role
		}
	}
	return nil
}

func (c *Company) Role(name string) (*Role, error) {
	role := c.FindRole(name)
	if role == nil {
		return nil, fmt.Errorf("%w: %q at %q", ErrRoleNotFound, name, c.Name)
	}
	return role, nil
}

// RoleNames returns role names in catalogue order.
func (c *Company) RoleNames() []string {
	names := make([]string, 0, len(c.Roles))
	for _, role := range c.Roles {
		names = append(names, role.Name)
	}
	return names
}

func (c *Company) validate(categories Categories) error {
	seen := make(map[string]struct{}, len(c.Roles))
	for _, role := range c.Roles {
		if role == nil || strings.TrimSpace(role.Name) == "" {
			return fmt.Errorf("role name must not be empty")
		}
		if _, ok := seen[role.Name]; ok {
			return fmt.Errorf("duplicate role %q", role.Name)
		}
		seen[role.Name] = struct{}{}

		if err := role.Requirements.Validate(categories.Len()); err != nil {
			return fmt.Errorf("role %q: %w", role.Name, err)
		}
	}
	return nil
}

func (p *Positions) Len() int {
	return len(p.Items)
}

// Keep drops positions for which keep returns false, preserving order.
// It returns the dropped positions.
func (p *Positions) Keep(keep func(*Position) bool) []*Position {
	var dropped []*Position
	kept := p.Items[:0]
	for _, position := range p.Items {
		if keep(position) {
			kept = append(kept, position)
			continue
		}
		dropped = append(dropped, position)
	}
	p.Items = kept
	return dropped
}

// Labels renders positions as "company - role".
func (p *Positions) Labels() []string {
	labels := make([]string, 0, len(p.Items))
	for _, position := range p.Items {
		labels = append(labels, position.Label())
	}
	return labels
}

func (p *Position) Label() string {
	return fmt.Sprintf("%s - %s", p.Company, p.Role)
}
