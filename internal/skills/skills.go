// Package skills holds the skill categories, thresholds and the catalogue of
// company roles the student is matched against.
package skills

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var (
	// ErrCompanyNotFound is returned when a company is absent from the catalogue.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrRoleNotFound is returned when a role is absent from a company.
	ErrRoleNotFound = errors.New("role not found")
	// ErrCategoryNotFound is returned when a category is unknown.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrVectorLength is returned when a vector is not aligned with the categories.
	ErrVectorLength = errors.New("vector length does not match categories")
)

// Categories is the ordered list of skill dimensions. Every Vector is indexed by it.
type Categories []string

// Len returns the number of categories.
func (c Categories) Len() int {
	return len(c)
}

// Index returns the position of the category.
func (c Categories) Index(name string) (int, error) {
	for idx, category := range c {
		if category == name {
			return idx, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrCategoryNotFound, name)
}

func (c Categories) Validate() error {
	if len(c) == 0 {
		return errors.New("at least one category is required")
	}

	seen := make(map[string]struct{}, len(c))
	for _, category := range c {
		if strings.TrimSpace(category) == "" {
			return errors.New("category name must not be empty")
		}
		if _, ok := seen[category]; ok {
			return fmt.Errorf("duplicate category %q", category)
		}
		seen[category] = struct{}{}
	}
	return nil
}

// Vector is a skill profile, one level per category.
type Vector []int

// Validate reports whether the vector is aligned with n categories.
func (v Vector) Validate(n int) error {
	if len(v) != n {
		return fmt.Errorf("%w: got %d values, want %d", ErrVectorLength, len(v), n)
	}
	return nil
}

// Floats converts the vector for numeric routines.
func (v Vector) Floats() []float64 {
	out := make([]float64, len(v))
	for i, level := range v {
		out[i] = float64(level)
	}
	return out
}

// Thresholds maps a category to the minimum level required for eligibility.
type Thresholds map[string]int

// Get returns the minimum level for the category.
func (t Thresholds) Get(category string) (int, error) {
	level, ok := t[category]
	if !ok {
		return 0, fmt.Errorf("threshold for %w: %q", ErrCategoryNotFound, category)
	}
	return level, nil
}

// Validate checks that every category has a threshold.
func (t Thresholds) Validate(categories Categories) error {
	for _, category := range categories {
		if _, err := t.Get(category); err != nil {
			return err
		}
	}
	return nil
}

// Vector lays the thresholds out in category order.
func (t Thresholds) Vector(categories Categories) (Vector, error) {
	v := make(Vector, 0, len(categories))
	for _, category := range categories {
		level, err := t.Get(category)
		if err != nil {
			return nil, err
		}
		v = append(v, level)
	}
	return v, nil
}

type thresholdItem struct {
	Category string `mapstructure:"category"`
	Minimum  int    `mapstructure:"minimum"`
}

// DecodeThresholds decodes a list of {category, minimum} items as found in
// the config file. Lists are used because viper lowercases map keys.
func DecodeThresholds(raw any) (Thresholds, error) {
	var items []thresholdItem
	if err := decode(raw, &items); err != nil {
		return nil, fmt.Errorf("decode thresholds: %w", err)
	}

	thresholds := make(Thresholds, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Category)
		if name == "" {
			return nil, errors.New("decode thresholds: category name must not be empty")
		}
		thresholds[name] = item.Minimum
	}
	return thresholds, nil
}

func decode(raw any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
