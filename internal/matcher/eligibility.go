package matcher

import (
	"sort"

	"github.com/spigell/skillmatch/internal/skills"
)

// maxSuggestions is how many below-threshold categories are suggested.
const maxSuggestions = 2

// BelowThreshold returns, in category order, the categories where the student
// level is lower than the threshold. Role requirements are not consulted.
func BelowThreshold(categories skills.Categories, thresholds skills.Thresholds, student skills.Vector) ([]string, error) {
	if err := student.Validate(categories.Len()); err != nil {
		return nil, err
	}

	var below []string
	for idx, category := range categories {
		minimum, err := thresholds.Get(category)
		if err != nil {
			return nil, err
		}
		if student[idx] < minimum {
			below = append(below, category)
		}
	}
	return below, nil
}

// ClosestGaps orders the below-threshold categories by ascending gap and
// returns at most two of them. Equal gaps keep category order.
func ClosestGaps(categories skills.Categories, thresholds skills.Thresholds, student skills.Vector, below []string) ([]string, error) {
	type gap struct {
		category string
		position int
		size     int
	}

	gaps := make([]gap, 0, len(below))
	for _, category := range below {
		idx, err := categories.Index(category)
		if err != nil {
			return nil, err
		}
		minimum, err := thresholds.Get(category)
		if err != nil {
			return nil, err
		}
		gaps = append(gaps, gap{category: category, position: idx, size: minimum - student[idx]})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].size != gaps[j].size {
			return gaps[i].size < gaps[j].size
		}
		return gaps[i].position < gaps[j].position
	})

	if len(gaps) > maxSuggestions {
		gaps = gaps[:maxSuggestions]
	}

	closest := make([]string, 0, len(gaps))
	for _, g := range gaps {
		closest = append(closest, g.category)
	}
	return closest, nil
}

// Suggest combines BelowThreshold and ClosestGaps.
func Suggest(categories skills.Categories, thresholds skills.Thresholds, student skills.Vector) ([]string, error) {
	below, err := BelowThreshold(categories, thresholds, student)
	if err != nil {
		return nil, err
	}
	if len(below) == 0 {
		return nil, nil
	}
	return ClosestGaps(categories, thresholds, student, below)
}
