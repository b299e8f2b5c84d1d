package matcher

import (
	"gonum.org/v1/gonum/floats"

	"github.com/spigell/skillmatch/internal/skills"
)

// Distance is the Euclidean distance between two aligned vectors.
func Distance(a, b skills.Vector) (float64, error) {
	if err := b.Validate(len(a)); err != nil {
		return 0, err
	}
	return floats.Distance(a.Floats(), b.Floats(), 2), nil
}
