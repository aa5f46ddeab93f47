package validate

import (
	"fmt"
	"strings"

	"sirlab/internal/epi"
)

// Bounds documents the accepted domain for each numeric field of a
// parameter set. Variants override individual fields.
type Bounds struct {
	MinPopulation float64
	MaxPopulation float64
	MinBeta       float64
	MaxBeta       float64
	MinGamma      float64
	MaxGamma      float64
	MinInfected   float64
	MaxInfected   float64
	MinRemoved    float64
	MinDays       float64
	MaxDays       float64
	MinPoints     int
	MaxPoints     int
}

var defaultBounds = Bounds{
	MinPopulation: 10,
	MaxPopulation: 1_000_000,
	MinBeta:       0.001,
	MaxBeta:       2.0,
	MinGamma:      0.001,
	MaxGamma:      2.0,
	MinInfected:   1,
	MaxInfected:   100_000,
	MinRemoved:    0,
	MinDays:       1,
	MaxDays:       500,
	MinPoints:     10,
	MaxPoints:     10_000,
}

var variantBounds = map[string]Bounds{
	epi.KindSIR:   defaultBounds,
	epi.KindRumor: defaultBounds,
	// The rational-dampening removal term is γ·I·R/N: with no initial
	// rational population the rumor never dies out, so require R0 >= 1.
	epi.KindRationalRumor: withMinRemoved(defaultBounds, 1),
	// Mass-action β is a per-pair rate.
	epi.KindMassActionSIR: withBetaRange(defaultBounds, 1e-5, 0.1),
}

func withMinRemoved(b Bounds, min float64) Bounds {
	b.MinRemoved = min
	return b
}

func withBetaRange(b Bounds, lo, hi float64) Bounds {
	b.MinBeta = lo
	b.MaxBeta = hi
	return b
}

// BoundsFor returns the documented domain for a model kind.
func BoundsFor(kind string) (Bounds, error) {
	b, ok := variantBounds[kind]
	if !ok {
		return Bounds{}, fmt.Errorf("%w: %s", epi.ErrUnknownModel, kind)
	}
	return b, nil
}

// ValidationError carries every violated constraint, not just the first,
// so a caller can present all problems at once.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid parameters: " + strings.Join(e.Violations, "; ")
}

// Validate checks p against the domain of the given model kind. It returns
// the parameter set with defaults applied (sample count), or a
// *ValidationError listing all violations.
func Validate(kind string, p epi.Params) (epi.Params, error) {
	b, err := BoundsFor(kind)
	if err != nil {
		return epi.Params{}, err
	}

	var violations []string

	if p.Population < b.MinPopulation || p.Population > b.MaxPopulation {
		violations = append(violations,
			fmt.Sprintf("population must be between %.0f and %.0f, got %g", b.MinPopulation, b.MaxPopulation, p.Population))
	}
	if p.Beta < b.MinBeta || p.Beta > b.MaxBeta {
		violations = append(violations,
			fmt.Sprintf("transmission rate must be between %g and %g, got %g", b.MinBeta, b.MaxBeta, p.Beta))
	}
	if p.Gamma < b.MinGamma || p.Gamma > b.MaxGamma {
		violations = append(violations,
			fmt.Sprintf("removal rate must be between %g and %g, got %g", b.MinGamma, b.MaxGamma, p.Gamma))
	}
	if p.InitialInfected < b.MinInfected || p.InitialInfected > b.MaxInfected {
		violations = append(violations,
			fmt.Sprintf("initial infected must be between %.0f and %.0f, got %g", b.MinInfected, b.MaxInfected, p.InitialInfected))
	}
	if p.InitialRemoved < b.MinRemoved {
		violations = append(violations,
			fmt.Sprintf("initial removed must be at least %.0f, got %g", b.MinRemoved, p.InitialRemoved))
	}
	if p.Days < b.MinDays || p.Days > b.MaxDays {
		violations = append(violations,
			fmt.Sprintf("horizon must be between %.0f and %.0f days, got %g", b.MinDays, b.MaxDays, p.Days))
	}
	if p.Points != 0 && (p.Points < b.MinPoints || p.Points > b.MaxPoints) {
		violations = append(violations,
			fmt.Sprintf("resolution must be between %d and %d points, got %d", b.MinPoints, b.MaxPoints, p.Points))
	}
	if p.InitialInfected+p.InitialRemoved > p.Population {
		violations = append(violations,
			fmt.Sprintf("initial infected (%g) plus removed (%g) exceed population (%g): derived S0 < 0",
				p.InitialInfected, p.InitialRemoved, p.Population))
	}

	if len(violations) > 0 {
		return epi.Params{}, &ValidationError{Violations: violations}
	}

	if p.Points == 0 {
		p.Points = DefaultPoints
	}
	return p, nil
}

// DefaultPoints is the sample count applied when the caller leaves
// Points unset.
const DefaultPoints = 300
