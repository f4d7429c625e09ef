package matcher

import (
	"context"
	"fmt"

	"dispatch/internal/entities"
)

const DefaultRadiusKm = 10.0

type Matcher struct {
	registry   RiderRegistry
	calculator DistanceCalculator
}

func New(registry RiderRegistry, calculator DistanceCalculator) *Matcher {
	return &Matcher{
		registry:   registry,
		calculator: calculator,
	}
}

// FindNearestRider выбирает ближайшего подходящего райдера в радиусе radiusKm включительно.
// При равных расстояниях побеждает меньший id. exclude убирает райдеров,
// проигравших CAS в текущей попытке назначения. Ничего не изменяет.
func (m *Matcher) FindNearestRider(
	ctx context.Context,
	origin entities.Coordinate,
	radiusKm float64,
	mode entities.ServiceModeType,
	exclude ...int64,
) (*entities.Rider, error) {
	if !origin.Valid() {
		return nil, fmt.Errorf("origin %v: %w", origin, ErrInvalidInput)
	}
	if !isValidRadius(radiusKm) {
		return nil, fmt.Errorf("radius %v: %w", radiusKm, ErrInvalidInput)
	}
	if !isValidMode(mode) {
		return nil, fmt.Errorf("service mode %q: %w", mode, ErrInvalidInput)
	}

	candidates, err := m.registry.ListDispatchCandidates(ctx, mode)
	if err != nil {
		DispatchAttemptsTotal.WithLabelValues(mode.String(), "error").Inc()
		return nil, fmt.Errorf("list dispatch candidates: %w", err)
	}

	var (
		best         *entities.Rider
		bestDistance float64
	)
	for i := range candidates {
		candidate := &candidates[i]
		if !isEligible(candidate, mode, exclude) {
			continue
		}

		distance := m.calculator.Distance(origin, *candidate.Location)
		if distance > radiusKm {
			continue
		}

		if best == nil ||
			distance < bestDistance ||
			(distance == bestDistance && candidate.ID < best.ID) {
			best = candidate
			bestDistance = distance
		}
	}

	if best == nil {
		DispatchAttemptsTotal.WithLabelValues(mode.String(), "no_candidate").Inc()
		return nil, ErrNoCandidateAvailable
	}

	DispatchAttemptsTotal.WithLabelValues(mode.String(), "found").Inc()
	return best, nil
}

// isEligible перепроверяет фильтр реестра, битые локации пропускаются.
func isEligible(r *entities.Rider, mode entities.ServiceModeType, exclude []int64) bool {
	if r.Status != entities.RiderAvailable || !r.IsAvailable || r.HasActiveJob() {
		return false
	}
	if r.Location == nil || !r.Location.Valid() {
		return false
	}
	if mode == entities.ServiceModeRideService && r.ServiceMode != entities.ServiceModeRideService {
		return false
	}
	for _, id := range exclude {
		if id == r.ID {
			return false
		}
	}
	return true
}
