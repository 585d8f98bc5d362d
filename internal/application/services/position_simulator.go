package services

import (
	"math"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/providers"
)

const (
	minInitialPosition = 5
	maxInitialPosition = 20
	advanceProbability = 0.4
	waitTimeFactor     = 0.7
	initialWaitOffset  = 2
)

// PositionSimulator models queue movement as a stochastic process:
// joining lands the member at a uniform position in [5, 20], and each
// tick the position advances by one with 40% probability. Wait time is
// always derived from position, never stepped independently.
type PositionSimulator struct {
	rng providers.RandomSource
}

// NewPositionSimulator creates a new position simulator
func NewPositionSimulator(rng providers.RandomSource) *PositionSimulator {
	return &PositionSimulator{rng: rng}
}

// InitialPosition returns a uniform starting position in [5, 20]
func (s *PositionSimulator) InitialPosition() int {
	return minInitialPosition + s.rng.Intn(maxInitialPosition-minInitialPosition+1)
}

// InitialWaitTime estimates minutes to wait for a fresh join. The join
// estimate carries a +2 minute offset over the steady-state formula.
func (s *PositionSimulator) InitialWaitTime(position int) int {
	return waitEstimate(position) + initialWaitOffset
}

// Step runs one simulation tick against the record in place. It reports
// whether the position advanced. Terminal and non-joined records are
// never mutated.
func (s *PositionSimulator) Step(record *entities.QueueRecord) bool {
	if record == nil || !record.IsTracked() {
		return false
	}
	if s.rng.Float64() >= advanceProbability {
		return false
	}
	record.Position--
	if record.Position < 0 {
		record.Position = 0
	}
	record.WaitTime = waitEstimate(record.Position)
	return true
}

func waitEstimate(position int) int {
	if position <= 0 {
		return 0
	}
	return int(math.Floor(float64(position) * waitTimeFactor))
}
