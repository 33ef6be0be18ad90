// Package geo simulates the external distance/ETA lookup. It keeps the
// real dependency's contract (two addresses in, distance and travel
// time out, bounded latency, hard failure on timeout) while producing
// stubbed distances.
package geo

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"
)

const (
	// BasePrepTimeMinutes is the fixed kitchen preparation time folded
	// into every ETA.
	BasePrepTimeMinutes = 15

	// MinutesPerKm converts distance into travel time.
	MinutesPerKm = 8
)

// distancePoolKm are the stubbed distances the simulator draws from.
var distancePoolKm = []float64{0.8, 1.2, 1.5, 2.1, 2.8, 3.2}

type SimulatedEstimator struct {
	latency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedEstimator builds an estimator that answers after latency.
// Pass a fixed seed for deterministic distances in tests.
func NewSimulatedEstimator(latency time.Duration, seed int64) *SimulatedEstimator {
	return &SimulatedEstimator{
		latency: latency,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (e *SimulatedEstimator) Estimate(ctx context.Context, deliveryAddress, originAddress string) (interfaces.Estimate, error) {
	if strings.TrimSpace(deliveryAddress) == "" || strings.TrimSpace(originAddress) == "" {
		return interfaces.Estimate{}, fmt.Errorf("%w: missing address", domain.ErrEstimationFailed)
	}

	timer := time.NewTimer(e.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return interfaces.Estimate{}, fmt.Errorf("%w: %v", domain.ErrEstimationFailed, ctx.Err())
	case <-timer.C:
	}

	e.mu.Lock()
	distance := distancePoolKm[e.rng.Intn(len(distancePoolKm))]
	e.mu.Unlock()

	travel, eta := ETAFor(distance)
	return interfaces.Estimate{
		DistanceKm:        distance,
		TravelTimeMinutes: travel,
		ETAMinutes:        eta,
	}, nil
}

// ETAFor computes travel time and total ETA for a distance:
// travel = ceil(km * MinutesPerKm), eta = BasePrepTimeMinutes + travel.
func ETAFor(distanceKm float64) (travelMinutes, etaMinutes int) {
	travelMinutes = int(math.Ceil(distanceKm * MinutesPerKm))
	return travelMinutes, BasePrepTimeMinutes + travelMinutes
}
