package main

import (
	"math"
	"sync"

	"github.com/halcyon-labs/aloft/config"
	"github.com/halcyon-labs/aloft/flight"
)

const evalDT = 1.0 / 60.0

// Handling-quality targets. The cost surface is built from squared errors
// against these, so the optimizer trades the scenarios off smoothly.
const (
	targetPullG     = 4.0  // peak load factor in a full pull
	maxStallFrac    = 0.45 // stall penetration ceiling during the pull
	rollTargetFrac  = 0.85 // settled roll rate as a fraction of the limit
	betaCeiling     = 0.35 // rad of sideslip tolerated under full rudder
	trimSpeedBand   = 0.10 // fractional speed error tolerated hands-off
	trimAltBand     = 30.0 // meters of hands-off altitude drift tolerated
)

// scenarioResult carries the per-scenario cost contribution.
type scenarioResult struct {
	name string
	cost float64
}

// FitnessEvaluator scores a control gain vector by flying a fixed set of
// headless maneuvers and measuring handling quality.
type FitnessEvaluator struct {
	params     *ParamVector
	baseConfig *config.Config

	mu       sync.Mutex
	lastCost []scenarioResult
}

// NewFitnessEvaluator creates a new evaluator over the given base config.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{params: params, baseConfig: baseCfg}
}

// LastBreakdown returns the per-scenario costs from the most recent Evaluate.
func (fe *FitnessEvaluator) LastBreakdown() []scenarioResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCost
}

// Evaluate computes the scalar cost for a gain vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, raw)

	scenarios := []struct {
		name string
		run  func(*config.Config) float64
	}{
		{"trim", fe.trimCost},
		{"pull", fe.pullCost},
		{"roll", fe.rollCost},
		{"rudder", fe.rudderCost},
	}

	results := make([]scenarioResult, len(scenarios))
	var wg sync.WaitGroup
	for i, sc := range scenarios {
		wg.Add(1)
		go func(idx int, name string, run func(*config.Config) float64) {
			defer wg.Done()
			results[idx] = scenarioResult{name: name, cost: run(cfg)}
		}(i, sc.name, sc.run)
	}
	wg.Wait()

	var total float64
	for _, r := range results {
		total += r.cost
	}

	fe.mu.Lock()
	fe.lastCost = results
	fe.mu.Unlock()

	return total
}

// copyConfig returns an independent copy of the base config. Config holds
// only value fields, so a struct copy is a deep copy.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// fly advances a fresh vehicle for the given duration, calling perStep before
// each step, and returns every snapshot.
func fly(cfg *config.Config, seconds float64, perStep func(m *flight.Model, step int)) []flight.Snapshot {
	m := flight.New(cfg)
	n := int(seconds / evalDT)
	out := make([]flight.Snapshot, 0, n)
	for i := 0; i < n; i++ {
		if perStep != nil {
			perStep(m, i)
		}
		out = append(out, m.Step(evalDT))
	}
	return out
}

// trimCost scores hands-off flight: hold speed, hold altitude, hold 1 g.
func (fe *FitnessEvaluator) trimCost(cfg *config.Config) float64 {
	snaps := fly(cfg, 8, nil)

	var gErr, speedSum float64
	for _, s := range snaps {
		d := s.GForce - 1
		gErr += d * d
		speedSum += s.Speed
	}
	gErr /= float64(len(snaps))

	meanSpeed := speedSum / float64(len(snaps))
	speedErr := (meanSpeed - cfg.Vehicle.CruiseSpeed) / (cfg.Vehicle.CruiseSpeed * trimSpeedBand)

	altDrift := (snaps[len(snaps)-1].Altitude - cfg.Vehicle.InitialAltitude) / trimAltBand

	return 4*gErr + speedErr*speedErr + altDrift*altDrift
}

// pullCost scores a full 2 s pull: reach the target peak G without pushing
// past the stall penetration ceiling.
func (fe *FitnessEvaluator) pullCost(cfg *config.Config) float64 {
	snaps := fly(cfg, 2, func(m *flight.Model, _ int) {
		m.ApplyPointerDelta(0, 1e6)
	})

	var peakG, maxStall float64
	for _, s := range snaps {
		peakG = math.Max(peakG, s.GForce)
		maxStall = math.Max(maxStall, s.StallFraction)
	}

	gErr := (peakG - targetPullG) / targetPullG
	cost := gErr * gErr
	if over := maxStall - maxStallFrac; over > 0 {
		cost += 25 * over * over
	}
	return cost
}

// rollCost scores a sustained full roll: settle near the rate limit without
// chattering against it.
func (fe *FitnessEvaluator) rollCost(cfg *config.Config) float64 {
	snaps := fly(cfg, 2, func(m *flight.Model, _ int) {
		m.ApplyPointerDelta(1e6, 0)
	})

	target := rollTargetFrac * cfg.Control.MaxRollRate
	tail := snaps[len(snaps)/2:]
	var err float64
	for _, s := range tail {
		d := (s.RollRate - target) / cfg.Control.MaxRollRate
		err += d * d
	}
	return err / float64(len(tail))
}

// rudderCost scores a held full rudder input: the sideslip restoring terms
// should cap beta rather than let the nose walk out.
func (fe *FitnessEvaluator) rudderCost(cfg *config.Config) float64 {
	snaps := fly(cfg, 2, func(m *flight.Model, _ int) {
		m.SetControlInputs(0, 1, false, false)
	})

	var maxBeta float64
	for _, s := range snaps {
		maxBeta = math.Max(maxBeta, math.Abs(s.Beta))
	}
	if over := maxBeta - betaCeiling; over > 0 {
		return 10 * over * over
	}
	return 0
}
