package telemetry

import (
	"math"
	"math/rand"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// reservoirSize bounds the intervals kept for the p99 estimate. Runs with
// fewer intervals get an exact quantile.
const reservoirSize = 4096

// Summary aggregates a run's frame records.
type Summary struct {
	Frames         int     `csv:"frames"`
	MeanIntervalMs float64 `csv:"mean_interval_ms"`
	StdIntervalMs  float64 `csv:"std_interval_ms"`
	P99IntervalMs  float64 `csv:"p99_interval_ms"`
	MaxIntervalMs  float64 `csv:"max_interval_ms"`
	PeakEntities   int     `csv:"peak_entities"`
	PeakMissiles   int     `csv:"peak_missiles"`
	PeakSmoke      int     `csv:"peak_smoke"`
	Resets         uint64  `csv:"resets"`
	Rejected       uint64  `csv:"rejected"`
}

// Summarize computes interval statistics and population peaks. The first
// record has no interval and is left out of the interval statistics.
func Summarize(records []FrameRecord) Summary {
	acc := newAccumulator()
	for _, rec := range records {
		acc.add(rec)
	}
	return acc.summary()
}

// accumulator builds a Summary one record at a time in constant memory.
// Mean and deviation use Welford's method; p99 comes from a reservoir
// sample of the intervals.
type accumulator struct {
	s Summary

	intervals int
	mean, m2  float64
	reservoir []float64
	rng       *rand.Rand
}

func newAccumulator() *accumulator {
	return &accumulator{rng: rand.New(rand.NewSource(1))}
}

func (a *accumulator) add(rec FrameRecord) {
	first := a.s.Frames == 0
	a.s.Frames++
	a.s.PeakEntities = max(a.s.PeakEntities, rec.Entities)
	a.s.PeakMissiles = max(a.s.PeakMissiles, rec.Missiles)
	a.s.PeakSmoke = max(a.s.PeakSmoke, rec.Smoke)
	a.s.Resets = rec.Resets
	a.s.Rejected = rec.MissilesRejected + rec.SmokeRejected
	if first {
		return
	}

	v := rec.IntervalMs
	a.intervals++
	delta := v - a.mean
	a.mean += delta / float64(a.intervals)
	a.m2 += delta * (v - a.mean)
	a.s.MaxIntervalMs = max(a.s.MaxIntervalMs, v)

	if len(a.reservoir) < reservoirSize {
		a.reservoir = append(a.reservoir, v)
	} else if j := a.rng.Int63n(int64(a.intervals)); j < reservoirSize {
		a.reservoir[j] = v
	}
}

func (a *accumulator) summary() Summary {
	s := a.s
	if a.intervals == 0 {
		return s
	}
	s.MeanIntervalMs = a.mean
	if a.intervals > 1 {
		s.StdIntervalMs = math.Sqrt(a.m2 / float64(a.intervals-1))
	}
	sorted := slices.Clone(a.reservoir)
	slices.Sort(sorted)
	s.P99IntervalMs = stat.Quantile(0.99, stat.Empirical, sorted, nil)
	return s
}
