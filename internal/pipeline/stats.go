package pipeline

import (
	"sort"
	"sync"
	"time"
)

// Pipeline stages with recorded latencies.
const (
	StageSegment = "segment"
	StageEnrich  = "enrich"
	StageRank    = "rank"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// StatsSnapshot is a point-in-time aggregate of one stage's latency samples.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// StageStats tracks recent per-stage latencies within a rolling window.
type StageStats struct {
	mu      sync.Mutex
	samples map[string][]sample
	maxAge  time.Duration
}

func NewStageStats(maxAge time.Duration) *StageStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &StageStats{
		samples: make(map[string][]sample),
		maxAge:  maxAge,
	}
}

// Record adds one latency sample for a stage.
func (s *StageStats) Record(stage string, durationMs int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(stage, now)
	s.samples[stage] = append(s.samples[stage], sample{
		timestamp:  now,
		durationMs: durationMs,
	})
}

// Snapshot aggregates every stage's samples still inside the window.
func (s *StageStats) Snapshot() map[string]StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]StatsSnapshot, len(s.samples))
	for stage := range s.samples {
		s.pruneLocked(stage, now)
		samples := s.samples[stage]
		if len(samples) == 0 {
			continue
		}

		values := make([]int64, 0, len(samples))
		var sum int64
		for _, sm := range samples {
			values = append(values, sm.durationMs)
			sum += sm.durationMs
		}
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

		out[stage] = StatsSnapshot{
			Count: len(values),
			MinMs: values[0],
			MaxMs: values[len(values)-1],
			AvgMs: float64(sum) / float64(len(values)),
			P50Ms: percentile(values, 50),
			P95Ms: percentile(values, 95),
			P99Ms: percentile(values, 99),
		}
	}
	return out
}

func (s *StageStats) pruneLocked(stage string, now time.Time) {
	cutoff := now.Add(-s.maxAge)
	samples := s.samples[stage]
	writeIdx := 0
	for _, sm := range samples {
		if !sm.timestamp.Before(cutoff) {
			samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples[stage] = samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
