// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solidStats is a baseline worker that passes the gate comfortably.
func solidStats() WorkerStats {
	return WorkerStats{
		WorkerID:            uuid.New(),
		TotalCompleted:      20,
		AvgRating:           4.0,
		ResponseTimeMinutes: 30,
		CompletionRate:      0.9,
		CancellationRate:    0.05,
		OnTimeRate:          0.85,
	}
}

func TestScore_GateDisqualifiers(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorkerStats)
	}{
		{"too few jobs", func(s *WorkerStats) { s.TotalCompleted = MinJobsForRanking - 1 }},
		{"zero jobs", func(s *WorkerStats) { s.TotalCompleted = 0 }},
		{"rating below minimum", func(s *WorkerStats) { s.AvgRating = 2.9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := solidStats()
			tt.mutate(&stats)
			assert.Equal(t, 0, Score(stats), "gate failures are hard zero, not low scores")
		})
	}
}

func TestScore_GateBoundaries(t *testing.T) {
	stats := solidStats()
	stats.TotalCompleted = MinJobsForRanking
	stats.AvgRating = MinRating
	assert.Greater(t, Score(stats), 0, "exactly at the thresholds still qualifies")
}

func TestScore_PerfectWorker(t *testing.T) {
	stats := WorkerStats{
		WorkerID:            uuid.New(),
		TotalCompleted:      100,
		AvgRating:           5.0,
		ResponseTimeMinutes: 5,
		CompletionRate:      1.0,
		CancellationRate:    0.0,
		OnTimeRate:          1.0,
	}
	assert.Equal(t, 100, Score(stats))
}

func TestScore_WorstQualifiedWorker(t *testing.T) {
	stats := WorkerStats{
		WorkerID:            uuid.New(),
		TotalCompleted:      MinJobsForRanking,
		AvgRating:           MinRating,
		ResponseTimeMinutes: MaxResponseMinutes,
		CompletionRate:      0.0,
		CancellationRate:    1.0,
		OnTimeRate:          0.0,
	}
	assert.Equal(t, 0, Score(stats), "all sub-scores at zero yields zero")
}

func TestScore_Idempotent(t *testing.T) {
	stats := solidStats()
	first := Score(stats)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(stats))
	}
}

func TestScore_RatingMonotonic(t *testing.T) {
	stats := solidStats()
	prev := -1
	for rating := 3.0; rating <= 5.0; rating += 0.1 {
		stats.AvgRating = rating
		score := Score(stats)
		assert.GreaterOrEqual(t, score, prev, "rating %.1f", rating)
		prev = score
	}
}

func TestScore_CancellationMonotonic(t *testing.T) {
	stats := solidStats()
	prev := 101
	for rate := 0.0; rate <= 1.0; rate += 0.05 {
		stats.CancellationRate = rate
		score := Score(stats)
		assert.LessOrEqual(t, score, prev, "cancellation rate %.2f", rate)
		prev = score
	}
}

func TestScore_ResponseTimeDegradesSmoothly(t *testing.T) {
	stats := solidStats()

	stats.ResponseTimeMinutes = FastResponseMinutes
	fast := Score(stats)
	stats.ResponseTimeMinutes = 60
	mid := Score(stats)
	stats.ResponseTimeMinutes = MaxResponseMinutes
	slow := Score(stats)

	assert.Greater(t, fast, mid)
	assert.Greater(t, mid, slow)
	// At the cutoff the sub-score hits zero but the worker still receives the
	// other weighted components.
	assert.Greater(t, slow, 0)
}

func TestScore_RatingClampsOutsideScale(t *testing.T) {
	stats := solidStats()
	stats.AvgRating = 5.0
	atMax := Score(stats)
	stats.AvgRating = 5.4 // bad aggregator data
	assert.Equal(t, atMax, Score(stats))
}

func TestIsQualified(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorkerStats)
		want   bool
	}{
		{"baseline", func(*WorkerStats) {}, true},
		{"too few jobs", func(s *WorkerStats) { s.TotalCompleted = 4 }, false},
		{"low rating", func(s *WorkerStats) { s.AvgRating = 2.99 }, false},
		{"too slow", func(s *WorkerStats) { s.ResponseTimeMinutes = MaxResponseMinutes + 1 }, false},
		{"at response cutoff", func(s *WorkerStats) { s.ResponseTimeMinutes = MaxResponseMinutes }, true},
		{"at job minimum", func(s *WorkerStats) { s.TotalCompleted = MinJobsForRanking }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := solidStats()
			tt.mutate(&stats)
			assert.Equal(t, tt.want, IsQualified(stats))
		})
	}
}

func TestScoreGate_ConsistentWithQualification(t *testing.T) {
	// Whenever qualification fails on job count or rating, the score must be
	// zero. Response time is deliberately different: qualification hard-cuts
	// at the cutoff while scoring degrades smoothly to zero there.
	stats := solidStats()
	stats.TotalCompleted = 3
	assert.False(t, IsQualified(stats))
	assert.Equal(t, 0, Score(stats))

	stats = solidStats()
	stats.AvgRating = 2.5
	assert.False(t, IsQualified(stats))
	assert.Equal(t, 0, Score(stats))

	stats = solidStats()
	stats.ResponseTimeMinutes = 150
	assert.False(t, IsQualified(stats))
	assert.Greater(t, Score(stats), 0,
		"slow responders are unqualified to claim but still receive a nonzero score from other components")
}

func TestReasons(t *testing.T) {
	stats := WorkerStats{
		TotalCompleted:      10,
		AvgRating:           4.8,
		ResponseTimeMinutes: 10,
		CompletionRate:      0.95,
		OnTimeRate:          0.92,
		CancellationRate:    0.02,
	}
	reasons := Reasons(stats)
	assert.Contains(t, reasons, "Excellent rating")
	assert.Contains(t, reasons, "Fast responder")

	// Reasons never feed the score: identical stats with different reason
	// outcomes is impossible, but a reason-threshold miss must not move it.
	withReasons := Score(stats)
	stats.AvgRating = 4.4 // drops "Excellent rating"
	assert.NotContains(t, Reasons(stats), "Excellent rating")
	assert.LessOrEqual(t, Score(stats), withReasons)
}

func TestScore_StrongWorkerScenario(t *testing.T) {
	stats := WorkerStats{
		WorkerID:            uuid.New(),
		TotalCompleted:      10,
		AvgRating:           4.8,
		ResponseTimeMinutes: 10,
		CompletionRate:      0.95,
		OnTimeRate:          0.92,
		CancellationRate:    0.02,
	}
	score := Score(stats)
	require.GreaterOrEqual(t, score, 85, "strong worker lands near the high end")

	reasons := Reasons(stats)
	assert.Contains(t, reasons, "Excellent rating")
	assert.Contains(t, reasons, "Fast responder")
}
