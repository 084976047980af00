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
	"math"

	"github.com/google/uuid"
)

// WorkerStats is a worker's rolling performance snapshot, supplied fully
// formed by the statistics aggregator. This package treats it as read-only.
type WorkerStats struct {
	WorkerID            uuid.UUID `json:"worker_id"`
	TotalCompleted      int       `json:"total_completed"`
	AvgRating           float64   `json:"avg_rating"`
	ResponseTimeMinutes float64   `json:"response_time_minutes"`
	CompletionRate      float64   `json:"completion_rate"`
	CancellationRate    float64   `json:"cancellation_rate"`
	OnTimeRate          float64   `json:"on_time_rate"`
}

// MatchScore is one ranked candidate. Qualified distinguishes a worker who
// failed the scoring gate from one whose weighted score computed to zero.
type MatchScore struct {
	WorkerID  uuid.UUID `json:"worker_id"`
	Score     int       `json:"score"`
	Qualified bool      `json:"qualified"`
	Reasons   []string  `json:"reasons"`
	MatchRank int       `json:"match_rank"`
}

// Score computes the 0-100 match score for a worker. Workers below the
// minimum job count or rating are hard-disqualified to 0, not merely scored
// low. The weighted combination is:
//
//	completion 30% | rating 25% | response time 20% | on-time 15% | cancellation 10%
func Score(stats WorkerStats) int {
	if stats.TotalCompleted < MinJobsForRanking || stats.AvgRating < MinRating {
		return 0
	}

	weighted := float64(WeightCompletion)*completionSubScore(stats) +
		float64(WeightRating)*ratingSubScore(stats) +
		float64(WeightResponseTime)*responseSubScore(stats) +
		float64(WeightOnTime)*onTimeSubScore(stats) +
		float64(WeightCancellation)*cancellationSubScore(stats)

	// Weights sum to 100 over sub-scores already clamped to [0, 100], so the
	// clamp only matters if the weight table changes.
	return int(math.Round(clamp(weighted/100, 0, 100)))
}

func completionSubScore(stats WorkerStats) float64 {
	return clamp(stats.CompletionRate*100, 0, 100)
}

// ratingSubScore maps [MinRating, MaxRating] linearly onto [0, 100].
func ratingSubScore(stats WorkerStats) float64 {
	return clamp((stats.AvgRating-MinRating)/(MaxRating-MinRating)*100, 0, 100)
}

// responseSubScore is a linear inverse: FastResponseMinutes or quicker scores
// 100, MaxResponseMinutes or slower scores 0.
func responseSubScore(stats WorkerStats) float64 {
	span := MaxResponseMinutes - FastResponseMinutes
	return clamp((MaxResponseMinutes-stats.ResponseTimeMinutes)/span*100, 0, 100)
}

func onTimeSubScore(stats WorkerStats) float64 {
	return clamp(stats.OnTimeRate*100, 0, 100)
}

func cancellationSubScore(stats WorkerStats) float64 {
	return clamp((1-stats.CancellationRate)*100, 0, 100)
}

// Reasons returns the human-readable justifications for a worker's score, in
// a fixed order. They are advisory only and never influence the score.
func Reasons(stats WorkerStats) []string {
	var reasons []string
	if stats.AvgRating >= reasonExcellentRating {
		reasons = append(reasons, "Excellent rating")
	}
	if stats.ResponseTimeMinutes < reasonFastResponderMins {
		reasons = append(reasons, "Fast responder")
	}
	if stats.CompletionRate >= reasonReliableRate {
		reasons = append(reasons, "Reliably completes jobs")
	}
	if stats.OnTimeRate >= reasonOnTimeRate {
		reasons = append(reasons, "Consistently on time")
	}
	if stats.CancellationRate <= reasonLowCancelRate {
		reasons = append(reasons, "Rarely cancels")
	}
	return reasons
}

// IsQualified reports whether a worker meets the minimum bar to claim work:
// enough completed jobs, an acceptable rating, and a response time within the
// hard cutoff. Note the asymmetry with Score: scoring degrades response time
// smoothly to 0 at MaxResponseMinutes, while this predicate hard-cuts there.
func IsQualified(stats WorkerStats) bool {
	return stats.TotalCompleted >= MinJobsForRanking &&
		stats.AvgRating >= MinRating &&
		stats.ResponseTimeMinutes <= MaxResponseMinutes
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
