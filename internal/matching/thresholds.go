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

// Package matching ranks eligible workers for a piece of work by combining
// rolling performance statistics into a 0-100 match score.
package matching

// Qualification thresholds. Both the scoring gate and IsQualified read these;
// neither hardcodes its own copy.
const (
	// MinJobsForRanking is the minimum completed job count before a worker
	// is scored at all.
	MinJobsForRanking = 5
	// MinRating is the minimum average rating (1.0-5.0 scale) to be scored.
	MinRating = 3.0
	// MaxResponseMinutes disqualifies workers slower than this from claiming
	// work, and is the zero point of the response-time sub-score.
	MaxResponseMinutes = 120.0
	// FastResponseMinutes is the response time at or under which the
	// response-time sub-score is a full 100.
	FastResponseMinutes = 5.0
	// MaxRating is the top of the rating scale; ratings at or above it map
	// to a full rating sub-score.
	MaxRating = 5.0
)

// Score weights, in percent. They must sum to 100; scoring clamps the final
// value anyway as a safety net against future edits here.
const (
	WeightCompletion   = 30
	WeightRating       = 25
	WeightResponseTime = 20
	WeightOnTime       = 15
	WeightCancellation = 10
)

// Advisory reason thresholds. Reasons are display text only and never feed
// back into the score.
const (
	reasonExcellentRating   = 4.5
	reasonFastResponderMins = 30.0
	reasonReliableRate      = 0.95
	reasonOnTimeRate        = 0.90
	reasonLowCancelRate     = 0.02
)
