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

import "sort"

// RankWorkers scores every candidate, drops zero scores (which includes all
// disqualified workers), and returns the rest ordered by score descending
// with dense 1-based ranks. The sort is stable: equal scores keep their
// input order, so identical input always produces identical output.
func RankWorkers(statsList []WorkerStats) []MatchScore {
	scored := make([]MatchScore, 0, len(statsList))
	for _, stats := range statsList {
		score := Score(stats)
		if score == 0 {
			continue
		}
		scored = append(scored, MatchScore{
			WorkerID:  stats.WorkerID,
			Score:     score,
			Qualified: IsQualified(stats),
			Reasons:   Reasons(stats),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	for i := range scored {
		scored[i].MatchRank = i + 1
	}
	return scored
}
