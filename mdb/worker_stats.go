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

package mdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cardinalhq/marketcore/internal/matching"
)

// WorkerStats loads one worker's rolling statistics. found is false when the
// aggregator has not produced a row for the worker yet. Implements
// matching.StatsSource.
func (store *Store) WorkerStats(ctx context.Context, workerID uuid.UUID) (matching.WorkerStats, bool, error) {
	var stats matching.WorkerStats
	err := store.connPool.QueryRow(ctx, `
		SELECT worker_id, total_completed, avg_rating, response_time_minutes, completion_rate, cancellation_rate, on_time_rate
		FROM worker_stats
		WHERE worker_id = $1`, workerID).
		Scan(&stats.WorkerID, &stats.TotalCompleted, &stats.AvgRating,
			&stats.ResponseTimeMinutes, &stats.CompletionRate,
			&stats.CancellationRate, &stats.OnTimeRate)
	if errors.Is(err, pgx.ErrNoRows) {
		return matching.WorkerStats{}, false, nil
	}
	if err != nil {
		return matching.WorkerStats{}, false, fmt.Errorf("query worker_stats: %w", err)
	}
	return stats, true, nil
}

// ListWorkerStats returns every worker's statistics, for ranking a full
// candidate pool.
func (store *Store) ListWorkerStats(ctx context.Context) ([]matching.WorkerStats, error) {
	rows, err := store.connPool.Query(ctx, `
		SELECT worker_id, total_completed, avg_rating, response_time_minutes, completion_rate, cancellation_rate, on_time_rate
		FROM worker_stats
		ORDER BY worker_id`)
	if err != nil {
		return nil, fmt.Errorf("query worker_stats: %w", err)
	}
	defer rows.Close()

	var out []matching.WorkerStats
	for rows.Next() {
		var stats matching.WorkerStats
		if err := rows.Scan(&stats.WorkerID, &stats.TotalCompleted, &stats.AvgRating,
			&stats.ResponseTimeMinutes, &stats.CompletionRate,
			&stats.CancellationRate, &stats.OnTimeRate); err != nil {
			return nil, fmt.Errorf("scan worker_stats row: %w", err)
		}
		out = append(out, stats)
	}
	return out, rows.Err()
}

// UpsertWorkerStats writes a worker's statistics snapshot. The external
// aggregator owns these values; this is its write path into the store.
func (store *Store) UpsertWorkerStats(ctx context.Context, stats matching.WorkerStats) error {
	_, err := store.connPool.Exec(ctx, `
		INSERT INTO worker_stats (worker_id, total_completed, avg_rating, response_time_minutes, completion_rate, cancellation_rate, on_time_rate, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (worker_id) DO UPDATE SET
			total_completed = EXCLUDED.total_completed,
			avg_rating = EXCLUDED.avg_rating,
			response_time_minutes = EXCLUDED.response_time_minutes,
			completion_rate = EXCLUDED.completion_rate,
			cancellation_rate = EXCLUDED.cancellation_rate,
			on_time_rate = EXCLUDED.on_time_rate,
			updated_at = now()`,
		stats.WorkerID, stats.TotalCompleted, stats.AvgRating,
		stats.ResponseTimeMinutes, stats.CompletionRate,
		stats.CancellationRate, stats.OnTimeRate)
	if err != nil {
		return fmt.Errorf("upsert worker_stats row: %w", err)
	}
	return nil
}
