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

	"github.com/cardinalhq/marketcore/internal/lifecycle"
)

// resourceTables maps each resource type to the table holding its status
// column. Every table here has (id uuid primary key, status text,
// updated_at timestamptz). The table names are fixed identifiers, never
// interpolated from caller input.
var resourceTables = map[lifecycle.ResourceType]string{
	lifecycle.ResourceEscrow:  "escrow_transactions",
	lifecycle.ResourceInquiry: "inquiries",
	lifecycle.ResourceOffer:   "offers",
	lifecycle.ResourceTask:    "tasks",
}

func resourceTable(rt lifecycle.ResourceType) (string, error) {
	table, ok := resourceTables[rt]
	if !ok {
		return "", fmt.Errorf("no status table registered for resource type %q", rt)
	}
	return table, nil
}

// ResourceStatus loads the current status of a resource. found is false when
// no row exists for the id. Implements lifecycle.StatusReader.
func (store *Store) ResourceStatus(ctx context.Context, rt lifecycle.ResourceType, id uuid.UUID) (string, bool, error) {
	table, err := resourceTable(rt)
	if err != nil {
		return "", false, err
	}

	var status string
	q := fmt.Sprintf(`SELECT status FROM %s WHERE id = $1`, table)
	err = store.connPool.QueryRow(ctx, q, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query %s status: %w", table, err)
	}
	return status, true, nil
}

// UpdateResourceStatus performs the optimistic status write: the row moves to
// target only if it still holds expected. Returns updated=false when zero
// rows matched, which callers treat as a lost race. Implements
// lifecycle.ConditionalStatusWriter.
func (store *Store) UpdateResourceStatus(ctx context.Context, rt lifecycle.ResourceType, id uuid.UUID, expected, target string) (bool, error) {
	table, err := resourceTable(rt)
	if err != nil {
		return false, err
	}

	q := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`, table)
	tag, err := store.connPool.Exec(ctx, q, target, id, expected)
	if err != nil {
		return false, fmt.Errorf("update %s status: %w", table, err)
	}
	return tag.RowsAffected() > 0, nil
}
