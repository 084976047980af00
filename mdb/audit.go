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
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cardinalhq/marketcore/internal/lifecycle"
)

// AuditRecord is one persisted audit_log row.
type AuditRecord struct {
	ID           string          `json:"id"`
	ResourceType string          `json:"resource_type"`
	RecordID     uuid.UUID       `json:"record_id"`
	EventType    string          `json:"event_type"`
	Actor        string          `json:"actor"`
	ActorID      string          `json:"actor_id,omitempty"`
	StatusBefore string          `json:"status_before"`
	StatusAfter  string          `json:"status_after"`
	Metadata     json.RawMessage `json:"metadata"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AppendAudit inserts an audit entry. The log is append-only: no update or
// delete path exists in this package. Implements lifecycle.AuditWriter.
func (store *Store) AppendAudit(ctx context.Context, entry lifecycle.AuditEntry) error {
	metadata := map[string]string{}
	if entry.Reason != "" {
		metadata["reason"] = entry.Reason
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	_, err = store.connPool.Exec(ctx, `
		INSERT INTO audit_log (id, resource_type, record_id, event_type, actor, actor_id, status_before, status_after, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, string(entry.ResourceType), entry.RecordID, entry.EventType,
		entry.Actor, nullIfEmpty(entry.ActorID), entry.StatusBefore, entry.StatusAfter,
		metaJSON, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit_log row: %w", err)
	}
	return nil
}

// AuditForRecord returns the newest audit entries for one resource, up to
// limit rows, newest first.
func (store *Store) AuditForRecord(ctx context.Context, recordID uuid.UUID, limit int32) ([]AuditRecord, error) {
	rows, err := store.connPool.Query(ctx, `
		SELECT id, resource_type, record_id, event_type, actor, COALESCE(actor_id, ''), status_before, status_after, metadata, created_at
		FROM audit_log
		WHERE record_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, recordID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit_log: %w", err)
	}
	defer rows.Close()

	var out []AuditRecord
	for rows.Next() {
		var rec AuditRecord
		if err := rows.Scan(&rec.ID, &rec.ResourceType, &rec.RecordID, &rec.EventType,
			&rec.Actor, &rec.ActorID, &rec.StatusBefore, &rec.StatusAfter,
			&rec.Metadata, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit_log row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
