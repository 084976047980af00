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

package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cardinalhq/marketcore/internal/idgen"
	"github.com/cardinalhq/marketcore/internal/logctx"
)

// ConditionalStatusWriter performs the optimistic status update that must
// follow a successful guard check: set the new status only if the row still
// holds the status the guard observed.
type ConditionalStatusWriter interface {
	// UpdateResourceStatus returns updated=false when zero rows matched,
	// meaning a concurrent writer moved the resource first.
	UpdateResourceStatus(ctx context.Context, rt ResourceType, id uuid.UUID, expected, target string) (updated bool, err error)
}

// Actor identifies who requested a transition, for accepted-transition audit
// entries.
type Actor struct {
	Kind string // "customer", "partner", "admin", "system"
	ID   string
}

// Transitioner pairs the guard with the conditional write, closing the
// read-then-decide race the guard alone cannot: both callers of a
// pending -> paid and a pending -> cancelled attempt can pass the guard, but
// only one conditional write matches. The loser gets ErrStaleStatus and
// re-runs from the new status.
//
// The guard stays rejection-only for auditing; Transitioner records the
// accepted transition itself once the write lands.
type Transitioner struct {
	guard  *Guard
	writer ConditionalStatusWriter
	audit  AuditWriter
	ids    idgen.IDGenerator
	now    func() time.Time
}

// NewTransitioner builds a Transitioner sharing the guard's audit writer.
func NewTransitioner(guard *Guard, writer ConditionalStatusWriter) *Transitioner {
	return &Transitioner{
		guard:  guard,
		writer: writer,
		audit:  guard.audit,
		ids:    guard.ids,
		now:    guard.now,
	}
}

// Apply validates and performs the transition. On success the resource's
// status has been durably moved to target and an accepted-transition audit
// entry appended. Returns the guard's *CheckError unchanged on rejection,
// and ErrStaleStatus when the conditional write lost a race.
func (t *Transitioner) Apply(ctx context.Context, rt ResourceType, id uuid.UUID, target string, actor Actor) error {
	expected, err := t.guard.check(ctx, rt, id, target)
	if err != nil {
		return err
	}

	updated, err := t.writer.UpdateResourceStatus(ctx, rt, id, expected, target)
	if err != nil {
		return fmt.Errorf("update %s %s status: %w", rt, id, err)
	}
	if !updated {
		return fmt.Errorf("%s %s: %w", rt, id, ErrStaleStatus)
	}

	now := t.now().UTC()
	entry := AuditEntry{
		ID:           t.ids.Make(now),
		ResourceType: rt,
		RecordID:     id,
		EventType:    EventTransitionAccepted,
		Actor:        actor.Kind,
		ActorID:      actor.ID,
		StatusBefore: expected,
		StatusAfter:  target,
		CreatedAt:    now,
	}
	if err := t.audit.AppendAudit(ctx, entry); err != nil {
		// The status write already landed; the transition stands.
		logctx.FromContext(ctx).Error("failed to append accepted audit entry",
			"resource_type", string(rt),
			"record_id", id.String(),
			"error", err.Error())
	}
	return nil
}
