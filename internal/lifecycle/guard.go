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

// Audit event types.
const (
	EventTransitionRejected = "transition_rejected"
	EventTransitionAccepted = "transition_accepted"
)

// Audit rejection reasons stored in metadata.reason.
const (
	ReasonInvalidTransition = "INVALID_TRANSITION"
	ReasonTerminalState     = "TERMINAL_STATE"
)

// ActorSystem is the actor recorded on guard-originated audit entries.
const ActorSystem = "system"

// AuditEntry describes one accepted or rejected transition attempt. Entries
// are append-only; nothing in this package updates or deletes them.
type AuditEntry struct {
	ID           string       `json:"id"`
	ResourceType ResourceType `json:"resource_type"`
	RecordID     uuid.UUID    `json:"record_id"`
	EventType    string       `json:"event_type"`
	Actor        string       `json:"actor"`
	ActorID      string       `json:"actor_id,omitempty"`
	StatusBefore string       `json:"status_before"`
	// StatusAfter is the attempted target, recorded even when the attempt
	// was rejected.
	StatusAfter string    `json:"status_after"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// StatusReader loads the current persisted status of a resource.
type StatusReader interface {
	// ResourceStatus returns the resource's current status, or found=false
	// when no row exists for the id.
	ResourceStatus(ctx context.Context, rt ResourceType, id uuid.UUID) (status string, found bool, err error)
}

// AuditWriter appends an audit entry. Implementations must treat the log as
// append-only.
type AuditWriter interface {
	AppendAudit(ctx context.Context, entry AuditEntry) error
}

// Guard is the pre-flight transition check. It never mutates the resource:
// callers perform the actual status write after a successful check, and must
// pair it with a conditional write on the same expected status (see
// Transitioner). The guard writes exactly one audit entry per rejected
// attempt and none on success.
type Guard struct {
	reader StatusReader
	audit  AuditWriter
	ids    idgen.IDGenerator
	now    func() time.Time
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithIDGenerator overrides the audit entry id generator.
func WithIDGenerator(ids idgen.IDGenerator) GuardOption {
	return func(g *Guard) { g.ids = ids }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) GuardOption {
	return func(g *Guard) { g.now = now }
}

// NewGuard builds a Guard over the given status reader and audit writer.
func NewGuard(reader StatusReader, audit AuditWriter, opts ...GuardOption) *Guard {
	g := &Guard{
		reader: reader,
		audit:  audit,
		ids:    &idgen.InlineULIDGenerator{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AssertTransition checks whether the resource identified by (rt, id) may
// move to target. It returns nil when the transition is allowed, and a
// *CheckError otherwise:
//
//   - 400 when rt has no registered transition table (no audit entry; the
//     type cannot be resolved to a table or a store)
//   - 404 when the id does not exist (no audit entry)
//   - 409 when the current status is terminal, or when the edge
//     current -> target is not in the table (one audit entry either way)
//
// A nil return guarantees only that the transition was allowed against the
// status read here; concurrent writers can still invalidate it before the
// caller's own write lands. See Transitioner.Apply.
func (g *Guard) AssertTransition(ctx context.Context, rt ResourceType, id uuid.UUID, target string) error {
	_, err := g.check(ctx, rt, id, target)
	return err
}

// check runs the guard and returns the current status observed, so Apply can
// reuse it as the expected value for its conditional write.
func (g *Guard) check(ctx context.Context, rt ResourceType, id uuid.UUID, target string) (string, error) {
	table, ok := TableFor(rt)
	if !ok {
		return "", errUnknownResourceType(rt)
	}

	current, found, err := g.reader.ResourceStatus(ctx, rt, id)
	if err != nil {
		return "", fmt.Errorf("load %s %s status: %w", rt, id, err)
	}
	if !found {
		return "", errResourceNotFound(rt, id)
	}

	// Terminal is a blanket rule checked before table membership: edges such
	// as task completed -> expired must not read as an escape hatch once the
	// resource has already reached a terminal status.
	if table.IsTerminal(current) {
		g.writeRejection(ctx, rt, id, current, target, ReasonTerminalState)
		return current, errTerminalState(rt, id, current)
	}

	if !table.Allows(current, target) {
		g.writeRejection(ctx, rt, id, current, target, ReasonInvalidTransition)
		return current, errInvalidTransition(rt, id, current, target)
	}

	return current, nil
}

// writeRejection appends the rejection audit entry. Audit failures never mask
// the rejection decision; they are logged and dropped.
func (g *Guard) writeRejection(ctx context.Context, rt ResourceType, id uuid.UUID, current, target, reason string) {
	now := g.now().UTC()
	entry := AuditEntry{
		ID:           g.ids.Make(now),
		ResourceType: rt,
		RecordID:     id,
		EventType:    EventTransitionRejected,
		Actor:        ActorSystem,
		StatusBefore: current,
		StatusAfter:  target,
		Reason:       reason,
		CreatedAt:    now,
	}
	if err := g.audit.AppendAudit(ctx, entry); err != nil {
		logctx.FromContext(ctx).Error("failed to append rejection audit entry",
			"resource_type", string(rt),
			"record_id", id.String(),
			"reason", reason,
			"error", err.Error())
	}
}
