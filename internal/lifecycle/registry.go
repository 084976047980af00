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

// Package lifecycle validates status transitions for the marketplace's
// workflow resources and records every rejected attempt in the audit log.
//
// Each resource type carries an explicit transition table. Terminal statuses
// are enforced as a blanket rule before table membership is consulted: once a
// resource reaches a terminal status, no target is reachable from it, even if
// a table edge would otherwise suggest one.
package lifecycle

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
)

// ResourceType identifies which transition table governs a resource.
type ResourceType string

const (
	ResourceEscrow  ResourceType = "escrow"
	ResourceInquiry ResourceType = "inquiry"
	ResourceOffer   ResourceType = "offer"
	ResourceTask    ResourceType = "task"
)

// Escrow transaction statuses.
const (
	EscrowPending   = "pending"
	EscrowPaid      = "paid"
	EscrowReleased  = "released"
	EscrowRefunded  = "refunded"
	EscrowCancelled = "cancelled"
	EscrowDisputed  = "disputed"
)

// Inquiry statuses.
const (
	InquiryPending       = "pending"
	InquiryOfferReceived = "offer_received"
	InquiryClosed        = "closed"
	InquiryCompleted     = "completed"
)

// Offer statuses. These are stored in Slovenian, matching the production
// database enum: poslana = sent, sprejeta = accepted, zavrnjena = rejected.
const (
	OfferSent     = "poslana"
	OfferAccepted = "sprejeta"
	OfferRejected = "zavrnjena"
)

// Dispatchable task statuses.
const (
	TaskPending    = "pending"
	TaskPublished  = "published"
	TaskClaimed    = "claimed"
	TaskAccepted   = "accepted"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskExpired    = "expired"
	TaskCancelled  = "cancelled"
)

// Table is the transition graph for a single resource type: the set of
// allowed next statuses per current status, and the set of terminal statuses.
// Tables are immutable after process start and safe for concurrent use.
type Table struct {
	next     map[string]map[string]struct{}
	terminal map[string]struct{}
}

// NewTable builds a Table from an edge list and a terminal set.
func NewTable(edges map[string][]string, terminal []string) Table {
	t := Table{
		next:     make(map[string]map[string]struct{}, len(edges)),
		terminal: make(map[string]struct{}, len(terminal)),
	}
	for from, targets := range edges {
		set := make(map[string]struct{}, len(targets))
		for _, to := range targets {
			set[to] = struct{}{}
		}
		t.next[from] = set
	}
	for _, s := range terminal {
		t.terminal[s] = struct{}{}
	}
	return t
}

// IsTerminal reports whether status permits no further transitions.
func (t Table) IsTerminal(status string) bool {
	_, ok := t.terminal[status]
	return ok
}

// Allows reports whether the edge from -> to is present in the table. The
// terminal rule is not applied here; callers check IsTerminal first.
func (t Table) Allows(from, to string) bool {
	targets, ok := t.next[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// AllowedNext returns the sorted set of statuses reachable from the given
// status. Terminal statuses always return nil.
func (t Table) AllowedNext(from string) []string {
	if t.IsTerminal(from) {
		return nil
	}
	targets, ok := t.next[from]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(targets))
	for s := range targets {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Statuses returns every status the table knows about, sorted.
func (t Table) Statuses() []string {
	seen := make(map[string]struct{})
	for from, targets := range t.next {
		seen[from] = struct{}{}
		for to := range targets {
			seen[to] = struct{}{}
		}
	}
	for s := range t.terminal {
		seen[s] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// TerminalStatuses returns the terminal set, sorted.
func (t Table) TerminalStatuses() []string {
	out := make([]string, 0, len(t.terminal))
	for s := range t.terminal {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// tables is the process-wide registry. Adding a resource type is a pure data
// addition; the guard never needs to change.
var tables = map[ResourceType]Table{
	ResourceEscrow: NewTable(map[string][]string{
		EscrowPending: {EscrowPaid, EscrowCancelled},
		EscrowPaid:    {EscrowReleased, EscrowRefunded, EscrowDisputed},
		// Dispute resolution is driven by the admin flow, but its outcome
		// writes pass through the same guard.
		EscrowDisputed: {EscrowReleased, EscrowRefunded, EscrowCancelled},
	}, []string{EscrowReleased, EscrowRefunded, EscrowCancelled}),

	ResourceInquiry: NewTable(map[string][]string{
		InquiryPending:       {InquiryOfferReceived, InquiryClosed},
		InquiryOfferReceived: {InquiryCompleted, InquiryClosed},
	}, []string{InquiryCompleted, InquiryClosed}),

	ResourceOffer: NewTable(map[string][]string{
		OfferSent: {OfferAccepted, OfferRejected},
	}, []string{OfferAccepted, OfferRejected}),

	ResourceTask: NewTable(map[string][]string{
		TaskPending:    {TaskPublished, TaskCancelled},
		TaskPublished:  {TaskClaimed, TaskCancelled},
		TaskClaimed:    {TaskAccepted, TaskPublished, TaskCancelled},
		TaskAccepted:   {TaskInProgress, TaskClaimed, TaskCancelled},
		TaskInProgress: {TaskCompleted, TaskCancelled},
		// completed -> expired is reachable only while completed has not been
		// finalized; expired itself is terminal.
		TaskCompleted: {TaskExpired, TaskCancelled},
	}, []string{TaskExpired, TaskCancelled}),
}

// TableFor returns the transition table for a resource type.
func TableFor(rt ResourceType) (Table, bool) {
	t, ok := tables[rt]
	return t, ok
}

// RegisteredTypes returns every resource type in the registry, sorted.
func RegisteredTypes() []ResourceType {
	out := make([]ResourceType, 0, len(tables))
	for rt := range tables {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ValidateTables checks the registry for internal consistency: terminal
// statuses must have zero outgoing edges, and every edge target must be a
// known status (either a transition source or terminal). Run at startup or
// from the validate command; the guard itself does not depend on it.
func ValidateTables() error {
	var errs *multierror.Error
	for _, rt := range RegisteredTypes() {
		t := tables[rt]
		for from, targets := range t.next {
			if t.IsTerminal(from) {
				errs = multierror.Append(errs, fmt.Errorf(
					"%s: terminal status %q has %d outgoing edge(s)", rt, from, len(targets)))
			}
			for to := range targets {
				if _, isSource := t.next[to]; !isSource && !t.IsTerminal(to) {
					errs = multierror.Append(errs, fmt.Errorf(
						"%s: edge %q -> %q targets a status with no outgoing edges that is not terminal", rt, from, to))
				}
			}
		}
	}
	return errs.ErrorOrNil()
}
