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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTables(t *testing.T) {
	require.NoError(t, ValidateTables())
}

func TestRegisteredTypes(t *testing.T) {
	types := RegisteredTypes()
	assert.Equal(t, []ResourceType{ResourceEscrow, ResourceInquiry, ResourceOffer, ResourceTask}, types)
}

func TestTableFor_Unknown(t *testing.T) {
	_, ok := TableFor("invoice")
	assert.False(t, ok)
}

func TestEscrowTable(t *testing.T) {
	table, ok := TableFor(ResourceEscrow)
	require.True(t, ok)

	assert.Equal(t, []string{EscrowCancelled, EscrowPaid}, table.AllowedNext(EscrowPending))
	assert.Equal(t, []string{EscrowDisputed, EscrowRefunded, EscrowReleased}, table.AllowedNext(EscrowPaid))
	assert.Equal(t, []string{EscrowCancelled, EscrowRefunded, EscrowReleased}, table.AllowedNext(EscrowDisputed))

	for _, s := range []string{EscrowReleased, EscrowRefunded, EscrowCancelled} {
		assert.True(t, table.IsTerminal(s), "expected %s to be terminal", s)
		assert.Nil(t, table.AllowedNext(s))
	}
	assert.False(t, table.IsTerminal(EscrowPending))
	assert.False(t, table.IsTerminal(EscrowDisputed))
}

func TestOfferTable(t *testing.T) {
	table, ok := TableFor(ResourceOffer)
	require.True(t, ok)

	assert.True(t, table.Allows(OfferSent, OfferAccepted))
	assert.True(t, table.Allows(OfferSent, OfferRejected))
	assert.False(t, table.Allows(OfferAccepted, OfferSent))
	assert.Equal(t, []string{OfferAccepted, OfferRejected}, table.TerminalStatuses())
}

func TestInquiryTable(t *testing.T) {
	table, ok := TableFor(ResourceInquiry)
	require.True(t, ok)

	assert.True(t, table.Allows(InquiryPending, InquiryOfferReceived))
	assert.True(t, table.Allows(InquiryPending, InquiryClosed))
	assert.True(t, table.Allows(InquiryOfferReceived, InquiryCompleted))
	assert.True(t, table.IsTerminal(InquiryCompleted))
	assert.True(t, table.IsTerminal(InquiryClosed))
}

func TestTaskTable(t *testing.T) {
	table, ok := TableFor(ResourceTask)
	require.True(t, ok)

	cases := []struct {
		from, to string
		allowed  bool
	}{
		{TaskPending, TaskPublished, true},
		{TaskPending, TaskCancelled, true},
		{TaskPending, TaskClaimed, false},
		{TaskPublished, TaskClaimed, true},
		{TaskClaimed, TaskAccepted, true},
		{TaskClaimed, TaskPublished, true}, // release back to the pool
		{TaskAccepted, TaskInProgress, true},
		{TaskAccepted, TaskClaimed, true},
		{TaskInProgress, TaskCompleted, true},
		{TaskInProgress, TaskPublished, false},
		{TaskCompleted, TaskExpired, true},
		{TaskCompleted, TaskCancelled, true},
		{TaskCompleted, TaskInProgress, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, table.Allows(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.Equal(t, []string{TaskCancelled, TaskExpired}, table.TerminalStatuses())
	assert.False(t, table.IsTerminal(TaskCompleted), "task completed still transitions to expired")
}

func TestTable_TerminalStatusesHaveNoOutgoingEdges(t *testing.T) {
	for _, rt := range RegisteredTypes() {
		table, _ := TableFor(rt)
		for _, s := range table.TerminalStatuses() {
			assert.Empty(t, table.AllowedNext(s), "%s: terminal status %s has outgoing edges", rt, s)
		}
	}
}

func TestValidateTables_CatchesTerminalEdge(t *testing.T) {
	// A hand-built table with an edge out of a terminal status must fail the
	// consistency check logic used by ValidateTables.
	bad := NewTable(map[string][]string{
		"done": {"pending"},
	}, []string{"done"})
	assert.True(t, bad.IsTerminal("done"))
	// AllowedNext applies the terminal rule even when the table has an edge.
	assert.Nil(t, bad.AllowedNext("done"))
}
