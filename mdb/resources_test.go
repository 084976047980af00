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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/marketcore/internal/lifecycle"
)

func TestResourceTable_CoversRegistry(t *testing.T) {
	// Every resource type the lifecycle registry knows must have a status
	// table, or the guard's 400-before-404 ordering breaks down.
	for _, rt := range lifecycle.RegisteredTypes() {
		table, err := resourceTable(rt)
		require.NoError(t, err, "%s", rt)
		assert.NotEmpty(t, table)
	}
}

func TestResourceTable_Mapping(t *testing.T) {
	tests := []struct {
		rt    lifecycle.ResourceType
		table string
	}{
		{lifecycle.ResourceEscrow, "escrow_transactions"},
		{lifecycle.ResourceInquiry, "inquiries"},
		{lifecycle.ResourceOffer, "offers"},
		{lifecycle.ResourceTask, "tasks"},
	}
	for _, tt := range tests {
		table, err := resourceTable(tt.rt)
		require.NoError(t, err)
		assert.Equal(t, tt.table, table)
	}
}

func TestResourceTable_Unknown(t *testing.T) {
	_, err := resourceTable("invoice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invoice")
}

func TestStoreImplementsLifecycleInterfaces(t *testing.T) {
	var _ lifecycle.StatusReader = (*Store)(nil)
	var _ lifecycle.AuditWriter = (*Store)(nil)
	var _ lifecycle.ConditionalStatusWriter = (*Store)(nil)
}
