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

package idgen

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineULIDGenerator(t *testing.T) {
	gen := &InlineULIDGenerator{}
	a := gen.Make(time.Now())
	b := gen.Make(time.Now())
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestULIDGenerator_MonotonicWithinMillisecond(t *testing.T) {
	gen := NewULIDGenerator()
	now := time.Now()

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = gen.Make(now)
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	require.Equal(t, sorted, ids, "ids in one millisecond must sort in generation order")
}

func TestULIDGenerator_TimeOrdered(t *testing.T) {
	gen := NewULIDGenerator()
	earlier := gen.Make(time.Now().Add(-time.Hour))
	later := gen.Make(time.Now())
	assert.Less(t, earlier, later)
}
