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
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies a transition check failure.
type Kind int

const (
	// KindUnknownResourceType means the resource type has no registered table.
	KindUnknownResourceType Kind = iota
	// KindResourceNotFound means the resource id does not exist in the store.
	KindResourceNotFound
	// KindTerminalState means the resource already reached a terminal status.
	KindTerminalState
	// KindInvalidTransition means the requested edge is not in the table.
	KindInvalidTransition
)

func (k Kind) String() string {
	switch k {
	case KindUnknownResourceType:
		return "unknown_resource_type"
	case KindResourceNotFound:
		return "resource_not_found"
	case KindTerminalState:
		return "terminal_state"
	case KindInvalidTransition:
		return "invalid_transition"
	default:
		return "unknown"
	}
}

// CheckError is the structured failure returned by the guard. Code carries
// the HTTP-style status callers branch on; Message is human-readable and only
// its documented substrings ("Invalid transition", "terminal state",
// "not found") are stable.
type CheckError struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *CheckError) Error() string {
	return e.Message
}

// AsCheckError unwraps err into a CheckError if one is present.
func AsCheckError(err error) (*CheckError, bool) {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func errUnknownResourceType(rt ResourceType) *CheckError {
	return &CheckError{
		Kind:    KindUnknownResourceType,
		Code:    400,
		Message: fmt.Sprintf("unknown resource type %q", rt),
	}
}

func errResourceNotFound(rt ResourceType, id uuid.UUID) *CheckError {
	return &CheckError{
		Kind:    KindResourceNotFound,
		Code:    404,
		Message: fmt.Sprintf("%s %s not found", rt, id),
	}
}

func errTerminalState(rt ResourceType, id uuid.UUID, current string) *CheckError {
	return &CheckError{
		Kind:    KindTerminalState,
		Code:    409,
		Message: fmt.Sprintf("%s %s is in terminal state %q and cannot transition", rt, id, current),
	}
}

func errInvalidTransition(rt ResourceType, id uuid.UUID, current, target string) *CheckError {
	return &CheckError{
		Kind:    KindInvalidTransition,
		Code:    409,
		Message: fmt.Sprintf("Invalid transition for %s %s: %q -> %q", rt, id, current, target),
	}
}

// ErrStaleStatus is returned by Transitioner.Apply when the conditional write
// matched zero rows: the status changed between the guard check and the write.
// Callers re-run the transition from the resource's new status.
var ErrStaleStatus = errors.New("resource status changed since the transition check")
