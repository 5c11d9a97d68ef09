// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package arbitrary

import (
	"sync"
	"time"

	"github.com/meshdata/goadm/common"
)

// RequestRecord is the correlation-table value keyed by message id. Its two
// optional fields encode a four-state machine rather than a tagged union,
// on purpose: handlers always overwrite the whole record rather than
// mutating a field in place, which is the invariant this layout exists to
// preserve.
//
//	Signature set, PeerID nil:    we originated; response not yet received.
//	Signature set, PeerID set:    forwarding for PeerID; response not yet received.
//	Signature nil, PeerID nil:    fully resolved.
//	Signature nil, PeerID set:    response received, forward to PeerID pending.
type RequestRecord struct {
	Signature *common.Signature
	PeerID    *string
	CreatedAt time.Time
}

// RequestTable is the id -> RequestRecord correlation map described in
// spec.md §4.1. All methods are safe for concurrent use; Get returns a copy
// so callers never observe a record being mutated underneath them.
type RequestTable struct {
	mu      sync.RWMutex
	records map[uint32]RequestRecord
}

// NewRequestTable returns an empty table ready for use.
func NewRequestTable() *RequestTable {
	return &RequestTable{records: make(map[uint32]RequestRecord)}
}

// InsertIfAbsent stores rec under id only if id is not already present, and
// reports whether the insert happened. Callers use this to retry id
// generation until a free slot is found, and to implement the
// duplicate-suppression rule for inbound requests.
func (t *RequestTable) InsertIfAbsent(id uint32, rec RequestRecord) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.records[id]; ok {
		return false
	}
	t.records[id] = rec
	return true
}

// Insert stores rec unconditionally, overwriting whatever was at id. Used
// for state transitions; never mutate a fetched record's fields in place.
func (t *RequestTable) Insert(id uint32, rec RequestRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[id] = rec
}

// Get returns a copy of the record stored at id.
func (t *RequestTable) Get(id uint32) (RequestRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.records[id]
	return rec, ok
}

// Remove deletes the record at id, if any.
func (t *RequestTable) Remove(id uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, id)
}

// Len reports the number of live records, for status/metrics reporting.
func (t *RequestTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

// Range calls fn for every live record, stopping early if fn returns
// false. fn receives a copy of each record, never the map's own value.
func (t *RequestTable) Range(fn func(id uint32, rec RequestRecord) bool) {
	t.mu.RLock()
	snapshot := make(map[uint32]RequestRecord, len(t.records))
	for id, rec := range t.records {
		snapshot[id] = rec
	}
	t.mu.RUnlock()
	for id, rec := range snapshot {
		if !fn(id, rec) {
			return
		}
	}
}

// RemoveOlderThan deletes every record whose CreatedAt precedes cutoff and
// returns how many were swept.
func (t *RequestTable) RemoveOlderThan(cutoff time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for id, rec := range t.records {
		if rec.CreatedAt.Before(cutoff) {
			delete(t.records, id)
			n++
		}
	}
	return n
}
