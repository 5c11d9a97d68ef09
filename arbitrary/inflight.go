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

// InflightFetches is the single-flight guard described in spec.md §4.2: a
// set of chunk hashes for which a GET_ARBITRARY_DATA_FILE is currently
// outstanding, system-wide, keyed by the hash's stable base58 form so it
// works as a plain map key.
type InflightFetches struct {
	mu      sync.Mutex
	started map[string]time.Time
}

// NewInflightFetches returns an empty guard ready for use.
func NewInflightFetches() *InflightFetches {
	return &InflightFetches{started: make(map[string]time.Time)}
}

// TryAcquire claims hash if it is not already claimed, recording now as its
// start time, and reports whether the claim succeeded. Must be atomic.
func (f *InflightFetches) TryAcquire(hash common.ChunkHash, now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := hash.Base58()
	if _, ok := f.started[k]; ok {
		return false
	}
	f.started[k] = now
	return true
}

// Release frees hash regardless of whether the fetch that held it
// succeeded, timed out, or errored. Callers must call this unconditionally
// once TryAcquire returns true, on every exit path of that fetch.
func (f *InflightFetches) Release(hash common.ChunkHash) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.started, hash.Base58())
}

// Contains reports whether hash currently has a claim.
func (f *InflightFetches) Contains(hash common.ChunkHash) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.started[hash.Base58()]
	return ok
}

// Len reports the number of currently claimed fetches, for status/metrics.
func (f *InflightFetches) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.started)
}

// RemoveOlderThan force-releases every claim started before cutoff, as a
// backstop against a peer that never answers and never disconnects. It
// returns how many were swept, for the janitor's logging.
func (f *InflightFetches) RemoveOlderThan(cutoff time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for k, started := range f.started {
		if started.Before(cutoff) {
			delete(f.started, k)
			n++
		}
	}
	return n
}
