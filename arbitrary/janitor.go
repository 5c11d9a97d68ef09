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
	"time"

	"github.com/meshdata/goadm/log"
)

// ARBITRARY_REQUEST_TIMEOUT governs discovery poll budgets and the TTL
// used to prune both RequestTable and InflightFetches.
const ARBITRARY_REQUEST_TIMEOUT = 5 * time.Second

// janitorLoop runs the external housekeeping timer referenced in
// spec.md §5, on its own goroutine, stopped by the same quit channel the
// scavenger uses.
func (m *Manager) janitorLoop() {
	ticker := time.NewTicker(m.cfg.JanitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.quit:
			log.Debug("arbitrary: janitor stopping", "err", ErrInterrupted)
			return
		case <-ticker.C:
			m.Cleanup(m.now())
		}
	}
}

// Cleanup sweeps both containers of entries older than
// now-ARBITRARY_REQUEST_TIMEOUT. Idempotent; safe to call from any
// goroutine, any number of times.
func (m *Manager) Cleanup(now time.Time) {
	cutoff := now.Add(-ARBITRARY_REQUEST_TIMEOUT)
	reqs := m.table.RemoveOlderThan(cutoff)
	fetches := m.inflight.RemoveOlderThan(cutoff)
	if reqs > 0 || fetches > 0 {
		log.Debug("arbitrary: janitor swept expired entries", "requests", reqs, "fetches", fetches)
	}
}
