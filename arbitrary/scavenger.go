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
	"context"
	"math/rand"
	"time"

	"github.com/meshdata/goadm/log"
)

// scavengerLoop runs on its own goroutine for the Manager's lifetime,
// mirroring abey/sync.go's syncer() loop shape: a sleep, a quorum gate, and
// a quit channel checked for clean exit, in place of a stopping-flag-only
// design so the sleep itself is interruptible.
func (m *Manager) scavengerLoop() {
	ticker := time.NewTicker(m.cfg.ScavengerInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.quit:
			log.Debug("arbitrary: scavenger stopping", "err", ErrInterrupted)
			return
		case <-ticker.C:
			if m.isStopping() {
				return
			}
			m.scavengeOnce()
		}
	}
}

// scavengeOnce runs a single iteration of spec.md §4.3's scavenger body.
func (m *Manager) scavengeOnce() {
	peers := m.eligiblePeers()
	if len(peers) < m.cfg.MinBlockchainPeers {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ARBITRARY_REQUEST_TIMEOUT)
	defer cancel()
	sigs, err := m.repo.ArbitrarySignatures(ctx)
	if err != nil {
		log.Error("arbitrary: scavenger failed to list signatures", "err", err)
		return
	}

	candidates := sigs[:0]
	for _, sig := range sigs {
		tx, ok, err := m.repo.ArbitraryTransaction(sig)
		if err != nil {
			log.Error("arbitrary: scavenger failed to load transaction", "sig", sig, "err", err)
			continue
		}
		if !ok || tx.IsDataLocal() {
			continue
		}
		candidates = append(candidates, sig)
	}
	if len(candidates) == 0 {
		return
	}

	pick := candidates[rand.Intn(len(candidates))]
	m.Find(pick)
}

// eligiblePeers returns the handshaked peers that are not marked
// misbehaving, matching spec.md §4.3 step 2.
func (m *Manager) eligiblePeers() []Peer {
	all := m.net.HandshakedPeers()
	if m.mis == nil {
		return all
	}
	out := make([]Peer, 0, len(all))
	for _, p := range all {
		if !m.mis.HasMisbehaved(p) {
			out = append(out, p)
		}
	}
	return out
}
