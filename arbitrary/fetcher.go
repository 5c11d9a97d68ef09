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

	"github.com/meshdata/goadm/common"
	"github.com/meshdata/goadm/log"
)

// Fetch performs a synchronous request/response for a single chunk against
// one peer: mark in-flight, send, await, release unconditionally. The
// caller is responsible for having already checked InflightFetches.Contains
// itself (spec.md §4.5 step 1 note); Fetch still re-checks TryAcquire to
// keep the guard race-free.
//
// No retry and no alternate-peer fallback: a caller wanting another peer
// simply calls Fetch again with a different Peer.
func (m *Manager) Fetch(peer Peer, hash common.ChunkHash) ([]byte, bool) {
	if !m.inflight.TryAcquire(hash, m.now()) {
		return nil, false
	}
	defer m.inflight.Release(hash)

	req := Message{ID: rand.Uint32(), Type: MsgGetArbitraryDataFile, Hashes: []common.ChunkHash{hash}}
	ctx, cancel := context.WithTimeout(context.Background(), ARBITRARY_REQUEST_TIMEOUT)
	defer cancel()
	reply, ok := peer.GetResponse(ctx, req)
	if !ok {
		if ctx.Err() != nil {
			log.Debug("arbitrary: fetch timed out", "hash", hash, "peer", peer.ID(), "err", ErrTimeout)
		} else {
			log.Debug("arbitrary: fetch failed to send", "hash", hash, "peer", peer.ID(), "err", ErrPeerSendFailure)
		}
		return nil, false
	}
	if reply.Type != MsgArbitraryDataFile {
		log.Debug("arbitrary: unexpected reply type", "hash", hash, "peer", peer.ID(), "type", reply.Type, "err", ErrProtocolMismatch)
		return nil, false
	}
	return reply.Data, true
}
