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

	"github.com/meshdata/goadm/common"
	"github.com/meshdata/goadm/log"
)

// discoveryPollInterval is the coarse poll cadence Find uses to observe a
// RequestTable entry transitioning, in place of a wait/notify primitive
// shared between the discovery caller and the handler goroutine.
const discoveryPollInterval = 100 * time.Millisecond

// Find asks whether any connected peer holds signature's chunks: it
// broadcasts a GET_ARBITRARY_DATA_FILE_LIST and polls for a handler to mark
// the correlation entry resolved. It returns true if a reply was observed,
// or optimistically true on timeout (the reply may still be in flight; the
// janitor will eventually reclaim the entry). It returns false only if the
// entry vanished before either condition was observed, per spec.md §4.4.
func (m *Manager) Find(sig common.Signature) bool {
	sigCopy := sig
	id := m.newRequestID(RequestRecord{
		Signature: &sigCopy,
		CreatedAt: m.now(),
	})

	req := Message{ID: id, Type: MsgGetArbitraryDataFileList, Signature: sig}
	m.net.Broadcast(func(p Peer) (Message, bool) {
		return req, true
	})

	deadline := m.now().Add(ARBITRARY_REQUEST_TIMEOUT)
	for {
		rec, ok := m.table.Get(id)
		if !ok {
			return false
		}
		if rec.Signature == nil {
			return true
		}
		if m.now().After(deadline) {
			log.Info("arbitrary: discovery timed out", "sig", sig, "id", id, "err", ErrTimeout)
			return true
		}
		time.Sleep(discoveryPollInterval)
	}
}
