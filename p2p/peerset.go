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

package p2p

import (
	"sync"

	mapset "github.com/deckarep/golang-set"

	"github.com/meshdata/goadm/arbitrary"
)

// Network tracks the handshaked peer set and the misbehaving subset,
// mirroring abey/peer.go's peerSet (register/unregister under one
// sync.RWMutex) generalised with a misbehavior-tracking mapset.Set, since
// the ADM's scavenger needs to filter peers by both properties.
type Network struct {
	mu          sync.RWMutex
	peers       map[string]*Peer
	misbehaving mapset.Set
	closed      bool
}

// NewNetwork returns an empty peer set.
func NewNetwork() *Network {
	return &Network{
		peers:       make(map[string]*Peer),
		misbehaving: mapset.NewSet(),
	}
}

// Register adds p to the working set, mirroring peerSet.Register.
func (n *Network) Register(p *Peer) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return errClosed
	}
	if _, ok := n.peers[p.id]; ok {
		return errAlreadyRegistered
	}
	n.peers[p.id] = p
	return nil
}

// Unregister removes a peer from the working set, mirroring
// peerSet.Unregister.
func (n *Network) Unregister(id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.peers[id]; !ok {
		return errNotRegistered
	}
	delete(n.peers, id)
	n.misbehaving.Remove(id)
	return nil
}

// MarkMisbehaving records id as misbehaving so HasMisbehaved excludes it
// from future quorum counts, per spec.md §4.3 step 2.
func (n *Network) MarkMisbehaving(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.misbehaving.Add(id)
}

// HasMisbehaved implements arbitrary.MisbehaviorTracker.
func (n *Network) HasMisbehaved(p arbitrary.Peer) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.misbehaving.Contains(p.ID())
}

// HandshakedPeers implements arbitrary.Network.
func (n *Network) HandshakedPeers() []arbitrary.Peer {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]arbitrary.Peer, 0, len(n.peers))
	for _, p := range n.peers {
		out = append(out, p)
	}
	return out
}

// Broadcast implements arbitrary.Network: it calls fn for every registered
// peer and sends the returned message to those fn opts into, matching
// abey/peer.go's per-peer broadcast() loop generalised to a caller-supplied
// filter instead of a fixed known-item set.
func (n *Network) Broadcast(fn func(arbitrary.Peer) (arbitrary.Message, bool)) {
	n.mu.RLock()
	peers := make([]*Peer, 0, len(n.peers))
	for _, p := range n.peers {
		peers = append(peers, p)
	}
	n.mu.RUnlock()

	for _, p := range peers {
		msg, ok := fn(p)
		if !ok {
			continue
		}
		p.SendMessage(msg)
	}
}
