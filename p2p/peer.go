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

// Package p2p supplies the arbitrary.Network and arbitrary.Peer
// collaborators: a peer set guarded by a mutex plus a Broadcast that loops
// over the registered peers, in the shape of abey/peer.go's peerSet, with
// real wire encoding swapped out for an in-process channel so it is
// exercised end to end without a real transport.
package p2p

import (
	"context"
	"errors"
	"sync"

	mapset "github.com/deckarep/golang-set"

	"github.com/meshdata/goadm/arbitrary"
	"github.com/meshdata/goadm/log"
)

var (
	errClosed            = errors.New("p2p: peer set is closed")
	errAlreadyRegistered = errors.New("p2p: peer already registered")
	errNotRegistered     = errors.New("p2p: peer not registered")
)

// maxQueuedMessages bounds each peer's outbound queue, matching the
// maxQueuedTxs-style backpressure constants in abey/peer.go.
const maxQueuedMessages = 128

// Peer is an in-process stand-in for a handshaked remote node: messages
// sent to it land on a channel a test or a real transport adapter drains,
// and replies are correlated by message id the same way abey/peer.go
// matches request/response traffic through its own queues.
type Peer struct {
	id      string
	version int

	out     chan arbitrary.Message
	mu      sync.Mutex
	waiting map[uint32]chan arbitrary.Message
	known   mapset.Set

	closed    chan struct{}
	closeOnce sync.Once
	reason    string
}

// NewPeer constructs a Peer with the given node id and protocol version.
func NewPeer(id string, version int) *Peer {
	return &Peer{
		id:      id,
		version: version,
		out:     make(chan arbitrary.Message, maxQueuedMessages),
		waiting: make(map[uint32]chan arbitrary.Message),
		known:   mapset.NewSet(),
		closed:  make(chan struct{}),
	}
}

func (p *Peer) ID() string { return p.id }

// ProtocolVersion satisfies the optional interface arbitrary.Manager
// type-asserts for to pick the right "file unknown" sentinel.
func (p *Peer) ProtocolVersion() int { return p.version }

// Outbound exposes the channel a transport adapter (or a test) drains to
// observe what was sent to this peer.
func (p *Peer) Outbound() <-chan arbitrary.Message { return p.out }

// SendMessage enqueues msg for delivery, returning false if the peer's
// queue is full or it has been disconnected, matching abey/peer.go's
// Send-returns-error-then-disconnect idiom (translated to a bool here
// since arbitrary.Peer has no error return).
func (p *Peer) SendMessage(msg arbitrary.Message) bool {
	select {
	case <-p.closed:
		return false
	default:
	}
	select {
	case p.out <- msg:
		return true
	default:
		return false
	}
}

// Deliver is called by the transport adapter when a reply for msg.ID
// arrives from the wire; it wakes up any GetResponse call blocked on that
// id.
func (p *Peer) Deliver(msg arbitrary.Message) {
	p.mu.Lock()
	ch, ok := p.waiting[msg.ID]
	p.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- msg:
	default:
	}
}

// GetResponse sends msg and blocks until a correlated reply is Delivered,
// the peer disconnects, or ctx is done.
func (p *Peer) GetResponse(ctx context.Context, msg arbitrary.Message) (arbitrary.Message, bool) {
	ch := make(chan arbitrary.Message, 1)
	p.mu.Lock()
	p.waiting[msg.ID] = ch
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		delete(p.waiting, msg.ID)
		p.mu.Unlock()
	}()

	if !p.SendMessage(msg) {
		return arbitrary.Message{}, false
	}
	select {
	case reply := <-ch:
		return reply, true
	case <-p.closed:
		return arbitrary.Message{}, false
	case <-ctx.Done():
		return arbitrary.Message{}, false
	}
}

// Disconnect marks the peer closed, recording reason for diagnostics the
// way abey/peer.go logs its own disconnect calls.
func (p *Peer) Disconnect(reason string) {
	p.closeOnce.Do(func() {
		p.reason = reason
		close(p.closed)
		log.Debug("p2p: peer disconnected", "id", p.id, "reason", reason)
	})
}

// DisconnectReason returns the reason passed to the first Disconnect call,
// or "" if the peer is still connected.
func (p *Peer) DisconnectReason() string { return p.reason }

// IsConnected reports whether Disconnect has not yet been called.
func (p *Peer) IsConnected() bool {
	select {
	case <-p.closed:
		return false
	default:
		return true
	}
}
