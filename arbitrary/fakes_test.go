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
	"sync"

	"github.com/meshdata/goadm/common"
)

// fakePeer is an in-memory stand-in for arbitrary.Peer good enough to
// drive the handler and fetcher tests without any real transport.
type fakePeer struct {
	mu               sync.Mutex
	id               string
	sendOK           bool
	sent             []Message
	responseForHash  map[common.ChunkHash]Message
	disconnected     bool
	disconnectReason string
}

func newFakePeer(id string) *fakePeer {
	return &fakePeer{id: id, sendOK: true, responseForHash: make(map[common.ChunkHash]Message)}
}

func (p *fakePeer) ID() string { return p.id }

func (p *fakePeer) SendMessage(msg Message) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, msg)
	return p.sendOK
}

func (p *fakePeer) GetResponse(ctx context.Context, msg Message) (Message, bool) {
	p.mu.Lock()
	p.sent = append(p.sent, msg)
	ok := p.sendOK
	p.mu.Unlock()
	if !ok {
		return Message{}, false
	}
	if len(msg.Hashes) == 1 {
		if resp, found := p.responseForHash[msg.Hashes[0]]; found {
			return resp, true
		}
	}
	return Message{}, false
}

func (p *fakePeer) Disconnect(reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnected = true
	p.disconnectReason = reason
}

func (p *fakePeer) sentMessages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Message, len(p.sent))
	copy(out, p.sent)
	return out
}

// fakeNetwork is an in-memory arbitrary.Network + arbitrary.MisbehaviorTracker.
type fakeNetwork struct {
	mu          sync.Mutex
	peers       []*fakePeer
	misbehaving map[string]bool
}

func newFakeNetwork(peers ...*fakePeer) *fakeNetwork {
	return &fakeNetwork{peers: peers, misbehaving: make(map[string]bool)}
}

func (n *fakeNetwork) HandshakedPeers() []Peer {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Peer, len(n.peers))
	for i, p := range n.peers {
		out[i] = p
	}
	return out
}

func (n *fakeNetwork) Broadcast(fn func(Peer) (Message, bool)) {
	for _, p := range n.HandshakedPeers() {
		if msg, ok := fn(p); ok {
			p.SendMessage(msg)
		}
	}
}

func (n *fakeNetwork) HasMisbehaved(p Peer) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.misbehaving[p.ID()]
}

func (n *fakeNetwork) markMisbehaving(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.misbehaving[id] = true
}

// fakeTx implements arbitrary.TransactionData for tests.
type fakeTx struct {
	sig      common.Signature
	local    bool
	manifest []common.ChunkHash
}

func (t fakeTx) Signature() common.Signature    { return t.sig }
func (t fakeTx) IsDataLocal() bool              { return t.local }
func (t fakeTx) Manifest() []common.ChunkHash   { return t.manifest }

// fakeRepo is an in-memory arbitrary.Repository.
type fakeRepo struct {
	mu  sync.Mutex
	txs map[common.Signature]fakeTx
	err error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{txs: make(map[common.Signature]fakeTx)}
}

func (r *fakeRepo) put(tx fakeTx) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs[tx.sig] = tx
}

func (r *fakeRepo) ArbitraryTransaction(sig common.Signature) (TransactionData, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, false, r.err
	}
	tx, ok := r.txs[sig]
	if !ok {
		return nil, false, nil
	}
	return tx, true, nil
}

func (r *fakeRepo) ArbitrarySignatures(ctx context.Context) ([]common.Signature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]common.Signature, 0, len(r.txs))
	for sig := range r.txs {
		out = append(out, sig)
	}
	return out, nil
}

// fakeBlob is an in-memory arbitrary.Blob. ContainsChunk and ChunkExists
// coincide, matching blobstore.FilesystemStore's collapsed semantics.
type fakeBlob struct {
	mu     sync.Mutex
	exists bool
	data   map[common.ChunkHash][]byte
}

func newFakeBlob() *fakeBlob { return &fakeBlob{data: make(map[common.ChunkHash][]byte)} }

func (b *fakeBlob) Exists() bool { b.mu.Lock(); defer b.mu.Unlock(); return b.exists }

func (b *fakeBlob) ContainsChunk(h common.ChunkHash) bool { return b.ChunkExists(h) }

func (b *fakeBlob) ChunkExists(h common.ChunkHash) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.data[h]
	return ok
}

func (b *fakeBlob) Chunks() []common.ChunkHash {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]common.ChunkHash, 0, len(b.data))
	for h := range b.data {
		out = append(out, h)
	}
	return out
}

func (b *fakeBlob) AddChunk(h common.ChunkHash, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[h] = data
	b.exists = true
	return nil
}

func (b *fakeBlob) Chunk(h common.ChunkHash) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.data[h]
	return data, ok
}

// fakeBlobStore is an in-memory arbitrary.BlobStore that also satisfies
// the KnownSignatures seam arbitrary.Manager's OnGetArbitraryDataFile
// handler looks for.
type fakeBlobStore struct {
	mu    sync.Mutex
	blobs map[common.Signature]*fakeBlob
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[common.Signature]*fakeBlob)}
}

func (s *fakeBlobStore) FromHash(sig common.Signature) Blob {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[sig]
	if !ok {
		b = newFakeBlob()
		s.blobs[sig] = b
	}
	return b
}

func (s *fakeBlobStore) KnownSignatures() []common.Signature {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]common.Signature, 0, len(s.blobs))
	for sig := range s.blobs {
		out = append(out, sig)
	}
	return out
}
