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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshdata/goadm/clock"
	"github.com/meshdata/goadm/common"
)

func newTestManager(repo *fakeRepo, net *fakeNetwork, bs *fakeBlobStore, clk *clock.Fake) *Manager {
	return NewManager(Config{MinBlockchainPeers: 1}, repo, net, clk, bs, net)
}

// TestOnGetArbitraryDataDuplicateSuppression covers S3: two inbound
// GET_ARBITRARY_DATA messages sharing the same id produce at most one
// outbound action.
func TestOnGetArbitraryDataDuplicateSuppression(t *testing.T) {
	repo := newFakeRepo()
	bs := newFakeBlobStore()
	net := newFakeNetwork()
	m := newTestManager(repo, net, bs, clock.NewFake(time.Now()))

	sig := common.BytesToSignature([]byte("tx-1"))
	repo.put(fakeTx{sig: sig})
	blob := bs.FromHash(sig).(*fakeBlob)
	h := common.BytesToChunkHash([]byte("chunk-1"))
	blob.AddChunk(h, []byte("payload"))

	p1 := newFakePeer("p1")
	p2 := newFakePeer("p2")
	msg := Message{ID: 7, Type: MsgGetArbitraryData, Signature: sig}

	m.OnGetArbitraryData(p1, msg)
	m.OnGetArbitraryData(p2, msg)

	assert.Len(t, p1.sentMessages(), 1)
	assert.Len(t, p2.sentMessages(), 0)
}

// TestOnArbitraryDataFileListStaleReply covers S4: a reply for an id the
// janitor already swept must be ignored — no fetches, no crash, no
// disconnect.
func TestOnArbitraryDataFileListStaleReply(t *testing.T) {
	repo := newFakeRepo()
	bs := newFakeBlobStore()
	net := newFakeNetwork()
	m := newTestManager(repo, net, bs, clock.NewFake(time.Now()))

	sig := common.BytesToSignature([]byte("tx-1"))
	h := common.BytesToChunkHash([]byte("chunk-1"))
	peer := newFakePeer("p1")

	m.OnArbitraryDataFileList(peer, Message{ID: 99, Signature: sig, Hashes: []common.ChunkHash{h}})

	assert.False(t, peer.disconnected)
	assert.Empty(t, peer.sentMessages())
}

// TestOnArbitraryDataFileListSignatureMismatch covers invariant 5.
func TestOnArbitraryDataFileListSignatureMismatch(t *testing.T) {
	repo := newFakeRepo()
	bs := newFakeBlobStore()
	net := newFakeNetwork()
	m := newTestManager(repo, net, bs, clock.NewFake(time.Now()))

	sig := common.BytesToSignature([]byte("tx-1"))
	wrongSig := common.BytesToSignature([]byte("tx-2"))
	id := m.newRequestID(RequestRecord{Signature: &sig, CreatedAt: m.now()})

	h := common.BytesToChunkHash([]byte("chunk-1"))
	peer := newFakePeer("p1")
	m.OnArbitraryDataFileList(peer, Message{ID: id, Signature: wrongSig, Hashes: []common.ChunkHash{h}})

	assert.False(t, bs.FromHash(sig).ContainsChunk(h))
	rec, ok := m.table.Get(id)
	require.True(t, ok)
	require.NotNil(t, rec.Signature)
	assert.Equal(t, sig, *rec.Signature, "mismatched reply must not transition the record")
}

// TestOnArbitraryDataFileListBadHash covers S5: a manifest-violating hash
// aborts the whole reply, issuing no fetches at all and not disconnecting
// the peer.
func TestOnArbitraryDataFileListBadHash(t *testing.T) {
	repo := newFakeRepo()
	bs := newFakeBlobStore()
	net := newFakeNetwork()
	m := newTestManager(repo, net, bs, clock.NewFake(time.Now()))

	sig := common.BytesToSignature([]byte("tx-1"))
	h1 := common.BytesToChunkHash([]byte("h1"))
	bogus := common.BytesToChunkHash([]byte("bogus"))
	repo.put(fakeTx{sig: sig, manifest: []common.ChunkHash{h1}})

	id := m.newRequestID(RequestRecord{Signature: &sig, CreatedAt: m.now()})
	peer := newFakePeer("p1")
	peer.responseForHash[h1] = Message{Type: MsgArbitraryDataFile, Data: []byte("x")}

	m.OnArbitraryDataFileList(peer, Message{ID: id, Signature: sig, Hashes: []common.ChunkHash{h1, bogus}})

	assert.False(t, bs.FromHash(sig).ContainsChunk(h1))
	assert.False(t, peer.disconnected)
}

// TestOnArbitraryDataFileListHappyPath covers S1: a valid reply triggers a
// fetch per missing hash and the record resolves.
func TestOnArbitraryDataFileListHappyPath(t *testing.T) {
	repo := newFakeRepo()
	bs := newFakeBlobStore()
	net := newFakeNetwork()
	m := newTestManager(repo, net, bs, clock.NewFake(time.Now()))

	sig := common.BytesToSignature([]byte("tx-1"))
	h1 := common.BytesToChunkHash([]byte("h1"))
	h2 := common.BytesToChunkHash([]byte("h2"))
	repo.put(fakeTx{sig: sig, manifest: []common.ChunkHash{h1, h2}})

	id := m.newRequestID(RequestRecord{Signature: &sig, CreatedAt: m.now()})
	peer := newFakePeer("b")
	peer.responseForHash[h1] = Message{Type: MsgArbitraryDataFile, Data: []byte("one")}
	peer.responseForHash[h2] = Message{Type: MsgArbitraryDataFile, Data: []byte("two")}

	m.OnArbitraryDataFileList(peer, Message{ID: id, Signature: sig, Hashes: []common.ChunkHash{h1, h2}})

	blob := bs.FromHash(sig)
	assert.True(t, blob.ContainsChunk(h1))
	assert.True(t, blob.ContainsChunk(h2))
	assert.Equal(t, 0, m.inflight.Len())

	rec, ok := m.table.Get(id)
	require.True(t, ok)
	assert.Nil(t, rec.Signature)
}

// TestOnGetArbitraryDataFileUnknown covers S6: a request for a chunk we
// don't have replies with the unknown sentinel, stats increment, and the
// peer is not disconnected.
func TestOnGetArbitraryDataFileUnknown(t *testing.T) {
	repo := newFakeRepo()
	bs := newFakeBlobStore()
	net := newFakeNetwork()
	m := newTestManager(repo, net, bs, clock.NewFake(time.Now()))

	peer := newFakePeer("p1")
	unknownHash := common.BytesToChunkHash([]byte("nope"))
	m.OnGetArbitraryDataFile(peer, Message{ID: 5, Hashes: []common.ChunkHash{unknownHash}})

	sent := peer.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, MsgBlockSummaries, sent[0].Type)
	assert.False(t, peer.disconnected)
	assert.EqualValues(t, 1, m.Stats().GetArbitraryDataFileUnknownFiles)
}

// TestOnGetArbitraryDataFileKnown serves a chunk that is present.
func TestOnGetArbitraryDataFileKnown(t *testing.T) {
	repo := newFakeRepo()
	bs := newFakeBlobStore()
	net := newFakeNetwork()
	m := newTestManager(repo, net, bs, clock.NewFake(time.Now()))

	sig := common.BytesToSignature([]byte("tx-1"))
	h := common.BytesToChunkHash([]byte("chunk-1"))
	bs.FromHash(sig).AddChunk(h, []byte("data"))

	peer := newFakePeer("p1")
	m.OnGetArbitraryDataFile(peer, Message{ID: 5, Hashes: []common.ChunkHash{h}})

	sent := peer.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, MsgArbitraryDataFile, sent[0].Type)
	assert.Equal(t, []byte("data"), sent[0].Data)
}

// TestJanitorCleanupSweepsBoth covers invariant 4.
func TestJanitorCleanupSweepsBoth(t *testing.T) {
	repo := newFakeRepo()
	bs := newFakeBlobStore()
	net := newFakeNetwork()
	m := newTestManager(repo, net, bs, clock.NewFake(time.Now()))

	now := time.Now()
	sig := common.BytesToSignature([]byte("tx-1"))
	h := common.BytesToChunkHash([]byte("chunk-1"))
	m.table.Insert(1, RequestRecord{Signature: &sig, CreatedAt: now.Add(-10 * time.Second)})
	m.inflight.TryAcquire(h, now.Add(-10*time.Second))

	m.Cleanup(now)

	_, ok := m.table.Get(1)
	assert.False(t, ok)
	assert.False(t, m.inflight.Contains(h))
}
