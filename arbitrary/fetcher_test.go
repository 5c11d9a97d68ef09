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

func TestFetchSuccess(t *testing.T) {
	repo := newFakeRepo()
	bs := newFakeBlobStore()
	net := newFakeNetwork()
	m := NewManager(Config{MinBlockchainPeers: 1}, repo, net, clock.NewFake(time.Now()), bs, net)

	h := common.BytesToChunkHash([]byte("chunk-1"))
	peer := newFakePeer("p1")
	peer.responseForHash[h] = Message{Type: MsgArbitraryDataFile, Data: []byte("hello")}

	data, ok := m.Fetch(peer, h)
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), data)
	assert.False(t, m.inflight.Contains(h), "Fetch must release its claim unconditionally")
}

func TestFetchWrongReplyType(t *testing.T) {
	repo := newFakeRepo()
	bs := newFakeBlobStore()
	net := newFakeNetwork()
	m := NewManager(Config{MinBlockchainPeers: 1}, repo, net, clock.NewFake(time.Now()), bs, net)

	h := common.BytesToChunkHash([]byte("chunk-1"))
	peer := newFakePeer("p1")
	peer.responseForHash[h] = Message{Type: MsgArbitraryDataFileUnknown}

	_, ok := m.Fetch(peer, h)
	assert.False(t, ok)
	assert.False(t, m.inflight.Contains(h))
}

func TestFetchAlreadyInflight(t *testing.T) {
	repo := newFakeRepo()
	bs := newFakeBlobStore()
	net := newFakeNetwork()
	m := NewManager(Config{MinBlockchainPeers: 1}, repo, net, clock.NewFake(time.Now()), bs, net)

	h := common.BytesToChunkHash([]byte("chunk-1"))
	m.inflight.TryAcquire(h, m.now())

	peer := newFakePeer("p1")
	_, ok := m.Fetch(peer, h)
	assert.False(t, ok)
	assert.Empty(t, peer.sentMessages())
}
