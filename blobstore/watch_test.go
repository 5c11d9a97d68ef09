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

package blobstore

import (
	"os"
	"testing"
	"time"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshdata/goadm/common"
)

// TestWatchExternalWritesInvalidatesCache writes a chunk through AddChunk
// (populating the hot-chunk cache), then overwrites the same file on disk
// the way a sibling process would, and checks the watcher evicts the stale
// cache entry so the next read observes the new bytes.
func TestWatchExternalWritesInvalidatesCache(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	stop, err := s.WatchExternalWrites()
	require.NoError(t, err)
	defer stop()

	sig := common.BytesToSignature([]byte("tx-watch"))
	h := common.BytesToChunkHash([]byte("chunk-watch"))
	blob := s.FromHash(sig).(*blob)
	require.NoError(t, blob.AddChunk(h, []byte("original")))

	got, ok := blob.Chunk(h)
	require.True(t, ok)
	require.Equal(t, []byte("original"), got)

	encoded := snappy.Encode(nil, []byte("updated"))
	require.NoError(t, os.WriteFile(blob.chunkPath(h), encoded, 0o644))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		data, ok := blob.Chunk(h)
		if ok && string(data) == "updated" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	assert.Fail(t, "external write was never observed by the watcher")
}
