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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshdata/goadm/common"
)

func TestSplitWritesChunksAndManifest(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	sig := common.BytesToSignature([]byte("tx-split"))
	data := bytes.Repeat([]byte("x"), DefaultChunkSize*2+10)

	manifest, err := s.Split(sig, data)
	require.NoError(t, err)
	assert.Len(t, manifest, 3)

	blob := s.FromHash(sig)
	var joined []byte
	for _, h := range manifest {
		chunk, ok := blob.Chunk(h)
		require.True(t, ok)
		joined = append(joined, chunk...)
	}
	assert.Equal(t, data, joined)
}

func TestCheckDiskSpaceRefusesOversizedPayload(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	// Most filesystems this runs on have far less than 2^62 bytes free, so
	// the guard should trip.
	assert.Error(t, s.checkDiskSpace(1<<62))
}
