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
	"fmt"

	"github.com/elastic/gosigar"

	"github.com/meshdata/goadm/common"
)

// DefaultChunkSize matches the split size the spec's GLOSSARY assumes for
// "a chunk of content-addressed data" without pinning a number; 256KiB
// keeps manifests short for typical payload sizes without starving small
// peers of low-latency single-chunk transfers.
const DefaultChunkSize = 256 * 1024

// Split breaks data into DefaultChunkSize pieces, hashes each, and writes
// them into blob via AddChunk, returning the manifest in order. This is
// the chunking Qortal's ArbitraryDataManager performs before ever handing
// bytes to the network layer, supplementing the distilled spec's implicit
// "BlobStore already knows the manifest" assumption with the actual split.
func (s *FilesystemStore) Split(sig common.Signature, data []byte) ([]common.ChunkHash, error) {
	if err := s.checkDiskSpace(len(data)); err != nil {
		return nil, err
	}
	b := s.FromHash(sig)
	var manifest []common.ChunkHash
	for off := 0; off < len(data); off += DefaultChunkSize {
		end := off + DefaultChunkSize
		if end > len(data) {
			end = len(data)
		}
		piece := data[off:end]
		h := HashChunk(piece)
		if err := b.AddChunk(h, piece); err != nil {
			return nil, err
		}
		manifest = append(manifest, h)
	}
	return manifest, nil
}

// checkDiskSpace refuses to start writing a payload larger than half of
// whatever free space remains under the store's root, mirroring the kind
// of guard abeystats.go's disk-usage reporting makes possible via gosigar.
func (s *FilesystemStore) checkDiskSpace(need int) error {
	var fs sigar.FileSystemUsage
	if err := fs.Get(s.dir); err != nil {
		// Not every platform/filesystem combination gosigar supports will
		// resolve cleanly (e.g. overlay mounts in containers); treat that
		// as "unknown, proceed" rather than blocking every write.
		return nil
	}
	availBytes := fs.Free * 1024
	if uint64(need) > availBytes/2 {
		return fmt.Errorf("blobstore: insufficient disk space: need %d bytes, %d available", need, availBytes)
	}
	return nil
}
