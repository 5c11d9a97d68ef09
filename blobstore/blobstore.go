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

// Package blobstore supplies the arbitrary.BlobStore/arbitrary.Blob
// collaborators: a filesystem-backed, content-addressed chunk store.
// Chunk hashing uses sha3 (matching go-ethereum-family hashing
// conventions), an LRU keeps hot chunks in memory the way
// core/snailchain/headerchain.go caches headers, and chunks are snappy
// compressed on disk the way leveldb itself compresses blocks.
package blobstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/golang/snappy"
	"golang.org/x/crypto/sha3"

	"github.com/meshdata/goadm/arbitrary"
	"github.com/meshdata/goadm/common"
)

// chunkCacheSize bounds the in-memory hot-chunk cache, mirroring
// headerCacheLimit's role in core/snailchain/headerchain.go.
const chunkCacheSize = 256

// HashChunk returns the content hash of a chunk's bytes.
func HashChunk(data []byte) common.ChunkHash {
	h := sha3.Sum256(data)
	return common.ChunkHash(h)
}

// FilesystemStore roots every blob under a signature-named subdirectory of
// Dir, with one file per chunk named by its base58 hash.
type FilesystemStore struct {
	dir   string
	cache *lru.Cache

	mu      sync.RWMutex
	known   map[common.Signature]struct{} // tracked so OnGetArbitraryDataFile can reverse-lookup
}

// New opens (creating if necessary) a filesystem-backed store rooted at
// dir.
func New(dir string) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blobstore: mkdir %s: %w", dir, err)
	}
	// The watcher reports absolute, symlink-free paths; root the store the
	// same way so invalidatePath's cache keys match.
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		dir = real
	}
	cache, err := lru.New(chunkCacheSize)
	if err != nil {
		return nil, fmt.Errorf("blobstore: new cache: %w", err)
	}
	return &FilesystemStore{dir: dir, cache: cache, known: make(map[common.Signature]struct{})}, nil
}

// FromHash implements arbitrary.BlobStore.
func (s *FilesystemStore) FromHash(sig common.Signature) arbitrary.Blob {
	s.mu.Lock()
	s.known[sig] = struct{}{}
	s.mu.Unlock()
	return &blob{store: s, dir: filepath.Join(s.dir, sig.Base58())}
}

// KnownSignatures lists every signature this store has ever been asked
// about, satisfying the reverse-index seam arbitrary.Manager's
// OnGetArbitraryDataFile handler looks for.
func (s *FilesystemStore) KnownSignatures() []common.Signature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]common.Signature, 0, len(s.known))
	for sig := range s.known {
		out = append(out, sig)
	}
	return out
}

func (s *FilesystemStore) cacheKey(dir string, h common.ChunkHash) string {
	return dir + "/" + h.Base58()
}

// invalidatePath drops the hot-chunk cache entry for the chunk file at
// path, if path names one. Used by WatchExternalWrites so a chunk written
// by something other than AddChunk is never served stale from cache.
func (s *FilesystemStore) invalidatePath(path string) {
	const suffix = ".chunk"
	name := filepath.Base(path)
	if len(name) <= len(suffix) || name[len(name)-len(suffix):] != suffix {
		return
	}
	h, err := common.ChunkHashFromBase58(name[:len(name)-len(suffix)])
	if err != nil {
		return
	}
	s.cache.Remove(s.cacheKey(filepath.Dir(path), h))
}

type blob struct {
	store *FilesystemStore
	dir   string
}

func (b *blob) Exists() bool {
	_, err := os.Stat(b.dir)
	return err == nil
}

func (b *blob) chunkPath(h common.ChunkHash) string {
	return filepath.Join(b.dir, h.Base58()+".chunk")
}

func (b *blob) ChunkExists(h common.ChunkHash) bool {
	_, err := os.Stat(b.chunkPath(h))
	return err == nil
}

// ContainsChunk reports manifest membership; on this filesystem
// implementation the manifest is exactly the set of chunks ever written,
// so it coincides with ChunkExists.
func (b *blob) ContainsChunk(h common.ChunkHash) bool {
	return b.ChunkExists(h)
}

func (b *blob) Chunks() []common.ChunkHash {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil
	}
	var out []common.ChunkHash
	for _, e := range entries {
		name := e.Name()
		const suffix = ".chunk"
		if len(name) <= len(suffix) || name[len(name)-len(suffix):] != suffix {
			continue
		}
		h, err := common.ChunkHashFromBase58(name[:len(name)-len(suffix)])
		if err != nil {
			continue
		}
		out = append(out, h)
	}
	return out
}

func (b *blob) AddChunk(h common.ChunkHash, data []byte) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("blobstore: mkdir %s: %w", b.dir, err)
	}
	compressed := snappy.Encode(nil, data)
	if err := os.WriteFile(b.chunkPath(h), compressed, 0o644); err != nil {
		return fmt.Errorf("blobstore: write chunk %s: %w", h, err)
	}
	b.store.cache.Add(b.store.cacheKey(b.dir, h), data)
	return nil
}

func (b *blob) Chunk(h common.ChunkHash) ([]byte, bool) {
	if v, ok := b.store.cache.Get(b.store.cacheKey(b.dir, h)); ok {
		return v.([]byte), true
	}
	compressed, err := os.ReadFile(b.chunkPath(h))
	if err != nil {
		return nil, false
	}
	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, false
	}
	b.store.cache.Add(b.store.cacheKey(b.dir, h), data)
	return data, true
}
