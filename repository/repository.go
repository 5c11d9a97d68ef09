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

// Package repository supplies the arbitrary.Repository collaborator: a
// leveldb-backed index of arbitrary transactions, keyed by signature.
// Real chain storage is out of scope (spec.md §1); this is thin enough to
// exercise the interface end to end while giving the teacher's
// syndtr/goleveldb dependency a concrete user.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/meshdata/goadm/arbitrary"
	"github.com/meshdata/goadm/common"
)

// record is the on-disk encoding of a single transaction's arbitrary
// metadata.
type record struct {
	Sig      [common.SignatureLength]byte
	Manifest [][common.ChunkHashLength]byte
	Local    bool
}

// transaction adapts a stored record to arbitrary.TransactionData.
type transaction struct{ r record }

func (t transaction) Signature() common.Signature { return t.r.Sig }
func (t transaction) IsDataLocal() bool           { return t.r.Local }
func (t transaction) Manifest() []common.ChunkHash {
	out := make([]common.ChunkHash, len(t.r.Manifest))
	for i, h := range t.r.Manifest {
		out[i] = h
	}
	return out
}

// Store is a leveldb-backed arbitrary.Repository. Opened with an in-memory
// storage.Storage by default so tests never touch disk; NewFilesystemStore
// opens a real on-disk database for cmd/admnoded.
type Store struct {
	db *leveldb.DB
}

// New opens an in-memory-backed Store, suitable for tests.
func New() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("repository: open: %w", err)
	}
	return &Store{db: db}, nil
}

// NewFilesystemStore opens (creating if necessary) a leveldb database at
// dir, matching abey's persistent chaindata directory convention.
func NewFilesystemStore(dir string) (*Store, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("repository: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Put upserts a transaction's arbitrary metadata. In this repo its caller
// is cmd/admnoded's --ingest flow; chain indexing is out of scope.
func (s *Store) Put(sig common.Signature, manifest []common.ChunkHash, local bool) error {
	r := record{Sig: sig, Local: local}
	for _, h := range manifest {
		r.Manifest = append(r.Manifest, h)
	}
	buf, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.db.Put(sig.Bytes(), buf, nil)
}

// ArbitraryTransaction implements arbitrary.Repository.
func (s *Store) ArbitraryTransaction(sig common.Signature) (arbitrary.TransactionData, bool, error) {
	buf, err := s.db.Get(sig.Bytes(), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("repository: get: %w", err)
	}
	var r record
	if err := json.Unmarshal(buf, &r); err != nil {
		return nil, false, fmt.Errorf("repository: decode: %w", err)
	}
	return transaction{r}, true, nil
}

// ArbitrarySignatures implements arbitrary.Repository, iterating every
// stored arbitrary transaction regardless of confirmation or locality.
func (s *Store) ArbitrarySignatures(ctx context.Context) ([]common.Signature, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()
	var out []common.Signature
	for iter.Next() {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}
		out = append(out, common.BytesToSignature(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("repository: iterate: %w", err)
	}
	return out, nil
}
