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

// Package common holds the fixed-length identifiers shared by every other
// package in this tree: transaction Signatures and chunk ChunkHashes.
package common

import (
	"encoding/hex"
	"fmt"

	"github.com/meshdata/goadm/common/base58"
)

const (
	// SignatureLength is the byte length of an arbitrary transaction signature.
	SignatureLength = 64
	// ChunkHashLength is the byte length of a chunk's content hash.
	ChunkHashLength = 32
)

// Signature identifies an arbitrary transaction on-chain.
type Signature [SignatureLength]byte

// BytesToSignature converts b to a Signature, left-truncating or right-padding
// as necessary the same way go-ethereum's BytesToHash does.
func BytesToSignature(b []byte) Signature {
	var s Signature
	if len(b) > SignatureLength {
		b = b[len(b)-SignatureLength:]
	}
	copy(s[SignatureLength-len(b):], b)
	return s
}

func (s Signature) Bytes() []byte { return s[:] }

// Base58 is the stable, textual map-key form of the signature.
func (s Signature) Base58() string { return base58.CheckEncode(s[:]) }

func (s Signature) String() string { return s.Base58() }

func (s Signature) Hex() string { return "0x" + hex.EncodeToString(s[:]) }

// IsZero reports whether the signature is the zero value.
func (s Signature) IsZero() bool { return s == Signature{} }

// SignatureFromBase58 decodes the textual form produced by Signature.Base58.
func SignatureFromBase58(s string) (Signature, error) {
	b, err := base58.CheckDecode(s)
	if err != nil {
		return Signature{}, fmt.Errorf("decode signature: %w", err)
	}
	return BytesToSignature(b), nil
}

// ChunkHash identifies a single chunk of an arbitrary transaction's payload.
type ChunkHash [ChunkHashLength]byte

func BytesToChunkHash(b []byte) ChunkHash {
	var h ChunkHash
	if len(b) > ChunkHashLength {
		b = b[len(b)-ChunkHashLength:]
	}
	copy(h[ChunkHashLength-len(b):], b)
	return h
}

func (h ChunkHash) Bytes() []byte { return h[:] }

// Base58 is the stable, textual map-key form of the chunk hash.
func (h ChunkHash) Base58() string { return base58.CheckEncode(h[:]) }

func (h ChunkHash) String() string { return h.Base58() }

func (h ChunkHash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

func (h ChunkHash) IsZero() bool { return h == ChunkHash{} }

func ChunkHashFromBase58(s string) (ChunkHash, error) {
	b, err := base58.CheckDecode(s)
	if err != nil {
		return ChunkHash{}, fmt.Errorf("decode chunk hash: %w", err)
	}
	return BytesToChunkHash(b), nil
}
