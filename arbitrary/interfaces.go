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
	"time"

	"github.com/meshdata/goadm/common"
)

// TransactionData is the view of an arbitrary transaction the ADM needs.
// Everything else about the transaction (signer, fee, block height, ...)
// belongs to the chain layer and is irrelevant here.
type TransactionData interface {
	Signature() common.Signature
	// IsDataLocal reports whether the payload is already wholly present on
	// disk, so the scavenger can skip it.
	IsDataLocal() bool
	// Manifest is the canonical, on-chain ordered list of chunk hashes this
	// transaction declares. It is used to reject stray hashes offered by a
	// peer; it is independent of whatever the local BlobStore currently
	// holds.
	Manifest() []common.ChunkHash
}

// Repository is the blockchain storage and transaction lookup collaborator.
// Its real implementation lives outside the ADM (see spec.md §1).
type Repository interface {
	ArbitraryTransaction(sig common.Signature) (TransactionData, bool, error)
	// ArbitrarySignatures lists every arbitrary-type transaction, confirmed
	// or not, regardless of whether its payload is already local.
	ArbitrarySignatures(ctx context.Context) ([]common.Signature, error)
}

// Peer is a single connected, handshaked remote node.
type Peer interface {
	ID() string
	SendMessage(msg Message) bool
	// GetResponse blocks until a reply correlated to msg's id arrives, the
	// peer disconnects, or ctx is done.
	GetResponse(ctx context.Context, msg Message) (Message, bool)
	Disconnect(reason string)
}

// Network is the peer-to-peer transport and broadcast primitive.
type Network interface {
	HandshakedPeers() []Peer
	// Broadcast calls fn once per peer; fn returns the message to send and
	// whether to send it at all, letting callers skip individual peers
	// (e.g. the requester itself) the same way the source's
	// Network.broadcast(peer -> Message?) does.
	Broadcast(fn func(Peer) (Message, bool))
}

// Clock is monotonic-ish network time, in the sense spec.md §6 means it:
// suitable for computing elapsed durations, not wall-clock display.
type Clock interface {
	Now() time.Time
}

// Blob is a handle to a single arbitrary transaction's content-addressed
// payload on local disk. It may not exist at all, or may exist with only
// some of its chunks present.
type Blob interface {
	Exists() bool
	// ContainsChunk reports whether h is part of this blob's known local
	// manifest (whether or not its bytes have actually been written yet).
	ContainsChunk(h common.ChunkHash) bool
	// ChunkExists reports whether h's bytes are present on disk.
	ChunkExists(h common.ChunkHash) bool
	// Chunks lists the chunk hashes currently known locally for this blob.
	Chunks() []common.ChunkHash
	// AddChunk persists data under h, growing the local manifest.
	AddChunk(h common.ChunkHash, data []byte) error
	// Chunk returns the bytes for h if present locally.
	Chunk(h common.ChunkHash) ([]byte, bool)
}

// BlobStore is the content-addressed file storage collaborator.
type BlobStore interface {
	FromHash(sig common.Signature) Blob
}

// MisbehaviorTracker is the peer misbehavior tracking collaborator
// (Controller.hasMisbehaved in spec.md §6).
type MisbehaviorTracker interface {
	HasMisbehaved(p Peer) bool
}

// Stats is the subset of Controller.stats spec.md §6 names.
type Stats struct {
	GetArbitraryDataFileRequests      int64
	GetArbitraryDataFileUnknownFiles  int64
	GetArbitraryDataFileListRequests  int64
}
