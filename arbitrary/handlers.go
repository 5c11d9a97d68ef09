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
	"fmt"
	"sync/atomic"

	"github.com/meshdata/goadm/common"
	"github.com/meshdata/goadm/log"
)

// OnGetArbitraryData serves a monolithic-blob request correlated by
// msg.ID, forwarding to other peers when the local node lacks the data.
// Grounded on abey/peer.go's Send-returns-error-then-disconnect idiom.
func (m *Manager) OnGetArbitraryData(peer Peer, msg Message) {
	m.meters.getDataRequests.Mark(1)
	sig := msg.Signature
	if !m.table.InsertIfAbsent(msg.ID, RequestRecord{
		Signature: &sig,
		PeerID:    peerPtr(peer.ID()),
		CreatedAt: m.now(),
	}) {
		return // duplicate-suppression
	}

	_, ok, err := m.repo.ArbitraryTransaction(sig)
	if err != nil {
		log.Error("arbitrary: repository fault resolving transaction", "sig", sig, "err", fmt.Errorf("%w: %v", ErrRepositoryFault, err))
		return
	}
	if !ok {
		return
	}

	blob := m.bs.FromHash(sig)
	if blob.Exists() {
		data, found := blobBytes(blob)
		if !found {
			return
		}
		m.table.Insert(msg.ID, RequestRecord{Signature: &sig, CreatedAt: m.now()})
		reply := Message{ID: msg.ID, Type: MsgArbitraryData, Signature: sig, Data: data}
		if !peer.SendMessage(reply) {
			log.Warn("arbitrary: disconnecting peer", "sig", sig, "peer", peer.ID(), "err", ErrPeerSendFailure)
			peer.Disconnect("failed to send arbitrary data")
		}
		return
	}

	// We don't have it: forward to everyone except the requester.
	m.net.Broadcast(func(p Peer) (Message, bool) {
		if p.ID() == peer.ID() {
			return Message{}, false
		}
		return msg, true
	})
}

// OnGetArbitraryDataFileList answers a "do you have this?" query. It is a
// pure read-side responder and never touches the RequestTable.
func (m *Manager) OnGetArbitraryDataFileList(peer Peer, msg Message) {
	atomic.AddInt64(&m.stats.GetArbitraryDataFileListRequests, 1)
	m.meters.getFileListRequests.Mark(1)

	tx, ok, err := m.repo.ArbitraryTransaction(msg.Signature)
	if err != nil {
		log.Error("arbitrary: repository fault resolving transaction", "sig", msg.Signature, "err", fmt.Errorf("%w: %v", ErrRepositoryFault, err))
		return
	}
	reply := Message{ID: msg.ID, Type: MsgArbitraryDataFileList, Signature: msg.Signature}
	if ok {
		blob := m.bs.FromHash(msg.Signature)
		for _, h := range tx.Manifest() {
			if blob.ChunkExists(h) {
				reply.Hashes = append(reply.Hashes, h)
			}
		}
	}
	if !peer.SendMessage(reply) {
		log.Warn("arbitrary: disconnecting peer", "sig", msg.Signature, "peer", peer.ID(), "err", ErrPeerSendFailure)
		peer.Disconnect("failed to send list of hashes")
	}
}

// OnArbitraryDataFileList is the entry point when a peer responds to our
// discovery broadcast. It validates the reply against the RequestTable and
// the transaction's canonical manifest before issuing any fetches.
func (m *Manager) OnArbitraryDataFileList(peer Peer, msg Message) {
	rec, ok := m.table.Get(msg.ID)
	if !ok || rec.Signature == nil {
		return
	}
	if *rec.Signature != msg.Signature {
		log.Warn("arbitrary: reply signature does not match request", "id", msg.ID, "peer", peer.ID(), "err", ErrProtocolMismatch)
		return
	}
	if len(msg.Hashes) == 0 {
		return
	}

	tx, ok, err := m.repo.ArbitraryTransaction(msg.Signature)
	if err != nil {
		log.Error("arbitrary: repository fault resolving transaction", "sig", msg.Signature, "err", fmt.Errorf("%w: %v", ErrRepositoryFault, err))
		return
	}
	if !ok {
		return
	}
	manifest := make(map[common.ChunkHash]struct{}, len(tx.Manifest()))
	for _, h := range tx.Manifest() {
		manifest[h] = struct{}{}
	}
	for _, h := range msg.Hashes {
		if _, known := manifest[h]; !known {
			log.Warn("arbitrary: peer offered hash outside manifest", "sig", msg.Signature, "hash", h, "peer", peer.ID(), "err", ErrProtocolMismatch)
			return
		}
	}

	m.table.Insert(msg.ID, RequestRecord{CreatedAt: rec.CreatedAt})

	blob := m.bs.FromHash(msg.Signature)
	fetched := 0
	for _, h := range msg.Hashes {
		if blob.ContainsChunk(h) {
			continue
		}
		if m.inflight.Contains(h) {
			continue
		}
		data, ok := m.Fetch(peer, h)
		if !ok {
			continue
		}
		if err := blob.AddChunk(h, data); err != nil {
			log.Error("arbitrary: failed to persist chunk", "sig", msg.Signature, "hash", h, "err", err)
			continue
		}
		fetched++
	}
	log.Debug("arbitrary: processed file list reply", "sig", msg.Signature, "offered", len(msg.Hashes), "fetched", fetched)

	if rec.PeerID != nil {
		origin := findPeer(m.net, *rec.PeerID)
		if origin == nil {
			return
		}
		if !origin.SendMessage(msg) {
			log.Warn("arbitrary: disconnecting peer", "sig", msg.Signature, "peer", origin.ID(), "err", ErrPeerSendFailure)
			origin.Disconnect("failed to forward arbitrary data file list")
		}
	}
}

// OnGetArbitraryDataFile serves a single chunk request, or a "file
// unknown" sentinel when the chunk is not held locally so the peer need
// not wait out its own timeout.
func (m *Manager) OnGetArbitraryDataFile(peer Peer, msg Message) {
	atomic.AddInt64(&m.stats.GetArbitraryDataFileRequests, 1)
	m.meters.getFileRequests.Mark(1)
	if len(msg.Hashes) == 0 {
		return
	}
	hash := msg.Hashes[0]

	for _, sig := range m.localBlobSignatures() {
		blob := m.bs.FromHash(sig)
		if data, ok := blob.Chunk(hash); ok {
			reply := Message{ID: msg.ID, Type: MsgArbitraryDataFile, Data: data}
			if !peer.SendMessage(reply) {
				log.Warn("arbitrary: disconnecting peer", "hash", hash, "peer", peer.ID(), "err", ErrPeerSendFailure)
				peer.Disconnect("failed to send file")
			}
			return
		}
	}

	atomic.AddInt64(&m.stats.GetArbitraryDataFileUnknownFiles, 1)
	m.meters.getFileUnknown.Mark(1)
	unknown := Message{ID: msg.ID, Type: m.unknownFileSentinel(peer)}
	if !peer.SendMessage(unknown) {
		log.Warn("arbitrary: disconnecting peer", "hash", hash, "peer", peer.ID(), "err", ErrPeerSendFailure)
		peer.Disconnect("failed to send file")
	}
}

// unknownFileSentinel picks the "file unknown" response appropriate to the
// peer's protocol version (spec.md §9 open question 1): ProtocolV2 peers
// get the dedicated code, older peers get the legacy empty BLOCK_SUMMARIES
// abuse so they are never left waiting out their own timeout.
func (m *Manager) unknownFileSentinel(peer Peer) MessageType {
	if vp, ok := peer.(interface{ ProtocolVersion() int }); ok && vp.ProtocolVersion() >= ProtocolV2 {
		return MsgArbitraryDataFileUnknown
	}
	return MsgBlockSummaries
}

func peerPtr(id string) *string { return &id }

// blobBytes concatenates every chunk of a blob in the order Blob.Chunks
// lists them, for GET_ARBITRARY_DATA. That order is the Blob's own listing
// order, not the transaction's manifest order, so a multi-chunk payload is
// not guaranteed to come back in its original byte order. Full reassembly
// machinery belongs to the BlobStore (spec.md §1 out-of-scope note).
func blobBytes(b Blob) ([]byte, bool) {
	chunks := b.Chunks()
	if len(chunks) == 0 {
		return nil, false
	}
	var out []byte
	for _, h := range chunks {
		data, ok := b.Chunk(h)
		if !ok {
			return nil, false
		}
		out = append(out, data...)
	}
	return out, true
}

func findPeer(net Network, id string) Peer {
	for _, p := range net.HandshakedPeers() {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

// localBlobSignatures is a placeholder collaborator seam: OnGetArbitraryDataFile
// needs to find which transaction owns an arbitrary chunk hash without the
// Repository exposing a reverse index, so a BlobStore that lists the
// signatures it knows (KnownSignatures, see blobstore.FilesystemStore) lets
// the handler scan each of those blobs for the hash. Without that method
// the list is empty.
func (m *Manager) localBlobSignatures() []common.Signature {
	if idx, ok := m.bs.(interface{ KnownSignatures() []common.Signature }); ok {
		return idx.KnownSignatures()
	}
	return nil
}
