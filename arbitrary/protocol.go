// Copyright 2014 The go-ethereum Authors
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

import "github.com/meshdata/goadm/common"

// ProtocolName is the official short name of the protocol used during peer
// capability negotiation.
const ProtocolName = "adm"

// Protocol versions this package can speak. ProtocolV2 adds a dedicated
// "file unknown" response (see MsgArbitraryDataFileUnknown); ProtocolV1
// peers only understand the legacy empty-BlockSummaries sentinel.
const (
	ProtocolV1 = 1
	ProtocolV2 = 2
)

// MessageType enumerates the wire messages consumed or produced by this
// package, matching the table in spec.md §6.
type MessageType uint32

const (
	MsgGetArbitraryData MessageType = iota
	MsgArbitraryData
	MsgGetArbitraryDataFileList
	MsgArbitraryDataFileList
	MsgGetArbitraryDataFile
	MsgArbitraryDataFile
	// MsgArbitraryDataFileUnknown is the dedicated "I don't have that
	// chunk" response for ProtocolV2 peers (spec.md §9 open question 1).
	MsgArbitraryDataFileUnknown
	// MsgBlockSummaries is an empty BLOCK_SUMMARIES message abused as a
	// "file unknown" sentinel for peers still on ProtocolV1. Kept for wire
	// compatibility; see spec.md §9.
	MsgBlockSummaries
)

func (t MessageType) String() string {
	switch t {
	case MsgGetArbitraryData:
		return "GET_ARBITRARY_DATA"
	case MsgArbitraryData:
		return "ARBITRARY_DATA"
	case MsgGetArbitraryDataFileList:
		return "GET_ARBITRARY_DATA_FILE_LIST"
	case MsgArbitraryDataFileList:
		return "ARBITRARY_DATA_FILE_LIST"
	case MsgGetArbitraryDataFile:
		return "GET_ARBITRARY_DATA_FILE"
	case MsgArbitraryDataFile:
		return "ARBITRARY_DATA_FILE"
	case MsgArbitraryDataFileUnknown:
		return "ARBITRARY_DATA_FILE_UNKNOWN"
	case MsgBlockSummaries:
		return "BLOCK_SUMMARIES"
	default:
		return "UNKNOWN"
	}
}

// Message is the in-memory form of every wire message this package sends
// or receives. The Codec that would serialize it to bytes is an external
// collaborator (spec.md §1); this struct is what survives decoding.
type Message struct {
	ID        uint32
	Type      MessageType
	Signature common.Signature
	Hashes    []common.ChunkHash
	Data      []byte
}
