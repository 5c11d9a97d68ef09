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

package p2p

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
)

// GenerateNodeID derives a stable textual peer id from a freshly generated
// secp256k1 keypair's compressed public key, the same curve the teacher's
// devp2p node identity and enode URLs are built on.
func GenerateNodeID() (string, error) {
	_, id, err := GenerateNodeKey()
	return id, err
}

// GenerateNodeKey returns both halves of a freshly generated secp256k1
// identity: the hex-encoded private key, for a caller that needs to persist
// it, and the node id derived from GenerateNodeID's same derivation.
func GenerateNodeKey() (privHex, id string, err error) {
	key, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return "", "", fmt.Errorf("p2p: generate node key: %w", err)
	}
	pub := key.PubKey().SerializeCompressed()
	return hex.EncodeToString(key.Serialize()), hex.EncodeToString(pub), nil
}

// NodeIDFromPrivateKeyHex re-derives the node id for an existing hex-encoded
// private key, for inspecting a previously generated identity file.
func NodeIDFromPrivateKeyHex(privHex string) (string, error) {
	raw, err := hex.DecodeString(privHex)
	if err != nil {
		return "", fmt.Errorf("p2p: decode private key: %w", err)
	}
	key, _ := btcec.PrivKeyFromBytes(btcec.S256(), raw)
	return hex.EncodeToString(key.PubKey().SerializeCompressed()), nil
}

// must panics on GenerateNodeID failure; used only where the caller has no
// sane fallback (process start).
func must(id string, err error) string {
	if err != nil {
		panic(err)
	}
	return id
}

// NewPeerWithGeneratedID constructs a Peer whose id is derived from a fresh
// keypair, for callers that don't have a transport-assigned id yet.
func NewPeerWithGeneratedID(version int) *Peer {
	return NewPeer(must(GenerateNodeID()), version)
}
