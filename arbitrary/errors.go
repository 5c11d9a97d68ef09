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

import "errors"

// Sentinel errors for the five fault kinds spec.md §7 names. None of these
// are fatal to the hosting process; every call site that can produce one
// logs and continues.
var (
	// ErrRepositoryFault marks a Repository call that returned an error,
	// as opposed to a clean not-found result.
	ErrRepositoryFault = errors.New("arbitrary: repository fault")
	// ErrProtocolMismatch covers unexpected message types, unknown
	// signatures, chunk hashes missing from a manifest, or an empty hash
	// list where content was required.
	ErrProtocolMismatch = errors.New("arbitrary: protocol mismatch")
	// ErrPeerSendFailure wraps a false return from Peer.SendMessage.
	ErrPeerSendFailure = errors.New("arbitrary: failed to send message to peer")
	// ErrTimeout marks a discovery or fetch that exceeded its deadline.
	ErrTimeout = errors.New("arbitrary: request timed out")
	// ErrInterrupted marks a background loop iteration cut short by
	// Shutdown rather than by completing normally.
	ErrInterrupted = errors.New("arbitrary: interrupted by shutdown")
)
