// Copyright 2017 The go-ethereum Authors
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

import "time"

// Config holds the settings a Manager needs that are not themselves
// collaborators (Repository, Network, ...). Wired as a plain struct with
// toml tags rather than a getter interface, matching abey/config.go's
// Config/DefaultConfig convention.
type Config struct {
	// MinBlockchainPeers is the quorum the scavenger requires before it
	// will emit any discovery broadcast.
	MinBlockchainPeers int `toml:",omitempty"`
	// ScavengerInterval overrides the 2s scavenger sleep; zero means use
	// the default.
	ScavengerInterval time.Duration `toml:",omitempty"`
	// JanitorInterval overrides the external housekeeping cadence; zero
	// means use the default.
	JanitorInterval time.Duration `toml:",omitempty"`
}

// DefaultConfig mirrors abey/config.go's DefaultConfig package var.
var DefaultConfig = Config{
	MinBlockchainPeers: 3,
	ScavengerInterval:  2 * time.Second,
	JanitorInterval:    2 * time.Second,
}
