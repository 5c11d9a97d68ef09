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

// Package arbitrary is the peer-to-peer content-discovery and chunk-fetch
// controller for arbitrary-type transactions: it discovers, for every
// arbitrary transaction whose payload is not yet local, which connected
// peers hold its chunks, fetches the missing chunks, and serves the
// symmetric protocol to other peers.
package arbitrary

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/meshdata/goadm/log"
	"github.com/meshdata/goadm/metrics"
)

// Manager is the process-wide ADM instance. It is constructed once at
// process init and moved into its owning goroutines by Start; external
// code reaches it through the handle returned by NewManager, never a
// package-level global, so tests stay parallelizable.
type Manager struct {
	cfg  Config
	repo Repository
	net  Network
	clk  Clock
	bs   BlobStore
	mis  MisbehaviorTracker

	table    *RequestTable
	inflight *InflightFetches
	stats    Stats

	quit     chan struct{}
	stopping int32

	meters meterSet
}

type meterSet struct {
	getDataRequests     interface{ Mark(int64) }
	getFileListRequests interface{ Mark(int64) }
	getFileRequests     interface{ Mark(int64) }
	getFileUnknown      interface{ Mark(int64) }
}

// NewManager wires a Manager from its collaborators and config. cfg's zero
// fields are filled in from DefaultConfig, matching abey's pattern of
// merging a caller-supplied Config over package defaults.
func NewManager(cfg Config, repo Repository, net Network, clk Clock, bs BlobStore, mis MisbehaviorTracker) *Manager {
	if cfg.MinBlockchainPeers <= 0 {
		cfg.MinBlockchainPeers = DefaultConfig.MinBlockchainPeers
	}
	if cfg.ScavengerInterval <= 0 {
		cfg.ScavengerInterval = DefaultConfig.ScavengerInterval
	}
	if cfg.JanitorInterval <= 0 {
		cfg.JanitorInterval = DefaultConfig.JanitorInterval
	}
	m := &Manager{
		cfg:      cfg,
		repo:     repo,
		net:      net,
		clk:      clk,
		bs:       bs,
		mis:      mis,
		table:    NewRequestTable(),
		inflight: NewInflightFetches(),
		quit:     make(chan struct{}),
	}
	reg := metrics.NewRegisteredMeter
	m.meters = meterSet{
		getDataRequests:     reg("arbitrary/data/requests", nil),
		getFileListRequests: reg("arbitrary/filelist/requests", nil),
		getFileRequests:     reg("arbitrary/file/requests", nil),
		getFileUnknown:      reg("arbitrary/file/unknown", nil),
	}
	return m
}

// Start launches the scavenger and janitor goroutines, mirroring
// abey/fetcher.go's Start/Stop pair.
func (m *Manager) Start() {
	atomic.StoreInt32(&m.stopping, 0)
	go m.scavengerLoop()
	go m.janitorLoop()
	log.Info("arbitrary: manager started", "minBlockchainPeers", m.cfg.MinBlockchainPeers)
}

// Shutdown sets the stopping flag and closes the quit channel, unblocking
// both background loops, matching abey's stopping/quitSync idiom.
func (m *Manager) Shutdown() {
	atomic.StoreInt32(&m.stopping, 1)
	close(m.quit)
	log.Info("arbitrary: manager stopped")
}

func (m *Manager) isStopping() bool {
	return atomic.LoadInt32(&m.stopping) != 0
}

// Stats returns a snapshot of the manager's counters.
func (m *Manager) Stats() Stats {
	return Stats{
		GetArbitraryDataFileRequests:     atomic.LoadInt64(&m.stats.GetArbitraryDataFileRequests),
		GetArbitraryDataFileUnknownFiles: atomic.LoadInt64(&m.stats.GetArbitraryDataFileUnknownFiles),
		GetArbitraryDataFileListRequests: atomic.LoadInt64(&m.stats.GetArbitraryDataFileListRequests),
	}
}

// newRequestID draws a uniformly random positive message id and retries
// insertion until an unused one is found, matching spec.md §4.4 step 2's
// do-while collision retry.
func (m *Manager) newRequestID(rec RequestRecord) uint32 {
	for {
		id := rand.Uint32()
		if id == 0 {
			continue
		}
		if m.table.InsertIfAbsent(id, rec) {
			return id
		}
	}
}

func (m *Manager) now() time.Time {
	if m.clk != nil {
		return m.clk.Now()
	}
	return time.Now()
}
