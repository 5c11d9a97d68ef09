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

// admnoded is the process entrypoint: it loads Settings, wires the
// Repository/Network/BlobStore collaborators (no Clock is passed, so the
// Manager uses time.Now), and runs the Manager until SIGINT/SIGTERM,
// matching cmd/gabey's app.Run/signal lifecycle.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/crypto/sha3"
	"gopkg.in/urfave/cli.v1"

	"github.com/meshdata/goadm/arbitrary"
	"github.com/meshdata/goadm/blobstore"
	"github.com/meshdata/goadm/common"
	"github.com/meshdata/goadm/config"
	"github.com/meshdata/goadm/log"
	"github.com/meshdata/goadm/p2p"
	"github.com/meshdata/goadm/repository"
	"github.com/meshdata/goadm/status"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "data directory for the repository and blob store",
	}
	minPeersFlag = cli.IntFlag{
		Name:  "minpeers",
		Usage: "minimum handshaked peers before the scavenger will run",
	}
	statusAddrFlag = cli.StringFlag{
		Name:  "statusaddr",
		Value: ":8745",
		Usage: "address the status HTTP endpoint listens on",
	}
	ingestFlag = cli.StringFlag{
		Name:  "ingest",
		Usage: "split a local file into chunks and register it as a local arbitrary transaction, then exit",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "arbitrary data manager node"
	app.UsageText = wordwrap.WrapString(
		"admnoded runs the peer-to-peer content-discovery and chunk-fetch controller as a standalone process.",
		78,
	)
	app.Flags = []cli.Flag{configFileFlag, dataDirFlag, minPeersFlag, statusAddrFlag, ingestFlag}
	app.Action = run
	sort.Sort(cli.FlagsByName(app.Flags))

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("fatal: %v", err))
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	cfg := config.New()
	if path := ctx.String(configFileFlag.Name); path != "" {
		if err := config.Load(path, cfg); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if v := ctx.String(dataDirFlag.Name); v != "" {
		cfg.DataDir = v
	}
	if v := ctx.Int(minPeersFlag.Name); v != 0 {
		cfg.Arbitrary.MinBlockchainPeers = v
	}

	repo, err := repository.NewFilesystemStore(filepath.Join(cfg.DataDir, "chaindata"))
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}
	defer repo.Close()

	bs, err := blobstore.New(filepath.Join(cfg.DataDir, "blobs"))
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}

	if path := ctx.String(ingestFlag.Name); path != "" {
		return ingest(repo, bs, path)
	}

	watchStop, err := bs.WatchExternalWrites()
	if err != nil {
		return fmt.Errorf("watch blob store: %w", err)
	}
	defer watchStop()

	net := p2p.NewNetwork()
	mgr := arbitrary.NewManager(cfg.Arbitrary, repo, net, nil, bs, net)
	mgr.Start()
	defer mgr.Shutdown()

	srv := status.NewServer(mgr)
	go func() {
		if err := srv.ListenAndServe(ctx.String(statusAddrFlag.Name)); err != nil {
			log.Error("admnoded: status server stopped", "err", err)
		}
	}()

	log.Info(color.GreenString("admnoded started"), "node", cfg.NodeID, "datadir", cfg.DataDir)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Info("admnoded shutting down")
	return nil
}

// ingest splits path into chunks, writes them to the blob store, and
// records the resulting manifest as a local arbitrary transaction in the
// repository, the one-shot path an operator uses to seed local content
// before the node starts serving it to peers.
func ingest(repo *repository.Store, bs *blobstore.FilesystemStore, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	digest := sha3.Sum256(data)
	sig := common.BytesToSignature(digest[:])
	manifest, err := bs.Split(sig, data)
	if err != nil {
		return fmt.Errorf("split %s: %w", path, err)
	}
	if err := repo.Put(sig, manifest, true); err != nil {
		return fmt.Errorf("record %s: %w", path, err)
	}

	log.Info("admnoded: ingested local file", "path", path, "sig", sig, "chunks", len(manifest))
	return nil
}
