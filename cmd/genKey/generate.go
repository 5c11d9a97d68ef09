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

package main

import (
	"fmt"

	"github.com/meshdata/goadm/p2p"

	"gopkg.in/urfave/cli.v1"
)

var (
	generateCommand = cli.Command{
		Name:      "generate",
		Usage:     "generate new node identities",
		ArgsUsage: "",
		Description: `
Generate one or more secp256k1 node identities and print their private key
and derived node id.
`,
		Flags: []cli.Flag{
			cli.IntFlag{
				Name:  "sum",
				Usage: "identity count",
				Value: 1,
			},
		},
		Action: func(ctx *cli.Context) error {
			count := ctx.Int("sum")
			if count <= 0 || count > 100 {
				count = 1
			}
			return generateIdentities(count)
		},
	}

	inspectCommand = cli.Command{
		Name:      "inspect",
		Usage:     "derive a node id from a private key",
		ArgsUsage: "<private-key-hex>",
		Description: `
Re-derive the node id for a previously generated private key, without
creating a new identity.
`,
		Action: func(ctx *cli.Context) error {
			priv := ctx.Args().First()
			if priv == "" {
				return cli.NewExitError("please provide a private key in hex", -1)
			}
			id, err := p2p.NodeIDFromPrivateKeyHex(priv)
			if err != nil {
				return cli.NewExitError(err.Error(), -1)
			}
			fmt.Println("node id:", id)
			return nil
		},
	}
)

func generateIdentities(count int) error {
	for i := 0; i < count; i++ {
		priv, id, err := p2p.GenerateNodeKey()
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("generate node key: %v", err), -1)
		}
		fmt.Println("private key:", priv)
		fmt.Println("node id:", id)
		fmt.Println("-------------------------------------------------------")
	}
	return nil
}
