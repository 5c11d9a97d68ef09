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

// Command genKey generates and inspects the secp256k1 node identities peers
// use to address themselves on the arbitrary-data network.
package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v1"
)

var app *cli.App

func init() {
	app = cli.NewApp()
	app.Name = "genKey"
	app.Usage = "generate and inspect arbitrary-data node identities"
	app.Commands = []cli.Command{
		generateCommand,
		inspectCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
