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

// Package config loads the node-wide Settings that sit outside the ADM's
// own arbitrary.Config, the way cmd/gabey/config.go layers a TOML file
// under CLI flags before constructing the chain backend.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/mohae/deepcopy"
	"github.com/naoina/toml"
	"github.com/pborman/uuid"

	"github.com/meshdata/goadm/arbitrary"
)

// tomlSettings mirrors cmd/gabey/config.go's field-name-is-key convention
// so struct field names match TOML keys verbatim.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string { return key },
	FieldToKey:    func(rt reflect.Type, field string) string { return field },
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see the %s type for available fields", rt.String())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// Settings is the top-level node configuration: the ADM's own tuning
// knobs plus node-identity and storage locations that do not belong
// inside the arbitrary package itself.
type Settings struct {
	Arbitrary arbitrary.Config

	// DataDir roots the repository and blob store on disk.
	DataDir string `toml:",omitempty"`
	// ListenAddr is the P2P listen address, e.g. ":30310".
	ListenAddr string `toml:",omitempty"`
	// NodeID identifies this process instance. New assigns a fresh random
	// one; a NodeID in a loaded config file replaces it. It is not written
	// back to disk.
	NodeID string `toml:",omitempty"`
}

// DefaultSettings mirrors abey/config.go's DefaultConfig package var
// convention: a single shared default instance callers clone from.
var DefaultSettings = Settings{
	Arbitrary:  arbitrary.DefaultConfig,
	DataDir:    "admnode-data",
	ListenAddr: ":30310",
}

// New returns a deep copy of DefaultSettings with a freshly minted NodeID,
// matching node/config.go's convention of never handing callers a pointer
// into the shared default value.
func New() *Settings {
	cfg := deepcopy.Copy(DefaultSettings).(Settings)
	cfg.NodeID = uuid.New()
	return &cfg
}

// Load reads a TOML file at path into cfg, in place, the way
// cmd/gabey/config.go's loadConfig does, including its line-numbered
// error annotation.
func Load(path string, cfg *Settings) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(path + ", " + err.Error())
	}
	return err
}
