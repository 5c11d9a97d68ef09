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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageTypeString(t *testing.T) {
	cases := []struct {
		t    MessageType
		want string
	}{
		{MsgGetArbitraryData, "GET_ARBITRARY_DATA"},
		{MsgArbitraryData, "ARBITRARY_DATA"},
		{MsgGetArbitraryDataFileList, "GET_ARBITRARY_DATA_FILE_LIST"},
		{MsgArbitraryDataFileList, "ARBITRARY_DATA_FILE_LIST"},
		{MsgGetArbitraryDataFile, "GET_ARBITRARY_DATA_FILE"},
		{MsgArbitraryDataFile, "ARBITRARY_DATA_FILE"},
		{MsgArbitraryDataFileUnknown, "ARBITRARY_DATA_FILE_UNKNOWN"},
		{MsgBlockSummaries, "BLOCK_SUMMARIES"},
		{MessageType(999), "UNKNOWN"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.t.String())
	}
}

func TestMessageTypesAreDistinct(t *testing.T) {
	seen := map[MessageType]bool{}
	all := []MessageType{
		MsgGetArbitraryData, MsgArbitraryData, MsgGetArbitraryDataFileList,
		MsgArbitraryDataFileList, MsgGetArbitraryDataFile, MsgArbitraryDataFile,
		MsgArbitraryDataFileUnknown, MsgBlockSummaries,
	}
	for _, m := range all {
		assert.False(t, seen[m], "duplicate message type value for %s", m)
		seen[m] = true
	}
}
