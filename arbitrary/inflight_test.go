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

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meshdata/goadm/common"
)

// TestInflightSingleFlight exercises invariant 2: for any chunk hash, at
// most one outstanding fetch may exist system-wide.
func TestInflightSingleFlight(t *testing.T) {
	f := NewInflightFetches()
	h := common.BytesToChunkHash([]byte("chunk-a"))
	now := time.Now()

	var wg sync.WaitGroup
	wins := make([]bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wins[i] = f.TryAcquire(h, now)
		}(i)
	}
	wg.Wait()

	count := 0
	for _, ok := range wins {
		if ok {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.True(t, f.Contains(h))

	f.Release(h)
	assert.False(t, f.Contains(h))
	assert.True(t, f.TryAcquire(h, now), "a released hash must be re-acquirable")
}

func TestInflightRemoveOlderThan(t *testing.T) {
	f := NewInflightFetches()
	now := time.Now()
	stale := common.BytesToChunkHash([]byte("stale"))
	fresh := common.BytesToChunkHash([]byte("fresh"))

	f.TryAcquire(stale, now.Add(-10*time.Second))
	f.TryAcquire(fresh, now)

	n := f.RemoveOlderThan(now.Add(-ARBITRARY_REQUEST_TIMEOUT))
	assert.Equal(t, 1, n)
	assert.False(t, f.Contains(stale))
	assert.True(t, f.Contains(fresh))
}
