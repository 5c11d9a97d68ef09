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

package blobstore

import (
	"path/filepath"

	"github.com/rjeczalik/notify"

	"github.com/meshdata/goadm/log"
)

// WatchExternalWrites watches dir for chunk files dropped by something
// other than AddChunk (an operator copying a blob in by hand, a sibling
// process sharing the same data directory) and invalidates the in-memory
// cache entry for any chunk that changes underneath this store. Returns a
// stop function. Nothing watches unless this is called; cmd/admnoded is the
// only caller.
func (s *FilesystemStore) WatchExternalWrites() (stop func(), err error) {
	events := make(chan notify.EventInfo, 16)
	if err := notify.Watch(filepath.Join(s.dir, "..."), events, notify.Write, notify.Create); err != nil {
		return nil, err
	}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case ev := <-events:
				s.invalidatePath(ev.Path())
				log.Debug("blobstore: external write detected, cache entry invalidated", "path", ev.Path(), "event", ev.Event())
			case <-done:
				return
			}
		}
	}()
	return func() {
		notify.Stop(events)
		close(done)
	}, nil
}
