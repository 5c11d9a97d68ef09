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

// Package clock supplies the arbitrary.Clock collaborator: monotonic-ish
// network time for the ADM's correlation table timestamps.
package clock

import "time"

// System is the real wall-clock implementation used outside of tests.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fake lets tests drive Manager's notion of "now" deterministically,
// matching the fake clocks several of the pack's scheduler tests use in
// place of sleeping real wall time.
type Fake struct {
	t time.Time
}

// NewFake returns a Fake clock initialised to t.
func NewFake(t time.Time) *Fake { return &Fake{t: t} }

func (f *Fake) Now() time.Time { return f.t }

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) { f.t = f.t.Add(d) }

// Set pins the fake clock to t.
func (f *Fake) Set(t time.Time) { f.t = t }
