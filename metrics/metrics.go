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

// Package metrics is a thin façade over rcrowley/go-metrics, matching the
// NewRegisteredMeter/NewRegisteredCounter call shape used throughout the
// teacher's abey/fetcher/metrics.go so that package-level var blocks read
// identically here.
package metrics

import gometrics "github.com/rcrowley/go-metrics"

// Enabled mirrors go-ethereum's metrics.Enabled switch; when false the
// constructors return no-op meters and counters and register nothing.
var Enabled = true

func NewRegisteredMeter(name string, r gometrics.Registry) gometrics.Meter {
	if !Enabled {
		return gometrics.NilMeter{}
	}
	if r == nil {
		r = gometrics.DefaultRegistry
	}
	return gometrics.GetOrRegisterMeter(name, r)
}

func NewRegisteredCounter(name string, r gometrics.Registry) gometrics.Counter {
	if !Enabled {
		return gometrics.NilCounter{}
	}
	if r == nil {
		r = gometrics.DefaultRegistry
	}
	return gometrics.GetOrRegisterCounter(name, r)
}
