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

// Package status exposes a tiny read-only HTTP endpoint reporting the
// ADM's counters, for operators and dashboards. It is not part of the
// core protocol state machine; it exists purely to give the node
// something to curl.
package status

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristanetworks/goarista/monotime"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/meshdata/goadm/arbitrary"
)

// Server serves /status with the manager's live stats.
type Server struct {
	mgr       *arbitrary.Manager
	startedAt uint64
	handler   http.Handler
}

// NewServer builds the HTTP handler. mgr must already be started.
func NewServer(mgr *arbitrary.Manager) *Server {
	s := &Server{mgr: mgr, startedAt: monotime.Now()}
	router := httprouter.New()
	router.GET("/status", s.handleStatus)
	s.handler = cors.Default().Handler(router)
	return s
}

// ListenAndServe blocks serving the status endpoint on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.handler)
}

type statusResponse struct {
	UptimeSeconds                    float64 `json:"uptime_seconds"`
	GetArbitraryDataFileRequests     int64   `json:"get_arbitrary_data_file_requests"`
	GetArbitraryDataFileUnknownFiles int64   `json:"get_arbitrary_data_file_unknown_files"`
	GetArbitraryDataFileListRequests int64   `json:"get_arbitrary_data_file_list_requests"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats := s.mgr.Stats()
	uptime := time.Duration(monotime.Now() - s.startedAt)
	resp := statusResponse{
		UptimeSeconds:                    uptime.Seconds(),
		GetArbitraryDataFileRequests:     stats.GetArbitraryDataFileRequests,
		GetArbitraryDataFileUnknownFiles: stats.GetArbitraryDataFileUnknownFiles,
		GetArbitraryDataFileListRequests: stats.GetArbitraryDataFileListRequests,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
