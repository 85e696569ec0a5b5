package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gisdevelope/mapdb/pkg/serializer"
	"github.com/gisdevelope/mapdb/pkg/store"
)

// Values cross the HTTP boundary as JSON, so every handler speaks the
// JSON serializer. A JSON null stores the null sentinel.
var jsonSerializer = serializer.JSON{}

// Server holds the API server state
type Server struct {
	store   store.Store
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(st store.Store, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   st,
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) recordOp(name string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordStoreOperation(name, err == nil, time.Since(start))
	}
}

// recidParam parses the {recid} URL parameter.
func recidParam(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "recid"), 10, 64)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handlePut stores a new record and returns its recid.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.recordOp("put", start, err)
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	recid, err := s.store.Put(req.Value, jsonSerializer)
	s.recordOp("put", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, RecidResponse{Recid: recid})
}

// handlePreallocate reserves a recid holding the null sentinel.
func (s *Server) handlePreallocate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	recid, err := s.store.Preallocate()
	s.recordOp("preallocate", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, RecidResponse{Recid: recid})
}

// handleGet reads one record; 404 distinguishes "no such recid" from a
// record holding a null value (200 with a null value).
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	recid, err := recidParam(r)
	if err != nil {
		sendError(w, "Invalid recid", http.StatusBadRequest)
		return
	}

	value, err := s.store.Get(recid, jsonSerializer)
	s.recordOp("get", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, RecordResponse{Recid: recid, Value: value})
}

// handleUpdate overwrites an existing record.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	recid, err := recidParam(r)
	if err != nil {
		sendError(w, "Invalid recid", http.StatusBadRequest)
		return
	}
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	err = s.store.Update(recid, req.Value, jsonSerializer)
	s.recordOp("update", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, RecidResponse{Recid: recid})
}

// handleCAS atomically replaces a record iff its current value matches
// the expected one.
func (s *Server) handleCAS(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	recid, err := recidParam(r)
	if err != nil {
		sendError(w, "Invalid recid", http.StatusBadRequest)
		return
	}
	var req CASRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	swapped, err := s.store.CompareAndSwap(recid, req.Expected, req.Update, jsonSerializer)
	s.recordOp("cas", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, CASResponse{Swapped: swapped})
}

// handleDelete removes a record and recycles its recid.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	recid, err := recidParam(r)
	if err != nil {
		sendError(w, "Invalid recid", http.StatusBadRequest)
		return
	}

	err = s.store.Delete(recid, jsonSerializer)
	s.recordOp("delete", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, RecidResponse{Recid: recid})
}

// handleListRecids returns an unordered snapshot of the live recids.
func (s *Server) handleListRecids(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	recids, err := s.store.Recids()
	s.recordOp("recids", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, map[string][]uint64{"recids": recids})
}

// handleCommit makes the current state durable.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	err := s.store.Commit()
	s.recordOp("commit", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, s.store.Stats())
}

// handleRollback discards uncommitted mutations.
func (s *Server) handleRollback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	err := s.store.Rollback()
	s.recordOp("rollback", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, s.store.Stats())
}

// handleCompact shrinks the allocable recid space.
func (s *Server) handleCompact(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	err := s.store.Compact()
	s.recordOp("compact", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, s.store.Stats())
}

// handleVerify runs the full invariant audit.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	err := s.store.Verify()
	s.recordOp("verify", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, map[string]string{"status": "consistent"})
}

// handleStats reports diagnostic counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, s.store.Stats())
}

// handleFiles lists the store's backing paths.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	files := s.store.Files()
	if files == nil {
		files = []string{}
	}
	sendSuccess(w, map[string][]string{"files": files})
}

// startMetricsUpdater periodically refreshes the store gauges.
func (s *Server) startMetricsUpdater() {
	if s.metrics == nil {
		return
	}
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		if s.store.IsClosed() {
			return
		}
		st := s.store.Stats()
		s.metrics.UpdateStoreStats(st.Records, st.FreeRecids, st.MaxRecid, st.Version)
	}
}
