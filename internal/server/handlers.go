package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type counterDeltaRequest struct {
	Delta int64 `json:"delta"`
}

func (s *Server) handleCounterIncrement(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req counterDeltaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "BAD_REQUEST")
		return
	}
	value := s.store.CounterIncrement(name, req.Delta)
	s.ops.IncWrite()
	writeJSON(w, http.StatusOK, map[string]int64{"value": value})
}

func (s *Server) handleCounterDecrement(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req counterDeltaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "BAD_REQUEST")
		return
	}
	value := s.store.CounterDecrement(name, req.Delta)
	s.ops.IncWrite()
	writeJSON(w, http.StatusOK, map[string]int64{"value": value})
}

func (s *Server) handleCounterGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.ops.IncRead()
	writeJSON(w, http.StatusOK, map[string]int64{"value": s.store.CounterGet(name)})
}

type mapPutRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleMapPut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	key := chi.URLParam(r, "key")
	var req mapPutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "BAD_REQUEST")
		return
	}
	old, existed := s.store.MapPut(name, key, req.Value)
	s.ops.IncWrite()
	writeJSON(w, http.StatusOK, map[string]interface{}{"old": old, "existed": existed})
}

func (s *Server) handleMapGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	key := chi.URLParam(r, "key")
	s.ops.IncRead()
	value, err := s.store.MapGet(name, key)
	if err != nil {
		s.ops.IncNotFound()
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"value": value})
}

func (s *Server) handleMapRemove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	key := chi.URLParam(r, "key")
	s.ops.IncWrite()
	old, err := s.store.MapRemove(name, key)
	if err != nil {
		s.ops.IncNotFound()
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"old": old})
}

type setAddRequest struct {
	Element string `json:"element"`
}

func (s *Server) handleSetAdd(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req setAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "BAD_REQUEST")
		return
	}
	if req.Element == "" {
		writeError(w, http.StatusBadRequest, "element is required", "BAD_REQUEST")
		return
	}
	added := s.store.SetAdd(name, req.Element)
	s.ops.IncWrite()
	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}

func (s *Server) handleSetContains(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	elem := chi.URLParam(r, "element")
	s.ops.IncRead()
	writeJSON(w, http.StatusOK, map[string]bool{"contains": s.store.SetContains(name, elem)})
}

func (s *Server) handleSetRemove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	elem := chi.URLParam(r, "element")
	s.ops.IncWrite()
	if err := s.store.SetRemove(name, elem); err != nil {
		s.ops.IncNotFound()
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
