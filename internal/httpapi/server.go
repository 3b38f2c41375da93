// Package httpapi is the thin HTTP adapter over the engine. It translates
// requests into engine calls and engine results into JSON; no game logic
// lives here.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/laundrosim/backend/internal/bus"
	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/engine"
	"github.com/laundrosim/backend/internal/middleware"
)

// Server exposes the engine over HTTP.
type Server struct {
	engine  *engine.Engine
	bus     bus.Bus
	router  *mux.Router
	limiter *middleware.RateLimiter
}

func NewServer(eng *engine.Engine, b bus.Bus) *Server {
	s := &Server{
		engine:  eng,
		bus:     b,
		router:  mux.NewRouter(),
		limiter: middleware.NewRateLimiter(middleware.RateLimitConfig{}),
	}
	s.routes()
	return s
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) routes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestLogger)
	api.Use(s.limiter.Middleware)
	api.HandleFunc("/agents", s.handleCreateAgent).Methods(http.MethodPost)
	api.HandleFunc("/agents/{id}/commands", s.handleCommand).Methods(http.MethodPost)
	api.HandleFunc("/agents/{id}/advance", s.handleAdvance).Methods(http.MethodPost)
	api.HandleFunc("/agents/{id}/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/agents/{id}/history", s.handleHistory).Methods(http.MethodGet)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createAgentRequest struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
}

func (s *Server) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	var req createAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AgentID == "" {
		writeError(w, http.StatusBadRequest, "body must include agent_id")
		return
	}

	res, err := s.engine.CreateAgent(r.Context(), req.AgentID, req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := http.StatusCreated
	if !res.OK {
		status = http.StatusConflict
	}
	writeJSON(w, status, res)
}

type commandRequest struct {
	CommandKind string                 `json:"command_kind"`
	Payload     map[string]interface{} `json:"payload"`
	Source      string                 `json:"source"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["id"]

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CommandKind == "" {
		writeError(w, http.StatusBadRequest, "body must include command_kind")
		return
	}
	source := req.Source
	if source == "" {
		source = "AGENT"
	}

	res, err := s.engine.ExecuteCommand(r.Context(), &command.Command{
		Kind:    req.CommandKind,
		AgentID: agentID,
		Payload: req.Payload,
		Source:  source,
	})
	if err != nil {
		slog.Error("command failed", "agent", agentID, "kind", req.CommandKind, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := http.StatusOK
	if !res.OK {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

type advanceRequest struct {
	Days int `json:"days"`
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["id"]

	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "body must include days")
		return
	}

	res, err := s.engine.AdvanceTime(r.Context(), agentID, req.Days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := http.StatusOK
	if !res.OK {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["id"]

	state, err := s.engine.CurrentState(r.Context(), agentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(state.Locations) == 0 {
		writeError(w, http.StatusNotFound, "agent "+agentID+" not found")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["id"]

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs, err := s.engine.History(r.Context(), agentID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type item struct {
		Seq   uint64          `json:"seq"`
		Event json.RawMessage `json:"event"`
	}
	out := make([]item, 0, len(recs))
	for _, rec := range recs {
		body, err := json.Marshal(rec.Event)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out = append(out, item{Seq: rec.Seq, Event: body})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": out})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
