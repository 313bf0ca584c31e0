package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"cryptocall/internal/callrequest"
	"cryptocall/internal/notify"
	"cryptocall/internal/shell"
	"cryptocall/internal/wallet"
)

type tabRequest struct {
	Tab shell.Tab `json:"tab"`
}

type phoneRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type connectRequest struct {
	ConnectorID string `json:"connectorId"`
}

type connectorView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type callResponse struct {
	Outcome       string   `json:"outcome"`
	Topic         string   `json:"topic"`
	Notifications []string `json:"notifications"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	c, err := s.topics.Load(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "load topics: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.state.Snapshot())
}

func (s *Server) handleSetTab(w http.ResponseWriter, r *http.Request) {
	var payload tabRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json payload")
		return
	}
	if err := s.state.SetTab(payload.Tab); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.state.Snapshot())
}

func (s *Server) handleSetPhone(w http.ResponseWriter, r *http.Request) {
	var payload phoneRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json payload")
		return
	}
	s.state.SetPhone(payload.PhoneNumber)
	writeJSON(w, http.StatusOK, s.state.Snapshot())
}

// handleConnectors lists connectors whose name matches ?name=, defaulting to
// the configured connector name. ?name=* lists all of them.
func (s *Server) handleConnectors(w http.ResponseWriter, r *http.Request) {
	name := s.cfg.Wallet.ConnectorName
	if q, ok := r.URL.Query()["name"]; ok && len(q) > 0 {
		name = q[0]
	}
	if name == "*" {
		name = ""
	}
	conns := s.state.Connectors(name)
	out := make([]connectorView, 0, len(conns))
	for _, c := range conns {
		out = append(out, connectorView{ID: c.ID(), Name: c.Name()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var payload connectRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json payload")
		return
	}
	if payload.ConnectorID == "" {
		s.writeError(w, http.StatusBadRequest, "connectorId is required")
		return
	}

	if _, err := s.state.Connect(r.Context(), payload.ConnectorID); err != nil {
		if errors.Is(err, wallet.ErrUnknownConnector) {
			s.metrics.incConnect("unknown")
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.metrics.incConnect("failed")
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.metrics.incConnect("connected")
	writeJSON(w, http.StatusOK, s.state.Snapshot())
}

func (s *Server) handleDisconnect(w http.ResponseWriter, _ *http.Request) {
	s.state.Disconnect()
	writeJSON(w, http.StatusOK, s.state.Snapshot())
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	bal, err := s.state.RefetchBalance(r.Context())
	switch {
	case err == nil:
		s.metrics.incBalance("ok")
		writeJSON(w, http.StatusOK, bal)
	case errors.Is(err, wallet.ErrNotConnected):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, shell.ErrBalanceUnavailable):
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.metrics.incBalance("failed")
		s.writeError(w, http.StatusBadGateway, err.Error())
	}
}

func (s *Server) handleLearnCall(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "topic index must be an integer")
		return
	}
	c, err := s.topics.Load(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "load topics: "+err.Error())
		return
	}
	topic, err := c.LearnTopic(index)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.runCall(w, r, topic.Label)
}

func (s *Server) handleTradeCall(w http.ResponseWriter, r *http.Request) {
	c, err := s.topics.Load(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "load topics: "+err.Error())
		return
	}
	s.runCall(w, r, c.Trade.Label)
}

// runCall submits on a context detached from the client connection: a call
// request is never cancelled once started.
func (s *Server) runCall(w http.ResponseWriter, r *http.Request, topic string) {
	rec := &notify.Recorder{}
	n := notify.Multi{rec, notify.NewLogger(s.logger)}

	outcome := s.state.CallRequest(context.WithoutCancel(r.Context()), topic, n)
	s.metrics.incCall(outcome.String())

	status := http.StatusOK
	switch {
	case outcome.IsValidationError():
		status = http.StatusUnprocessableEntity
	case outcome != callrequest.OutcomeSent:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, callResponse{
		Outcome:       outcome.String(),
		Topic:         topic,
		Notifications: rec.Messages(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	overallHealthy := true

	rpcInfo := struct {
		Connected bool    `json:"connected"`
		LatencyMs float64 `json:"latency_ms"`
		Error     string  `json:"error,omitempty"`
	}{Connected: true}

	if s.rpcHealthFn != nil {
		start := time.Now()
		rpcCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := s.rpcHealthFn(rpcCtx); err != nil {
			rpcInfo.Connected = false
			rpcInfo.Error = err.Error()
			overallHealthy = false
		} else {
			rpcInfo.LatencyMs = float64(time.Since(start).Microseconds()) / 1000.0
		}
	}

	catalogInfo := struct {
		Connected bool   `json:"connected"`
		Topics    int    `json:"topics"`
		Error     string `json:"error,omitempty"`
	}{Connected: true}

	if s.catalogHealthFn != nil {
		dbCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := s.catalogHealthFn(dbCtx); err != nil {
			catalogInfo.Connected = false
			catalogInfo.Error = err.Error()
			overallHealthy = false
		}
	}
	if catalogInfo.Connected {
		if c, err := s.topics.Load(ctx); err != nil {
			catalogInfo.Error = err.Error()
			overallHealthy = false
		} else {
			catalogInfo.Topics = len(c.Learn)
		}
	}

	status := "healthy"
	if !overallHealthy {
		status = "degraded"
	}

	resp := struct {
		Status  string `json:"status"`
		RPC     any    `json:"rpc"`
		Catalog any    `json:"catalog"`
	}{
		Status:  status,
		RPC:     rpcInfo,
		Catalog: catalogInfo,
	}

	code := http.StatusOK
	if !overallHealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.logger.Warnw("API error", "status", status, "message", message)
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
