// Package api exposes the ledger over HTTP: snapshot inspection and
// one-record-at-a-time ingestion routed through the single-writer worker.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/punchamoorthee/payflow/internal/ledger"
	"github.com/punchamoorthee/payflow/internal/money"
	"github.com/punchamoorthee/payflow/internal/replay"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payflow_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payflow_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "endpoint"})
)

type Handler struct {
	worker *replay.Worker
}

func NewHandler(w *replay.Worker) *Handler {
	return &Handler{worker: w}
}

// Register wires the handler's routes onto r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/clients", h.ListClients).Methods("GET")
	r.HandleFunc("/clients/{id}", h.GetClient).Methods("GET")
	r.HandleFunc("/transactions", h.SubmitTransaction).Methods("POST")
}

// transactionRequest mirrors one raw log record. Ids arrive as JSON
// numbers; the amount stays text so no precision is lost before validation.
type transactionRequest struct {
	Type   string      `json:"type"`
	Client json.Number `json:"client"`
	Tx     json.Number `json:"tx"`
	Amount string      `json:"amount,omitempty"`
}

type clientResponse struct {
	Client    ledger.ClientID `json:"client"`
	Available string          `json:"available"`
	Held      string          `json:"held"`
	Total     string          `json:"total"`
	Locked    bool            `json:"locked"`
}

func toClientResponse(s ledger.ClientSnapshot) clientResponse {
	return clientResponse{
		Client:    s.Client,
		Available: s.Available.String(),
		Held:      s.Held.String(),
		Total:     s.Total.String(),
		Locked:    s.Locked,
	}
}

func (h *Handler) SubmitTransaction(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/transactions"))
	defer timer.ObserveDuration()

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "malformed JSON body", "POST", "/transactions")
		return
	}

	action, err := ledger.ParseRecord(ledger.Record{
		Type:   req.Type,
		Client: req.Client.String(),
		Tx:     req.Tx.String(),
		Amount: req.Amount,
	})
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), "POST", "/transactions")
		return
	}

	if err := h.worker.Apply(r.Context(), action); err != nil {
		switch {
		case errors.Is(err, ledger.ErrDuplicateTransaction):
			h.respondError(w, http.StatusConflict, err.Error(), "POST", "/transactions")
		case errors.Is(err, ledger.ErrDepositNotFound):
			h.respondError(w, http.StatusNotFound, err.Error(), "POST", "/transactions")
		case errors.Is(err, ledger.ErrAccountLocked),
			errors.Is(err, ledger.ErrInsufficientFunds),
			errors.Is(err, ledger.ErrNotDisputed),
			errors.Is(err, money.ErrOverflow),
			errors.Is(err, money.ErrUnderflow):
			h.respondError(w, http.StatusUnprocessableEntity, err.Error(), "POST", "/transactions")
		default:
			// includes ErrInsufficientHeldFunds, which means the ledger
			// itself is inconsistent
			h.respondError(w, http.StatusInternalServerError, err.Error(), "POST", "/transactions")
		}
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]string{"status": "applied"}, "POST", "/transactions")
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.worker.Snapshot(r.Context())
	if err != nil {
		h.respondError(w, http.StatusServiceUnavailable, err.Error(), "GET", "/clients")
		return
	}
	out := make([]clientResponse, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, toClientResponse(s))
	}
	h.respondJSON(w, http.StatusOK, out, "GET", "/clients")
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 16)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid client id", "GET", "/clients/{id}")
		return
	}
	snapshots, err := h.worker.Snapshot(r.Context())
	if err != nil {
		h.respondError(w, http.StatusServiceUnavailable, err.Error(), "GET", "/clients/{id}")
		return
	}
	for _, s := range snapshots {
		if s.Client == ledger.ClientID(id) {
			h.respondJSON(w, http.StatusOK, toClientResponse(s), "GET", "/clients/{id}")
			return
		}
	}
	h.respondError(w, http.StatusNotFound, "client not found", "GET", "/clients/{id}")
}

// Helpers
func (h *Handler) respondJSON(w http.ResponseWriter, code int, payload interface{}, method, endpoint string) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, code int, msg, method, endpoint string) {
	h.respondJSON(w, code, map[string]string{"error": msg}, method, endpoint)
}
