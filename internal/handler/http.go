package handler

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/pfrederiksen/promiedos-alerts/internal/logger"
)

// DeliveryHeader carries the delivery status on HTTP responses
const DeliveryHeader = "X-Delivery-Status"

// RunIDHeader carries the run id on HTTP responses
const RunIDHeader = "X-Run-Id"

type errorBody struct {
	Error string `json:"error"`
}

// ServeHTTP runs one invocation per request and responds with the snapshot as JSON
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.Run(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
		return
	}

	w.Header().Set(RunIDHeader, result.RunID)
	w.Header().Set(DeliveryHeader, result.Delivery.Status())
	writeJSON(w, http.StatusOK, result.Snapshot)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := sonic.Marshal(v)
	if err != nil {
		logger.Error("Failed to encode response", nil, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data) // nolint:errcheck
}
