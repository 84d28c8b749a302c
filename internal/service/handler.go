package service

import (
	"encoding/json"
	"net/http"

	"centralbank/internal/domain"
)

// handlers groups the HTTP entry points over one envelope, mirroring
// the teacher's Server struct.
type handlers struct {
	envelope    *Envelope
	broadcaster *Broadcaster
}

// transaction handles POST /api/transaction: decode a
// domain.TransactionRequest, submit it through the untrusted entry
// point, and write back the Ok/Error envelope of spec.md §6.
func (h *handlers) transaction(w http.ResponseWriter, r *http.Request) {
	var req domain.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInternalError(w, err)
		return
	}

	result, err := h.envelope.SubmitUntrusted(req)
	writeResult(w, result, err)
}

// health answers liveness probes.
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
