package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"centralbank/internal/domain"
)

// wireResult is the { "Case": "Ok"|"Error", "Fields": [...] } envelope
// spec.md §6 specifies for the HTTP response body.
type wireResult struct {
	Case   string            `json:"Case"`
	Fields []json.RawMessage `json:"Fields"`
}

// writeResult writes the Ok/Error envelope for a processor outcome.
// Per spec.md §6, HTTP status is always 200 for either shape —
// transport-level failures are a client-side concern (domain.Network),
// never something this service produces itself.
func writeResult(w http.ResponseWriter, result domain.TransactionResult, err error) {
	var txErr *domain.TransactionError
	if err != nil {
		if !errors.As(err, &txErr) {
			// Unexpected failures (store I/O, JSON decode) are not part of
			// the closed TransactionError taxonomy; spec.md §7 calls these
			// out as the framework's generic internal-error response.
			writeInternalError(w, err)
			return
		}
		body, marshalErr := txErr.MarshalJSON()
		if marshalErr != nil {
			writeInternalError(w, marshalErr)
			return
		}
		writeEnvelope(w, wireResult{Case: "Error", Fields: []json.RawMessage{body}})
		return
	}

	body, marshalErr := result.MarshalJSON()
	if marshalErr != nil {
		writeInternalError(w, marshalErr)
		return
	}
	writeEnvelope(w, wireResult{Case: "Ok", Fields: []json.RawMessage{body}})
}

func writeEnvelope(w http.ResponseWriter, env wireResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(env)
}

// writeInternalError is the one place the transaction handler answers
// with a non-200 status: truly unexpected failures outside the
// TransactionError taxonomy. (The rate limiter answers 429 before the
// handler runs.)
func writeInternalError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
