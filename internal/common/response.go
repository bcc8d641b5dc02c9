package common

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	// Retryable is true only when the failure is a temporary internal
	// fault, never for input or permission errors.
	Retryable bool `json:"retryable"`
}

// RespondWithJSON writes payload as a JSON body with the given status code.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to marshal response","retryable":false}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// RespondWithDomainError translates a domain error into its stable status
// code and error body. Internal faults are reported as a generic
// unavailable message so storage details never leak to callers.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	code := HTTPStatusFromError(err)
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		msg = ErrUnavailable.Error()
	}
	RespondWithJSON(w, code, ErrorResponse{
		Error:     msg,
		Retryable: code >= http.StatusInternalServerError,
	})
}

// RespondWithError writes a fixed message with the given status code.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{
		Error:     message,
		Retryable: code >= http.StatusInternalServerError,
	})
}
