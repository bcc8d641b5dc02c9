package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondWithDomainError_KnownError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithDomainError(rec, fmt.Errorf("secret abc: %w", ErrNotFound))

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d; want %d", res.StatusCode, http.StatusNotFound)
	}

	var body ErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Retryable {
		t.Errorf("4xx errors must not be retryable")
	}
	if body.Error == "" {
		t.Errorf("expected error message in body")
	}
}

func TestRespondWithDomainError_InternalFaultIsHidden(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithDomainError(rec, errors.New("pq: connection refused on 10.0.0.5"))

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d; want %d", res.StatusCode, http.StatusServiceUnavailable)
	}

	var body ErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Retryable {
		t.Errorf("internal faults must be flagged retryable")
	}
	if body.Error != ErrUnavailable.Error() {
		t.Errorf("internal detail leaked to caller: %q", body.Error)
	}
}
