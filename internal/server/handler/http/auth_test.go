package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretstore/internal/common"
	"secretstore/internal/models"
	handler "secretstore/internal/server/handler/http"
)

type fakeAuthService struct {
	LoginFunc func(ctx context.Context, username, password string) (string, *models.User, error)
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	return f.LoginFunc(ctx, username, password)
}

func TestAuthLogin(t *testing.T) {
	alice := &models.User{ID: "u1", Username: "alice", Role: models.RoleUser}

	tests := []struct {
		name          string
		body          string
		loginErr      error
		wantStatus    int
		wantToken     string
		wantRetryable bool
	}{
		{
			name:       "valid credentials",
			body:       `{"username":"alice","password":"s3cr3t"}`,
			wantStatus: http.StatusOK,
			wantToken:  "tok-123",
		},
		{
			name:       "wrong password",
			body:       `{"username":"alice","password":"nope"}`,
			loginErr:   common.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing fields",
			body:       `{"username":"","password":""}`,
			loginErr:   common.ErrValidation,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"username": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:          "backend down",
			body:          `{"username":"alice","password":"s3cr3t"}`,
			loginErr:      common.ErrUnavailable,
			wantStatus:    http.StatusServiceUnavailable,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &handler.AuthHandler{AuthService: &fakeAuthService{
				LoginFunc: func(ctx context.Context, username, password string) (string, *models.User, error) {
					if tt.loginErr != nil {
						return "", nil, tt.loginErr
					}
					return "tok-123", alice, nil
				},
			}}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			h.Login(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				var resp handler.LoginResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tt.wantToken, resp.Token)
				require.NotNil(t, resp.User)
				assert.Equal(t, "alice", resp.User.Username)
				return
			}

			var errResp common.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
			assert.Equal(t, tt.wantRetryable, errResp.Retryable)
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestAuthLogin_NoHashInResponse(t *testing.T) {
	h := &handler.AuthHandler{AuthService: &fakeAuthService{
		LoginFunc: func(ctx context.Context, username, password string) (string, *models.User, error) {
			return "tok", &models.User{ID: "u1", Username: "alice", PasswordHash: "bcrypt-material"}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"username":"alice","password":"x"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "bcrypt-material")
	assert.NotContains(t, rec.Body.String(), "password")
}
