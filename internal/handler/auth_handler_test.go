package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votepulse/internal/domain"
	"votepulse/internal/middleware"
	apperrors "votepulse/pkg/errors"
	"votepulse/pkg/logger"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegisterHandler(t *testing.T) {
	svc := &stubAuthService{
		registerProfile: &domain.Profile{ID: "abc123", Login: "ada"},
	}
	h := NewAuthHandler(svc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"login":"ada","password":"s3cret!"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["message"])
}

func TestRegisterHandlerMalformedBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["error"])
}

func TestRegisterHandlerConflict(t *testing.T) {
	svc := &stubAuthService{registerErr: apperrors.NewConflictError("Login is already taken")}
	h := NewAuthHandler(svc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"login":"ada","password":"s3cret!"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Login is already taken", body["error"])
}

func TestLoginHandler(t *testing.T) {
	svc := &stubAuthService{
		loginResp: &domain.LoginResponse{
			Token: "token-value",
			User:  &domain.Profile{ID: "abc123", Login: "ada"},
		},
	}
	h := NewAuthHandler(svc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"login":"ada","password":"s3cret!"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "token-value", body["token"])
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ada", user["login"])
}

func TestLoginHandlerRejected(t *testing.T) {
	svc := &stubAuthService{loginErr: apperrors.NewAuthenticationError("Invalid login or password")}
	h := NewAuthHandler(svc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"login":"ada","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid login or password", body["error"])
}

func TestLoginHandlerInternalErrorIsOpaque(t *testing.T) {
	svc := &stubAuthService{loginErr: assert.AnError}
	h := NewAuthHandler(svc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"login":"ada","password":"s3cret!"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestMeHandler(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, logger.NewNop())

	profile := &domain.Profile{ID: "abc123", Login: "ada"}
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, profile)
	rec := httptest.NewRecorder()
	h.Me(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ada", body["login"])
}

func TestMeHandlerWithoutUser(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
