package server

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/pr-gatekeeper/internal/server/handler"
)

func newTestRouter(logs io.Writer) http.Handler {
	logger := slog.New(slog.NewTextHandler(logs, nil))
	return NewRouter(handler.NewWebhookHandler("secret", nil, nil, logger), logger)
}

func TestRouter_Health(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRouter(&logs)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, logs.String(), "health checks are not logged")
}

func TestRouter_Webhook(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRouter(&logs)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, WebhookPath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	req := httptest.NewRequest(http.MethodPost, WebhookPath, strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "ping")
	req.Header.Set("X-GitHub-Delivery", "d-42")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code, "unsigned deliveries are rejected")
	assert.Contains(t, logs.String(), "delivery_id=d-42")
	assert.Contains(t, logs.String(), "status=401")
}
