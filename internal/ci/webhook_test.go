package ci_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-gatekeeper/internal/ci"
	"github.com/sevigo/pr-gatekeeper/internal/config"
	"github.com/sevigo/pr-gatekeeper/internal/core"
)

type receivedWebhook struct {
	header http.Header
	body   []byte
}

func newWebhookBackend(t *testing.T, url, secret string) core.ContinuousIntegration {
	t.Helper()
	deps := ci.Deps{
		Config: &config.Config{CI: config.CIConfig{Webhook: config.WebhookCIConfig{
			URL: url, Secret: secret, Timeout: 5 * time.Second,
		}}},
		Logger: discardLogger(),
	}
	backends, err := ci.NewRegistry(ci.DefaultCatalog(), deps).Load(context.Background(), []string{ci.KeyWebhook})
	require.NoError(t, err)
	require.Len(t, backends, 1)
	return backends[0]
}

func TestWebhook_SendsSignedNotification(t *testing.T) {
	received := make(chan receivedWebhook, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- receivedWebhook{header: r.Header.Clone(), body: body}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	backend := newWebhookBackend(t, srv.URL, "s3cret")
	require.NoError(t, backend.TriggerBuild(context.Background(), newPREvent(t)))

	got := <-received
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.Equal(t, string(core.BuildRequested), got.header.Get(ci.HeaderEvent))
	_, err := uuid.Parse(got.header.Get(ci.HeaderDelivery))
	assert.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write(got.body)
	assert.Equal(t, "sha256="+hex.EncodeToString(mac.Sum(nil)), got.header.Get(ci.HeaderSignature))

	var n ci.Notification
	require.NoError(t, json.Unmarshal(got.body, &n))
	assert.Equal(t, core.BuildRequested, n.Kind)
	assert.Equal(t, "acme/widgets", n.Repository)
	assert.Equal(t, 42, n.Number)
	assert.Equal(t, "delivery-1", n.DeliveryID)
	assert.Contains(t, string(n.Event), `"/retest"`)
}

func TestWebhook_FailedBuildKindAndNoSignatureWithoutSecret(t *testing.T) {
	received := make(chan receivedWebhook, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- receivedWebhook{header: r.Header.Clone(), body: body}
	}))
	defer srv.Close()

	backend := newWebhookBackend(t, srv.URL, "")
	require.NoError(t, backend.TriggerFailedBuild(context.Background(), newPREvent(t)))

	got := <-received
	assert.Equal(t, string(core.BuildFailed), got.header.Get(ci.HeaderEvent))
	assert.Empty(t, got.header.Get(ci.HeaderSignature))
}

func TestWebhook_RejectedDeliveryIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "queue closed", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	backend := newWebhookBackend(t, srv.URL, "")
	err := backend.TriggerBuild(context.Background(), newPREvent(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "queue closed")
}

func TestWebhook_InitValidatesURL(t *testing.T) {
	for _, url := range []string{"", "not a url"} {
		deps := ci.Deps{
			Config: &config.Config{CI: config.CIConfig{Webhook: config.WebhookCIConfig{URL: url}}},
			Logger: discardLogger(),
		}
		backend, ok := ci.NewRegistry(ci.DefaultCatalog(), deps).Resolve(ci.KeyWebhook)
		require.True(t, ok)
		assert.Error(t, backend.Init(context.Background()), "url %q", url)
	}
}
