package ci_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/pr-gatekeeper/internal/ci"
	"github.com/sevigo/pr-gatekeeper/internal/config"
	"github.com/sevigo/pr-gatekeeper/internal/core"
	"github.com/sevigo/pr-gatekeeper/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDeps() ci.Deps {
	return ci.Deps{Config: &config.Config{}, Logger: discardLogger()}
}

func catalogOf(backends map[string]core.ContinuousIntegration) ci.Catalog {
	catalog := ci.Catalog{}
	for key, b := range backends {
		catalog[key] = func(ci.Deps) core.ContinuousIntegration { return b }
	}
	return catalog
}

func TestRegistry_LoadInitializesInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockContinuousIntegration(ctrl)
	second := mocks.NewMockContinuousIntegration(ctrl)

	gomock.InOrder(
		second.EXPECT().Init(gomock.Any()).Return(nil).Times(1),
		first.EXPECT().Init(gomock.Any()).Return(nil).Times(1),
	)

	r := ci.NewRegistry(catalogOf(map[string]core.ContinuousIntegration{"a": first, "b": second}), testDeps())
	backends, err := r.Load(context.Background(), []string{"b", "a"})
	require.NoError(t, err)
	require.Len(t, backends, 2)
	assert.Same(t, second, backends[0])
	assert.Same(t, first, backends[1])
}

func TestRegistry_LoadSkipsUnknownKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	known := mocks.NewMockContinuousIntegration(ctrl)
	known.EXPECT().Init(gomock.Any()).Return(nil)

	r := ci.NewRegistry(catalogOf(map[string]core.ContinuousIntegration{"jenkins": known}), testDeps())
	backends, err := r.Load(context.Background(), []string{"travis", "jenkins", "circle"})
	require.NoError(t, err)
	assert.Len(t, backends, 1)
}

func TestRegistry_LoadExcludesBackendsThatFailInit(t *testing.T) {
	ctrl := gomock.NewController(t)
	healthy := mocks.NewMockContinuousIntegration(ctrl)
	broken := mocks.NewMockContinuousIntegration(ctrl)
	initErr := errors.New("missing credentials")

	broken.EXPECT().Init(gomock.Any()).Return(initErr)
	healthy.EXPECT().Init(gomock.Any()).Return(nil)

	r := ci.NewRegistry(catalogOf(map[string]core.ContinuousIntegration{"broken": broken, "healthy": healthy}), testDeps())
	backends, err := r.Load(context.Background(), []string{"broken", "healthy"})
	require.Error(t, err)
	assert.ErrorIs(t, err, initErr)
	assert.Contains(t, err.Error(), "broken")
	require.Len(t, backends, 1)
	assert.Same(t, healthy, backends[0])
}

func TestRegistry_DefaultCatalogResolvesEveryKey(t *testing.T) {
	r := ci.NewRegistry(ci.DefaultCatalog(), testDeps())
	for _, key := range []string{ci.KeyLog, ci.KeyWebhook, ci.KeyGitHubActions, ci.KeyGitHubStatus, ci.KeyCDEvents} {
		backend, ok := r.Resolve(key)
		assert.True(t, ok, key)
		assert.NotNil(t, backend, key)
	}
	_, ok := r.Resolve("bamboo")
	assert.False(t, ok)
}

func TestRegistry_BackendsKnowTheirKey(t *testing.T) {
	r := ci.NewRegistry(ci.DefaultCatalog(), testDeps())
	for key := range ci.DefaultCatalog() {
		backend, ok := r.Resolve(key)
		require.True(t, ok, key)
		keyed, ok := backend.(interface{ Key() string })
		require.True(t, ok, key)
		assert.Equal(t, key, keyed.Key())
	}
}

func TestRegistry_BackendsWithoutConfigurationFailInit(t *testing.T) {
	r := ci.NewRegistry(ci.DefaultCatalog(), testDeps())
	backends, err := r.Load(context.Background(), []string{ci.KeyLog, ci.KeyWebhook, ci.KeyCDEvents, ci.KeyGitHubActions, ci.KeyGitHubStatus})
	require.Error(t, err)
	require.Len(t, backends, 1, "only the log backend needs no configuration")

	var merr interface{ WrappedErrors() []error }
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.WrappedErrors(), 4)
}

func TestLogBackend(t *testing.T) {
	r := ci.NewRegistry(ci.DefaultCatalog(), testDeps())
	backends, err := r.Load(context.Background(), []string{ci.KeyLog})
	require.NoError(t, err)

	ev := newPREvent(t)
	assert.NoError(t, backends[0].TriggerBuild(context.Background(), ev))
	assert.NoError(t, backends[0].TriggerFailedBuild(context.Background(), ev))
}

func newPREvent(t *testing.T) *core.Event {
	t.Helper()
	ev, err := core.NewEvent("issue_comment", "delivery-1", []byte(`{
		"action": "created",
		"issue": {"number": 42, "html_url": "https://github.com/acme/widgets/pull/42", "pull_request": {}},
		"comment": {"body": "/retest", "user": {"login": "alice"}},
		"repository": {"full_name": "acme/widgets"}
	}`))
	require.NoError(t, err)
	return ev
}
