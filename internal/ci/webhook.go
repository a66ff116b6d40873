package ci

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/sevigo/pr-gatekeeper/internal/config"
	"github.com/sevigo/pr-gatekeeper/internal/core"
)

// Headers set on every webhook notification.
const (
	HeaderEvent     = "X-Gatekeeper-Event"
	HeaderDelivery  = "X-Gatekeeper-Delivery"
	HeaderSignature = "X-Gatekeeper-Signature-256"
)

var errWebhookURLRequired = errors.New("CI_WEBHOOK_URL is required")

// webhookCI POSTs a signed JSON notification to a configured endpoint.
type webhookCI struct {
	cfg        config.WebhookCIConfig
	httpClient *http.Client
	deps       Deps
	ready      bool
}

func newWebhookCI(deps Deps) core.ContinuousIntegration {
	return &webhookCI{deps: deps}
}

func (c *webhookCI) Key() string { return KeyWebhook }

func (c *webhookCI) Init(context.Context) error {
	if c.ready {
		return nil
	}
	cfg := c.deps.Config.CI.Webhook
	if strings.TrimSpace(cfg.URL) == "" {
		return errWebhookURLRequired
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return fmt.Errorf("invalid CI_WEBHOOK_URL: %w", err)
	}

	c.cfg = cfg
	c.httpClient = c.deps.HTTPClient
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	c.ready = true
	return nil
}

func (c *webhookCI) TriggerBuild(ctx context.Context, event *core.Event) error {
	return c.send(ctx, core.BuildRequested, event)
}

func (c *webhookCI) TriggerFailedBuild(ctx context.Context, event *core.Event) error {
	return c.send(ctx, core.BuildFailed, event)
}

func (c *webhookCI) send(ctx context.Context, kind core.BuildKind, event *core.Event) error {
	body, err := json.Marshal(newNotification(kind, event, true))
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	deliveryID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEvent, string(kind))
	req.Header.Set(HeaderDelivery, deliveryID)
	if c.cfg.Secret != "" {
		req.Header.Set(HeaderSignature, "sha256="+sign(body, c.cfg.Secret))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("webhook rejected: status=%s body=%s", resp.Status, strings.TrimSpace(string(payload)))
	}
	c.deps.Logger.Info("CI webhook delivered", "kind", kind, "delivery", deliveryID, "status", resp.StatusCode)
	return nil
}

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
