// Package handler provides HTTP handlers for the gatekeeper service.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-gatekeeper/internal/core"
	"github.com/sevigo/pr-gatekeeper/internal/jobs"
)

// GitHub event names the handler reacts to.
const (
	EventPing         = "ping"
	EventIssueComment = "issue_comment"
	EventPullRequest  = "pull_request"
)

// CommentProcessor is the part of the whitelist processor the handler needs.
type CommentProcessor interface {
	ProcessComment(ctx context.Context, event *core.Event) error
	IsUserEligibleToRunCI(ctx context.Context, username string) (bool, error)
	WhitelistingEnabled() bool
}

// WebhookHandler processes incoming webhooks from GitHub.
type WebhookHandler struct {
	secret     []byte
	processor  CommentProcessor
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates a new webhook handler. Comments are processed
// inline; pull request builds go through dispatcher.
func NewWebhookHandler(secret string, processor CommentProcessor, dispatcher core.JobDispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		secret:     []byte(secret),
		processor:  processor,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes GitHub webhook requests.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := github.ValidatePayload(r, h.secret)
	if err != nil {
		h.logger.Error("invalid webhook payload signature", "error", err)
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	eventType := github.WebHookType(r)
	deliveryID := github.DeliveryID(r)
	event, err := core.NewEvent(eventType, deliveryID, payload)
	if err != nil {
		h.logger.Error("could not parse webhook", "type", eventType, "delivery_id", deliveryID, "error", err)
		http.Error(w, "Could not parse webhook", http.StatusBadRequest)
		return
	}

	switch eventType {
	case EventPing:
		_, _ = fmt.Fprint(w, "pong")
	case EventIssueComment:
		h.handleIssueComment(r.Context(), w, event)
	case EventPullRequest:
		h.handlePullRequest(r.Context(), w, event)
	default:
		h.logger.Debug("ignoring unhandled webhook event type", "type", eventType)
		_, _ = fmt.Fprint(w, "Event type not handled")
	}
}

// handleIssueComment runs the comment through the command engine.
func (h *WebhookHandler) handleIssueComment(ctx context.Context, w http.ResponseWriter, event *core.Event) {
	err := h.processor.ProcessComment(ctx, event)
	switch {
	case errors.Is(err, core.ErrMalformedEvent):
		h.logger.Warn("rejecting malformed comment event", "delivery_id", event.DeliveryID, "error", err)
		http.Error(w, "Malformed event", http.StatusBadRequest)
	case err != nil:
		h.logger.Error("comment processing failed", "delivery_id", event.DeliveryID, "error", err)
		http.Error(w, "Comment processing failed", http.StatusInternalServerError)
	default:
		_, _ = fmt.Fprint(w, "Comment processed")
	}
}

// handlePullRequest queues a build for new or updated pull requests whose
// author may run CI. With whitelisting disabled every pull request builds.
func (h *WebhookHandler) handlePullRequest(ctx context.Context, w http.ResponseWriter, event *core.Event) {
	parsed, err := github.ParseWebHook(EventPullRequest, event.Raw())
	if err != nil {
		h.logger.Error("could not parse pull request event", "delivery_id", event.DeliveryID, "error", err)
		http.Error(w, "Could not parse webhook", http.StatusBadRequest)
		return
	}
	pr, ok := parsed.(*github.PullRequestEvent)
	if !ok {
		http.Error(w, "Could not parse webhook", http.StatusBadRequest)
		return
	}

	switch pr.GetAction() {
	case "opened", "reopened", "synchronize":
	default:
		h.logger.Debug("ignoring pull request action", "action", pr.GetAction())
		_, _ = fmt.Fprint(w, "Pull request action ignored")
		return
	}

	repo := pr.GetRepo().GetFullName()
	author := pr.GetPullRequest().GetUser().GetLogin()
	if h.processor.WhitelistingEnabled() {
		if author == "" {
			http.Error(w, "Malformed event", http.StatusBadRequest)
			return
		}
		eligible, err := h.processor.IsUserEligibleToRunCI(ctx, author)
		if err != nil {
			h.logger.Error("failed to check authorization lists", "author", author, "error", err)
			http.Error(w, "Authorization check failed", http.StatusInternalServerError)
			return
		}
		if !eligible {
			h.logger.Info("pull request author is not whitelisted, build withheld", "repo", repo, "pr", pr.GetNumber(), "author", author)
			_, _ = fmt.Fprint(w, "Author not whitelisted")
			return
		}
	}

	job := &core.BuildJob{Kind: core.BuildRequested, Event: event}
	if err := h.dispatcher.Dispatch(ctx, job); err != nil {
		h.logger.Error("failed to dispatch build job", "error", err, "repo", repo)
		status := http.StatusInternalServerError
		if errors.Is(err, jobs.ErrQueueFull) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, "Failed to queue build", status)
		return
	}

	h.logger.Info("build job dispatched successfully", "repo", repo, "pr", pr.GetNumber(), "author", author)
	w.WriteHeader(http.StatusAccepted)
	_, _ = fmt.Fprint(w, "Build job accepted")
}
