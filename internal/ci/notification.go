package ci

import (
	"encoding/json"

	"github.com/sevigo/pr-gatekeeper/internal/core"
)

// Notification is the JSON document the webhook and GitHub Actions backends
// send for a build request.
type Notification struct {
	Kind       core.BuildKind  `json:"kind"`
	Repository string          `json:"repository"`
	Number     int             `json:"number"`
	HeadSHA    string          `json:"head_sha,omitempty"`
	URL        string          `json:"url,omitempty"`
	DeliveryID string          `json:"delivery_id,omitempty"`
	Event      json.RawMessage `json:"event,omitempty"`
}

func newNotification(kind core.BuildKind, event *core.Event, withEvent bool) Notification {
	s := event.Subject()
	n := Notification{
		Kind:       kind,
		Repository: s.Repository,
		Number:     s.Number,
		HeadSHA:    s.HeadSHA,
		URL:        s.URL,
		DeliveryID: event.DeliveryID,
	}
	if withEvent {
		n.Event = json.RawMessage(event.Raw())
	}
	return n
}
