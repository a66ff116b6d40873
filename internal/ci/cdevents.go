package ci

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	cdeventsapi "github.com/cdevents/sdk-go/pkg/api"
	cdeventsv05 "github.com/cdevents/sdk-go/pkg/api/v05"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"

	"github.com/sevigo/pr-gatekeeper/internal/core"
)

const outcomeFailure = "failure"

// cdEventsCI announces build requests as CDEvents pipeline runs, delivered as
// CloudEvents over HTTP.
type cdEventsCI struct {
	deps   Deps
	source string
	client cloudevents.Client
}

func newCDEventsCI(deps Deps) core.ContinuousIntegration {
	return &cdEventsCI{deps: deps}
}

func (c *cdEventsCI) Key() string { return KeyCDEvents }

func (c *cdEventsCI) Init(context.Context) error {
	if c.client != nil {
		return nil
	}
	cfg := c.deps.Config.CI.CDEvents
	if strings.TrimSpace(cfg.SinkURL) == "" {
		return errors.New("CI_CDEVENTS_SINK is required")
	}
	if _, err := url.ParseRequestURI(cfg.SinkURL); err != nil {
		return fmt.Errorf("invalid CI_CDEVENTS_SINK: %w", err)
	}

	opts := []cehttp.Option{cloudevents.WithTarget(cfg.SinkURL)}
	if c.deps.HTTPClient != nil {
		opts = append(opts, cehttp.WithClient(*c.deps.HTTPClient))
	}
	client, err := cloudevents.NewClientHTTP(opts...)
	if err != nil {
		return fmt.Errorf("create cloudevents client: %w", err)
	}
	c.source = cfg.Source
	c.client = client
	return nil
}

func (c *cdEventsCI) TriggerBuild(ctx context.Context, event *core.Event) error {
	s := event.Subject()
	e, err := cdeventsv05.NewPipelineRunQueuedEvent()
	if err != nil {
		return fmt.Errorf("create pipelinerun.queued event: %w", err)
	}
	e.SetSource(c.source)
	e.SetSubjectId(subjectID(s))
	e.SetSubjectPipelineName(s.Repository)
	e.SetSubjectUri(s.URL)
	return c.send(ctx, e)
}

func (c *cdEventsCI) TriggerFailedBuild(ctx context.Context, event *core.Event) error {
	s := event.Subject()
	e, err := cdeventsv05.NewPipelineRunFinishedEvent()
	if err != nil {
		return fmt.Errorf("create pipelinerun.finished event: %w", err)
	}
	e.SetSource(c.source)
	e.SetSubjectId(subjectID(s))
	e.SetSubjectPipelineName(s.Repository)
	e.SetSubjectUri(s.URL)
	e.SetSubjectOutcome(outcomeFailure)
	return c.send(ctx, e)
}

func (c *cdEventsCI) send(ctx context.Context, e cdeventsapi.CDEventReader) error {
	ce, err := cdeventsapi.AsCloudEvent(e)
	if err != nil {
		return fmt.Errorf("convert %s to cloudevent: %w", e.GetType(), err)
	}
	if result := c.client.Send(ctx, *ce); !cloudevents.IsACK(result) {
		return fmt.Errorf("send %s: %w", e.GetType(), result)
	}
	c.deps.Logger.Info("cdevent sent", "type", e.GetType().String(), "subject", e.GetSubjectId())
	return nil
}

func subjectID(s core.Subject) string {
	return fmt.Sprintf("%s/pull/%d", s.Repository, s.Number)
}
