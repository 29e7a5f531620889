package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/slack-go/slack"

	"season-service/internal/logging"
)

// FormatMessage renders a human-readable alert line for an event.
func FormatMessage(ev Event) string {
	sport := strings.ToUpper(ev.Sport)
	switch ev.Kind {
	case KindSeasonChange:
		return fmt.Sprintf("%s SEASON TRANSITION: %s -> %s", sport, ev.From, ev.To)
	case KindPhaseChange:
		return fmt.Sprintf("%s PHASE CHANGE: %s -> %s (Season %s)", sport, ev.From, ev.To, ev.Season)
	case KindWeekChange:
		return fmt.Sprintf("%s WEEK %s -> %s (%s, Season %s)", sport, ev.From, ev.To, ev.Phase, ev.Season)
	default:
		return fmt.Sprintf("%s transition: %s -> %s", sport, ev.From, ev.To)
	}
}

// LogSink writes alerts to the structured log.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Name() string { return "log" }

func (s LogSink) Notify(_ context.Context, ev Event) error {
	logging.Info(s.Logger, FormatMessage(ev),
		logging.FieldSport, ev.Sport, "kind", string(ev.Kind))
	return nil
}

// WebhookSink posts the event JSON to an arbitrary webhook endpoint with
// retries and a bounded timeout so a slow receiver cannot stall the monitor
// for long.
type WebhookSink struct {
	url    string
	client *retryablehttp.Client
}

// NewWebhookSink builds a webhook sink for the given URL.
func NewWebhookSink(url string) *WebhookSink {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 5 * time.Second
	client.Logger = nil
	return &WebhookSink{url: url, client: client}
}

func (s *WebhookSink) Name() string { return "webhook" }

type webhookPayload struct {
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	Transition Event     `json:"transition"`
}

func (s *WebhookSink) Notify(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(webhookPayload{
		Text:       FormatMessage(ev),
		Timestamp:  ev.Timestamp,
		Transition: ev,
	})
	if err != nil {
		return err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// SlackSink posts alerts to a Slack incoming webhook.
type SlackSink struct {
	webhookURL string
}

// NewSlackSink builds a Slack sink for the given incoming-webhook URL.
func NewSlackSink(webhookURL string) *SlackSink {
	return &SlackSink{webhookURL: webhookURL}
}

func (s *SlackSink) Name() string { return "slack" }

func (s *SlackSink) Notify(ctx context.Context, ev Event) error {
	msg := &slack.WebhookMessage{Text: FormatMessage(ev)}
	return slack.PostWebhookContext(ctx, s.webhookURL, msg)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc struct {
	SinkName string
	Fn       func(ctx context.Context, ev Event) error
}

func (s SinkFunc) Name() string {
	if s.SinkName == "" {
		return "func"
	}
	return s.SinkName
}

func (s SinkFunc) Notify(ctx context.Context, ev Event) error {
	return s.Fn(ctx, ev)
}
