// Package notifications runs inbound cluster notifications through the
// decode, render and delivery pipeline.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"gke-notify/internal/message"
	"gke-notify/internal/shared/telemetry"
	"gke-notify/internal/slack"
)

// Poster performs a single chat delivery attempt.
type Poster interface {
	Post(ctx context.Context, webhookURL string, msg slack.Message) (string, error)
}

// Service processes decoded push requests. It holds no per-message state;
// concurrent invocations are independent.
type Service struct {
	// ProjectName, when set, replaces the numeric project ID in all rendered
	// output. Sourced from GCP_PROJECT.
	ProjectName string

	// WebhookURL enables chat delivery when non-empty.
	WebhookURL string

	Slack Poster
}

// NewService constructs a Service.
func NewService(projectName, webhookURL string, poster Poster) *Service {
	return &Service{ProjectName: projectName, WebhookURL: webhookURL, Slack: poster}
}

// Process handles one notification to completion: project-name overlay,
// rendering, the node-pool noise filter, one optional delivery attempt and a
// log line. Delivery failures are logged, never propagated; by the time
// Process runs the message has decoded successfully and the queue gets a
// positive acknowledgment regardless of what happens here.
func (s *Service) Process(ctx context.Context, push message.PushRequest) {
	msg := push.Message
	if s.ProjectName != "" {
		msg = msg.WithProjectName(s.ProjectName)
	}

	logEntry := msg.LogEntry()

	if msg.IsInvalid() {
		telemetry.Error(logEntry, map[string]any{
			"msg":          fmt.Sprintf("%+v", msg),
			"subscription": push.Subscription,
		})
		return
	}

	var slackRequest, slackResponse string

	// GKE sends UpgradeAvailableEvent messages for each node pool in a
	// cluster, causing quite the flood of messages. These are logged but
	// never posted.
	if s.WebhookURL != "" && !msg.Attributes.IsNodePoolUpgradeAvailableEvent() {
		webhookMessage := slack.NewMessage(msg)
		if raw, err := json.Marshal(webhookMessage); err == nil {
			slackRequest = string(raw)
		}

		resp, err := s.Slack.Post(ctx, s.WebhookURL, webhookMessage)
		if err != nil {
			telemetry.Error("post to webhook failed", map[string]any{
				"error":         err.Error(),
				"msg":           fmt.Sprintf("%+v", msg),
				"subscription":  push.Subscription,
				"slack_message": slackRequest,
			})
			slackResponse = err.Error()
		} else {
			slackResponse = resp
		}
	}

	if telemetry.DebugEnabled() {
		telemetry.Debug(logEntry, map[string]any{
			"msg":            fmt.Sprintf("%+v", msg),
			"subscription":   push.Subscription,
			"slack_message":  slackRequest,
			"slack_response": slackResponse,
		})
	} else {
		telemetry.Info(logEntry, nil)
	}
}
