// Package notify sends workflow email notifications. Notification is
// fire-and-forget with respect to workflow state: failures are logged and
// never roll back or block a transition.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Email template identifiers understood by the mail endpoint
const (
	TemplateApprovalRequest  = "approval_request"
	TemplateApprovalDecision = "approval_decision"
	TemplateWorkAssignment   = "work_assignment"
	TemplateWorkCompletion   = "work_completion"
)

// EmailNotification is one outbound templated message
type EmailNotification struct {
	To       string                 `json:"to"`
	Subject  string                 `json:"subject"`
	Template string                 `json:"template"`
	Data     map[string]interface{} `json:"data"`
}

// Notifier delivers workflow notifications
type Notifier interface {
	Send(ctx context.Context, n EmailNotification) error
}

type httpNotifier struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewHTTPNotifier returns a Notifier posting to the mail endpoint
func NewHTTPNotifier(endpoint, token string) Notifier {
	return &httpNotifier{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (n *httpNotifier) Send(ctx context.Context, notification EmailNotification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

type nopNotifier struct{}

// NewNopNotifier returns a Notifier that silently drops everything.
// Used in demo mode and tests.
func NewNopNotifier() Notifier {
	return nopNotifier{}
}

func (nopNotifier) Send(ctx context.Context, n EmailNotification) error {
	return nil
}

// SendAsync delivers a notification on its own goroutine with a bounded
// timeout, logging failures instead of returning them.
func SendAsync(notifier Notifier, notification EmailNotification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := notifier.Send(ctx, notification); err != nil {
			log.Printf("notification to %s (%s) failed: %v", notification.To, notification.Template, err)
		}
	}()
}
