package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/logger"
)

// Notifier delivers short user-facing messages such as restore failures.
type Notifier interface {
	Notify(text string) error
}

// New returns a webhook notifier when url is set, otherwise one that prints
// to stderr.
func New(url string) Notifier {
	if url == "" {
		return NewConsole(os.Stderr)
	}
	return NewWebhook(url)
}

// Console writes notifications as lines to a writer.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Notify(text string) error {
	_, err := fmt.Fprintln(c.w, text)
	return err
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// Webhook POSTs notifications as JSON to a URL.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: constants.NotifyTimeout},
	}
}

func (n *Webhook) Notify(text string) error {
	payload := WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}

	if err := n.send(context.Background(), payload); err != nil {
		logger.Warn("Notification failed", "url", n.url, "error", err)
		return err
	}
	return nil
}

func (n *Webhook) send(ctx context.Context, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}

// Recorder keeps every notification in memory.
type Recorder struct {
	Messages []string
}

func (r *Recorder) Notify(text string) error {
	r.Messages = append(r.Messages, text)
	return nil
}
