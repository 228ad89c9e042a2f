package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wizariya/store-api/pkg/config"
)

// Notifier delivers a human-readable message to the storefront administrator.
// Delivery is best effort; callers decide whether a failure is worth logging.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Telegram posts messages to a fixed chat through the Telegram Bot API.
type Telegram struct {
	baseURL string
	chatID  string
	client  *http.Client
}

// NewTelegram constructs a Telegram notifier from configuration.
func NewTelegram(cfg config.NotifyConfig) *Telegram {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Telegram{
		baseURL: "https://api.telegram.org/bot" + cfg.BotToken,
		chatID:  cfg.ChatID,
		client:  &http.Client{Timeout: timeout},
	}
}

// Send delivers the message in a single attempt. No retries.
func (t *Telegram) Send(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": t.chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/sendMessage", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram responded with status %d", resp.StatusCode)
	}
	return nil
}
