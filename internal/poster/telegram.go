package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prolixy/prolixy/internal/models"
)

const defaultTelegramBaseURL = "https://api.telegram.org"

// TelegramChannel posts articles to a Telegram channel through the Bot API.
type TelegramChannel struct {
	botToken  string
	channelID string
	baseURL   string
	client    *http.Client
}

func NewTelegramChannel(botToken, channelID string) *TelegramChannel {
	return &TelegramChannel{
		botToken:  botToken,
		channelID: channelID,
		baseURL:   defaultTelegramBaseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

func (t *TelegramChannel) Publish(ctx context.Context, article *models.Article) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID: t.channelID,
		Text:   formatMessage(article),
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("telegram: invalid response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !result.OK {
		return fmt.Errorf("telegram: sendMessage failed (%d): %s", resp.StatusCode, result.Description)
	}

	return nil
}

func formatMessage(article *models.Article) string {
	if article.Summary != nil && *article.Summary != "" {
		return fmt.Sprintf("%s\n\n%s\n\n%s", article.Title, *article.Summary, article.SourceURL)
	}
	return fmt.Sprintf("%s\n\n%s", article.Title, article.SourceURL)
}
