package collab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTelegramApiUrl = "https://api.telegram.org"

// TelegramClient posts messages to the bot messaging endpoint. A non-2xx
// response is an error, unlike the webhook client.
type TelegramClient struct {
	botToken   string
	apiUrl     string
	httpClient *http.Client
}

func NewTelegramClient(botToken string, apiUrl string, timeout time.Duration) *TelegramClient {
	if apiUrl == "" {
		apiUrl = defaultTelegramApiUrl
	}
	return &TelegramClient{
		botToken:   botToken,
		apiUrl:     apiUrl,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *TelegramClient) Configured() bool {
	return c != nil && c.botToken != ""
}

type telegramMessage struct {
	ChatId    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

func (c *TelegramClient) SendMessage(chatId string, text string, parseMode string) (map[string]any, error) {
	payload, err := json.Marshal(telegramMessage{ChatId: chatId, Text: text, ParseMode: parseMode})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiUrl, c.botToken)
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("telegram api returned %d: %s", resp.StatusCode, string(body))
	}
	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		result = map[string]any{"raw": string(body)}
	}
	return result, nil
}
