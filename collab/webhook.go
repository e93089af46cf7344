package collab

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

type WebhookResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// WebhookClient issues the outbound call of a WEBHOOK action. The response
// is captured, not validated: only a transport failure is an error.
type WebhookClient struct {
	httpClient *http.Client
}

func NewWebhookClient(timeout time.Duration) *WebhookClient {
	return &WebhookClient{httpClient: &http.Client{Timeout: timeout}}
}

func (c *WebhookClient) Call(url string, method string, headers map[string]string, body any) (*WebhookResponse, error) {
	if method == "" {
		method = http.MethodPost
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(strings.ToUpper(method), url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &WebhookResponse{Status: resp.StatusCode, Body: string(respBody)}, nil
}
