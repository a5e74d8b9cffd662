// Package whatsapp is a thin client for a WhatsApp Business send-message
// API. Delivery failures are reported in the SendResult, never as errors
// that would abort the scheduling operation that triggered the send.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sender is the single outbound primitive the notification endpoints use.
type Sender interface {
	SendText(ctx context.Context, phone, message string) SendResult
}

// SendResult is the uniform outcome of a send attempt. Error carries the
// provider's opaque payload when delivery failed.
type SendResult struct {
	Success   bool        `json:"success"`
	MessageID string      `json:"message_id,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Client talks to the provider's HTTP API with a bearer token and a
// sender identifier.
type Client struct {
	apiURL   string
	token    string
	senderID string
	http     *http.Client
}

func NewClient(apiURL, token, senderID string) *Client {
	return &Client{
		apiURL:   apiURL,
		token:    token,
		senderID: senderID,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error json.RawMessage `json:"error"`
}

// SendText delivers a text message to a normalized phone number.
func (c *Client) SendText(ctx context.Context, phone, message string) SendResult {
	payload := sendRequest{From: c.senderID, To: phone, Type: "text"}
	payload.Text.Body = message

	body, err := json.Marshal(payload)
	if err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var upstream interface{}
		if err := json.Unmarshal(raw, &upstream); err != nil {
			upstream = string(raw)
		}
		return SendResult{
			Success: false,
			Error:   fmt.Sprintf("provider returned %d: %v", resp.StatusCode, upstream),
		}
	}

	var parsed sendResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}

	result := SendResult{Success: true}
	if len(parsed.Messages) > 0 {
		result.MessageID = parsed.Messages[0].ID
	}
	return result
}
