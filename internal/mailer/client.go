package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"festreg/internal/registration"
)

// Client sends transactional email through the Resend REST API.
type Client struct {
	APIKey  string
	From    string
	BaseURL string
	HTTP    *http.Client
}

// New creates a Resend client.
func New(apiKey, from string) *Client {
	return &Client{
		APIKey:  apiKey,
		From:    from,
		BaseURL: "https://api.resend.com",
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Attachment is a base64-encoded file body, per the Resend API.
type Attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// SendResult holds the response from Resend after a successful send.
type SendResult struct {
	ID string `json:"id"`
}

type sendRequest struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// SendApproval sends the approval email with the badge PDF attached.
func (c *Client) SendApproval(ctx context.Context, reg registration.Registrant, badgePDF []byte) (*SendResult, error) {
	var attachments []Attachment
	if len(badgePDF) > 0 {
		attachments = append(attachments, Attachment{
			Filename: reg.BadgeFilename(),
			Content:  base64.StdEncoding.EncodeToString(badgePDF),
		})
	}
	return c.send(ctx, reg.Email, approvalSubject, approvalHTML(reg), attachments)
}

// SendRejection sends the rejection email. No attachment.
func (c *Client) SendRejection(ctx context.Context, reg registration.Registrant) (*SendResult, error) {
	return c.send(ctx, reg.Email, rejectionSubject, rejectionHTML(reg), nil)
}

func (c *Client) send(ctx context.Context, to, subject, html string, attachments []Attachment) (*SendResult, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("resend: api key not configured")
	}

	body, err := json.Marshal(sendRequest{
		From:        c.From,
		To:          []string{to},
		Subject:     subject,
		HTML:        html,
		Attachments: attachments,
	})
	if err != nil {
		return nil, fmt.Errorf("resend: encode request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("resend: create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resend: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("resend: send failed (%d): %s", resp.StatusCode, string(respBody))
	}

	var result SendResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("resend: decode response failed: %w", err)
	}
	return &result, nil
}
