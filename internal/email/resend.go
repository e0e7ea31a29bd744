package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// Client envia e-mails pela API REST do Resend.
type Client struct {
	apiKey string
	from   string
	http   *http.Client
}

func NewClient(apiKey, fromEmail string) *Client {
	return &Client{
		apiKey: apiKey,
		from:   fromEmail,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type apiError struct {
	Message string `json:"message"`
}

// SendInvoice renderiza o HTML e envia; devolve o id da mensagem.
func (c *Client) SendInvoice(ctx context.Context, msg InvoiceMessage) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("email service is not configured")
	}

	var html bytes.Buffer
	if err := invoiceTmpl.Execute(&html, msg); err != nil {
		return "", fmt.Errorf("render invoice email: %w", err)
	}

	payload := sendRequest{
		From:    fmt.Sprintf("%s <%s>", msg.ClinicName, c.from),
		To:      []string{msg.To},
		Subject: fmt.Sprintf("Invoice %s — %s", msg.Reference, msg.Total),
		HTML:    html.String(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message != "" {
			return "", fmt.Errorf("resend: %s", apiErr.Message)
		}
		return "", fmt.Errorf("resend: unexpected status %d", resp.StatusCode)
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	return out.ID, nil
}
