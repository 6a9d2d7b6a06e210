package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"subscription_notifier/internal/domain/messaging"
)

const defaultBaseURL = "https://api.twilio.com"

// A hung provider must not stall the scheduled run indefinitely.
const defaultTimeout = 30 * time.Second

// TwilioClient sends WhatsApp messages through Twilio's Messages endpoint.
// It implements messaging.Provider.
type TwilioClient struct {
	accountSID string
	authToken  string
	from       string // sender identifier, without the whatsapp: prefix
	baseURL    string
	httpClient *http.Client
}

// NewTwilioClient builds a WhatsApp provider from Twilio credentials.
func NewTwilioClient(accountSID, authToken, from string) *TwilioClient {
	return &TwilioClient{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// NewTwilioClientWithBaseURL is used by tests to point the client at a stub server.
func NewTwilioClientWithBaseURL(accountSID, authToken, from, baseURL string) *TwilioClient {
	c := NewTwilioClient(accountSID, authToken, from)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

func (c *TwilioClient) Configured() bool {
	return c.accountSID != "" && c.authToken != "" && c.from != ""
}

// Send submits one WhatsApp message and returns Twilio's message SID.
func (c *TwilioClient) Send(ctx context.Context, toPhone, body string) (string, error) {
	if !c.Configured() {
		return "", messaging.ErrNotConfigured
	}

	form := url.Values{}
	form.Set("From", "whatsapp:"+c.from)
	form.Set("To", "whatsapp:"+toPhone)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building twilio request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling twilio: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading twilio response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Message != "" {
			return "", fmt.Errorf("twilio rejected message to %s: %s (code %d)", toPhone, apiErr.Message, apiErr.Code)
		}
		return "", fmt.Errorf("twilio rejected message to %s: status %d", toPhone, resp.StatusCode)
	}

	var msg struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		return "", fmt.Errorf("decoding twilio response: %w", err)
	}
	return msg.SID, nil
}
