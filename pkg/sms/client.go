package sms

import (
	"context"
	"fmt"

	"github.com/arsmn/go-smsir/smsir"

	"github.com/Alijeyrad/hms_backend/config"
)

// Sender is satisfied by *Client.
type Sender interface {
	SendTemplate(ctx context.Context, phone, templateID string, params map[string]string) error
	IsEnabled() bool
}

// Client sends template messages through sms.ir.
type Client struct {
	client  *smsir.Client
	enabled bool
}

// NewFromConfig returns a no-op client when SMS is disabled.
func NewFromConfig(cfg config.SMSConfig) (*Client, error) {
	if !cfg.Enabled {
		return &Client{enabled: false}, nil
	}

	if cfg.SMSIR.APIKey == "" {
		return nil, fmt.Errorf("sms.ir API key required when SMS enabled")
	}

	return &Client{
		client:  smsir.NewClient().WithAuthentication(cfg.SMSIR.APIKey, cfg.SMSIR.SecretKey),
		enabled: true,
	}, nil
}

// SendTemplate sends an sms.ir ultra-fast template message. Parameter keys
// must match the template's placeholders.
func (c *Client) SendTemplate(ctx context.Context, phone, templateID string, params map[string]string) error {
	if !c.enabled {
		return nil
	}
	if phone == "" {
		return fmt.Errorf("phone number is required")
	}
	if templateID == "" {
		return fmt.Errorf("template ID is required")
	}

	req := &smsir.UltraFastSendRequest{
		Mobile:     phone,
		TemplateID: templateID,
		Parameters: make([]smsir.UltraFastParameter, 0, len(params)),
	}
	for k, v := range params {
		req.Parameters = append(req.Parameters, smsir.UltraFastParameter{Key: k, Value: v})
	}

	if _, err := c.client.Verification.UltraFastSend(ctx, req); err != nil {
		return fmt.Errorf("sms.ir send failed: %w", err)
	}
	return nil
}

func (c *Client) IsEnabled() bool {
	return c.enabled
}
