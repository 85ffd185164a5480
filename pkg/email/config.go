package email

import (
	"time"

	"github.com/Alijeyrad/hms_backend/config"
)

type Config struct {
	Enabled bool
	From    string
	AppName string

	// BaseURL is the frontend origin used when building links.
	BaseURL string

	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPUseTLS         bool
	SMTPTimeoutSeconds int
}

func (c Config) SMTPTimeout() time.Duration {
	if c.SMTPTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.SMTPTimeoutSeconds) * time.Second
}

func FromCentralConfig(c *config.Config) Config {
	from := c.Email.From
	if from == "" {
		from = c.Email.SMTP.Username
	}
	return Config{
		Enabled:            c.Email.Enabled,
		From:               from,
		AppName:            c.Email.AppName,
		BaseURL:            c.Server.FrontendURL,
		SMTPHost:           c.Email.SMTP.Host,
		SMTPPort:           c.Email.SMTP.Port,
		SMTPUsername:       c.Email.SMTP.Username,
		SMTPPassword:       c.Email.SMTP.Password,
		SMTPUseTLS:         c.Email.SMTP.UseTLS,
		SMTPTimeoutSeconds: c.Email.SMTP.TimeoutSeconds,
	}
}
