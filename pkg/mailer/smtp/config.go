package smtp

import "time"

// Security selects how the connection is encrypted.
type Security string

const (
	// SecurityAuto uses implicit TLS on port 465 and STARTTLS elsewhere.
	SecurityAuto Security = "auto"
	// SecurityTLS dials straight into TLS (SMTPS).
	SecurityTLS Security = "tls"
	// SecurityStartTLS upgrades a plain connection with STARTTLS.
	SecurityStartTLS Security = "starttls"
	// SecurityNone sends in clear text. Only for local relays and tests.
	SecurityNone Security = "none"
)

// Config holds SMTP transport configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host     string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int           `env:"SMTP_PORT" envDefault:"465"`
	Username string        `env:"SMTP_USERNAME"`
	Password string        `env:"SMTP_PASSWORD"`
	Security Security      `env:"SMTP_SECURITY" envDefault:"auto"`
	Timeout  time.Duration `env:"SMTP_DIAL_TIMEOUT" envDefault:"30s"`
}

func (c Config) security() Security {
	switch c.Security {
	case SecurityTLS, SecurityStartTLS, SecurityNone:
		return c.Security
	}
	if c.Port == 465 {
		return SecurityTLS
	}
	return SecurityStartTLS
}
