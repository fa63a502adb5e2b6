package email

import "time"

const (
	BackendSMTP    = "smtp"
	BackendConsole = "console"
)

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseSSL    bool // implicit TLS (port 465); otherwise STARTTLS when offered
	Timeout   time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:      "localhost",
		Port:      587,
		FromEmail: "webmaster@localhost",
		Timeout:   10 * time.Second,
	}
}
