package email

import (
	"context"
	"fmt"
)

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send delivers one message or returns when ctx is done.
	Send(ctx context.Context, email *Email) error

	// Validate проверяет конфигурацию провайдера
	Validate() error

	// Close закрывает соединение с провайдером
	Close() error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	// Render рендерит шаблон с данными
	Render(templateName string, data TemplateData) (string, error)

	// RenderMessage рендерит <name>_subject и <name>_body
	RenderMessage(name string, data TemplateData) (subject, body string, err error)

	// AddTemplate добавляет шаблон в рендерер
	AddTemplate(name string, template string) error

	// LoadTemplates загружает шаблоны из директории
	LoadTemplates(dirPath string) error
}

// NewProvider builds the provider for backend.
func NewProvider(backend string, cfg *SMTPConfig) (Provider, error) {
	var p Provider
	switch backend {
	case BackendSMTP:
		p = NewSMTPProvider(cfg)
	case BackendConsole:
		p = NewConsoleProvider(cfg.FromEmail)
	default:
		return nil, fmt.Errorf("unsupported email backend: %s", backend)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
