package services

import (
	"portfolio_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	ContentService ContentService
	ContactService ContactService
	Mailer         email.Provider
}
