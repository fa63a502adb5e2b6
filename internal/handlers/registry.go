package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	ContentHandler *ContentHandler
	ContactHandler *ContactHandler
	HealthHandler  *HealthHandler
	// MediaHandler is nil unless assets live in local storage.
	MediaHandler *MediaHandler
}
