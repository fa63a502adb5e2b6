package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - это ключ, по которому мы будем хранить *gorm.DB в context
const DBContextKey = contextKey("db")

// BaseURLContextKey holds the scheme://host the current request was addressed to.
const BaseURLContextKey = contextKey("base_url")
