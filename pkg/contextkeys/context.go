package contextkeys

// Кастомный тип ключа, чтобы не пересекаться с другими пакетами
type contextKey string

// DBContextKey - ключ, по которому DBMiddleware кладет *gorm.DB в context
const DBContextKey = contextKey("db")
