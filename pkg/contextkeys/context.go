package contextkeys

// contextKey is unexported so keys from other packages cannot collide.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB
// (pool or transaction) is stored.
const DBContextKey = contextKey("db")
