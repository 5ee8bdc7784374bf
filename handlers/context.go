package handlers

import (
	"context"

	"github.com/akinalp/sitekit/models"
)

// contextKey, context.WithValue için özel tip.
// String yerine özel tip kullanılır — farklı paketlerin aynı string key'i
// kullanıp birbirinin değerini ezmesini önler.
type contextKey string

// AdminContextKey, auth middleware'ın doğrulanmış admin'i context'e koyduğu key.
const AdminContextKey contextKey = "admin"

// AdminFromContext, auth middleware'ın eklediği admin'i döner.
func AdminFromContext(ctx context.Context) (*models.Admin, bool) {
	admin, ok := ctx.Value(AdminContextKey).(*models.Admin)
	return admin, ok && admin != nil
}

// WithAdmin, admin'i context'e ekler. Middleware ve testler kullanır.
func WithAdmin(ctx context.Context, admin *models.Admin) context.Context {
	return context.WithValue(ctx, AdminContextKey, admin)
}
