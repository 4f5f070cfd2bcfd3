package db

import (
	"context"

	"gorm.io/gorm"
)

type sessionKey struct{}

// WithSession stores a request-scoped GORM session on the context.
func WithSession(ctx context.Context, sess *gorm.DB) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the request-scoped session, if any.
func SessionFromContext(ctx context.Context) (*gorm.DB, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(sessionKey{}).(*gorm.DB)
	return sess, ok && sess != nil
}
