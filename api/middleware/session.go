package middleware

import (
	"context"
	"net/http"

	"github.com/angelmondragon/plu-backend/api/responses"
	pkgerrors "github.com/angelmondragon/plu-backend/pkg/errors"
	"github.com/angelmondragon/plu-backend/pkg/logger"
)

// SessionProvider pins a database session for the duration of fn.
type SessionProvider interface {
	Session(ctx context.Context, fn func(ctx context.Context) error) error
}

// Session runs the rest of the chain inside one pinned database session. The session is
// released when the handler returns, panics, or the request is cancelled.
func Session(provider SessionProvider, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if provider == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			err := provider.Session(r.Context(), func(ctx context.Context) error {
				next.ServeHTTP(rec, r.WithContext(ctx))
				return nil
			})
			if err != nil && rec.status == 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquiring database session"))
			}
		})
	}
}
