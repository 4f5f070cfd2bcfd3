package graphql

import (
	"context"
	"strings"

	"github.com/angelmondragon/plu-backend/api/responses"
	pkgerrors "github.com/angelmondragon/plu-backend/pkg/errors"
	"github.com/angelmondragon/plu-backend/pkg/logger"
)

// publicError is what a resolver hands back to the executor. Error() is the client-visible
// message and Extensions() feeds the "extensions" member of the GraphQL error.
type publicError struct {
	message string
	code    pkgerrors.Code
}

func (e *publicError) Error() string {
	return e.message
}

func (e *publicError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.code)}
}

// toPublic logs err the same way the REST surface does and strips everything a client must not see.
func toPublic(ctx context.Context, logg *logger.Logger, err error) error {
	if err == nil {
		return nil
	}
	typed := pkgerrors.Normalize(err)
	if logg != nil {
		responses.Log(ctx, logg, err)
	}
	return &publicError{message: typed.PublicMessage(), code: typed.Code()}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return strings.ToLower(string(pkgerrors.Normalize(err).Code()))
}
