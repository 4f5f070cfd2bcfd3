package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/angelmondragon/plu-backend/pkg/errors"
	"github.com/angelmondragon/plu-backend/pkg/logger"
	"github.com/angelmondragon/plu-backend/pkg/types"
)

// WriteSuccess writes data as the bare JSON body.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// WriteError maps err to its public status and body. Retryable failures are logged with the
// full error dump; client errors are logged at warn level without driver fields.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.Normalize(err)
	meta := pkgerrors.MetadataFor(typed.Code())

	payload := types.ErrorBody{
		Detail: typed.PublicMessage(),
		Code:   string(typed.Code()),
	}
	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Details = details
		}
	}

	if logg != nil {
		Log(ctx, logg, err)
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

// Log records err the way WriteError does. Other surfaces reuse it so failures look the same in logs.
func Log(ctx context.Context, logg *logger.Logger, err error) {
	typed := pkgerrors.Normalize(err)
	if !pkgerrors.MetadataFor(typed.Code()).Retryable {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code": typed.Code(),
			"detail":     typed.Message(),
		})
		logg.Warn(ctx, "request.rejected")
		return
	}

	fields := pkgerrors.Dump(err).Fields()
	if dm, ok := typed.Details().(map[string]any); ok {
		if step, ok := dm["step"]; ok {
			fields["step"] = step
		}
	}
	ctx = logg.WithFields(ctx, fields)
	logg.Error(ctx, "request.error", err)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
