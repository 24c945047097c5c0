// Package responses converts service results and errors into the response
// envelope every endpoint shares.
package responses

import (
	"context"
	"encoding/json"
	"net/http"

	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/gestora-app/gestora-backend/pkg/types"
)

func writeJSON(w http.ResponseWriter, status int, envelope types.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope)
}

// Data writes a 200 envelope carrying the payload.
func Data(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, types.Envelope{Data: data})
}

// Created writes a 201 envelope carrying the payload.
func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, types.Envelope{Data: data})
}

// Message writes a 200 envelope carrying only a confirmation message.
func Message(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, types.Envelope{Message: &message})
}

// Error logs the failure with its context, then writes the envelope mapped
// from the error code. Untyped errors are treated as internal.
func Error(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := pkgErrors.As(err)
	if typed == nil {
		typed = pkgErrors.Wrap(pkgErrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgErrors.MetadataFor(typed.Code())
	if meta.HTTPStatus >= http.StatusInternalServerError {
		logg.Error(ctx, typed.Message(), typed.Unwrap())
	} else {
		logg.Warn(logg.WithField(ctx, "error", typed.Error()), typed.Message())
	}

	envelope := types.Envelope{}
	msg := typed.Error()
	envelope.Error = &msg
	if meta.DetailsAllowed && typed.Details() != nil {
		envelope.Data = typed.Details()
	}
	writeJSON(w, meta.HTTPStatus, envelope)
}
