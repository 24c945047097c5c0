// Package validators decodes and validates JSON request bodies.
package validators

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"reflect"

	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds request bodies; the command payloads are small.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSONBody reads the request body into dst, rejecting unknown fields,
// then runs struct-tag validation when dst points at a struct.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeEncoding, err, "invalid request body")
	}

	value := reflect.ValueOf(dst)
	for value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if stdErrors.As(err, &fieldErrs) {
			return pkgErrors.Wrap(pkgErrors.CodeValidation, err, fieldErrorMessage(fieldErrs))
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternal, err, "validating request body")
	}
	return nil
}

func fieldErrorMessage(fieldErrs validator.ValidationErrors) string {
	if len(fieldErrs) == 0 {
		return "request validation failed"
	}
	first := fieldErrs[0]
	return fmt.Sprintf("field %q failed on the %q rule", first.Field(), first.Tag())
}
