package middleware

import (
	"fmt"
	"net/http"

	"github.com/gestora-app/gestora-backend/api/responses"
	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/gestora-app/gestora-backend/pkg/logger"
)

// Recover converts handler panics into internal-error envelopes instead of
// dropping the connection.
func Recover(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := pkgErrors.New(pkgErrors.CodeInternal, fmt.Sprintf("panic: %v", rec))
					responses.Error(r.Context(), logg, w, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
