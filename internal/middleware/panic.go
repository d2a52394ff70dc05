package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	inHttp "github.com/Alturino/grocery/internal/http"
	"github.com/Alturino/grocery/internal/log"
	"github.com/Alturino/grocery/internal/otel"
)

func RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			c, span := otel.Tracer.Start(r.Context(), "middleware RecoverPanic")
			defer span.End()

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", rec)
			}
			logger := zerolog.Ctx(c).With().Str(log.KeyTag, "middleware RecoverPanic").Logger()
			logger.Error().Stack().Err(err).Msg("recovered from panic")
			otel.RecordError(err, span)
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     inHttp.StatusFailed,
				"statusCode": http.StatusInternalServerError,
				"message":    "Internal Server Error",
			})
		}()

		next.ServeHTTP(w, r)
	})
}
