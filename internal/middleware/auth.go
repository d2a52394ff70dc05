package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/grocery/internal/auth"
	inErrors "github.com/Alturino/grocery/internal/errors"
	inHttp "github.com/Alturino/grocery/internal/http"
	"github.com/Alturino/grocery/internal/log"
)

// Auth rejects requests without a valid bearer token and attaches the parsed
// token to the request context.
func Auth(secretKey string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware Auth").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get(inHttp.KeyHeaderAuthorization)
			if len(authorization) <= len(inHttp.ValueAuthorizationBearer) ||
				!strings.EqualFold(authorization[:len(inHttp.ValueAuthorizationBearer)], inHttp.ValueAuthorizationBearer) {
				err := fmt.Errorf("failed reading authorization header with error=%w", inErrors.ErrEmptyAuth)
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, err)
				return
			}

			token := authorization[len(inHttp.ValueAuthorizationBearer):]
			jwtToken, err := auth.VerifyToken(c, token, secretKey)
			if err != nil {
				err = fmt.Errorf("failed verifying token with error=%w", err)
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, err)
				return
			}

			c = auth.AttachJwtToken(c, jwtToken)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
