package http

const (
	KeyHeaderContentType     = "Content-Type"
	KeyHeaderRequestID       = "X-Request-Id"
	KeyHeaderAuthorization   = "Authorization"
	ValueHeaderJSON          = "application/json"
	ValueAuthorizationBearer = "bearer "
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)
