package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName is the HTTP header carrying the request id. Incoming
// values are reused so ids stay stable across proxies; otherwise a new one
// is generated per request.
const RequestIDHeaderName = "X-Request-Id"
