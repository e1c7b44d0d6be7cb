package domain

// TokenVerifier validates a bearer token minted by the platform's auth
// service and returns the operator's user id. Issuing tokens is the auth
// service's job; this core only verifies.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
