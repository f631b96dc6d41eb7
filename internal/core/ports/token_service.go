package ports

// TokenService issues and verifies the signed bearer tokens that carry a
// user id. There is no revocation list; rotating the signing secret is the
// only way to invalidate outstanding tokens before natural expiry.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the embedded user id. Expired tokens fail with
	// domain.ErrTokenExpired, anything else malformed with
	// domain.ErrTokenInvalid.
	Verify(token string) (string, error)
}
