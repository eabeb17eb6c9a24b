package models

// User is the authenticated admin identity for a request. It is built from
// the session by the auth middleware and passed through the gin context;
// handlers never read the session themselves.
type User struct {
	Username string
}
