package auth

import "context"

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

type Checker interface {
	// Session resolves the token to a live session,
	// or ErrNotLoggedIn when there is none
	Session(ctx context.Context, token string) (*Session, error)
}
