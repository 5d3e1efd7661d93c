package test

import "errors"

// TokenVerifierStub accepts a single fixed token.
type TokenVerifierStub struct {
	Token string
}

// Verify reports whether token equals the configured one.
func (s TokenVerifierStub) Verify(token string) error {
	if token == "" || token != s.Token {
		return errors.New("invalid token")
	}
	return nil
}
