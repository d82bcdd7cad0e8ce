package api

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credentials hold the brand's bearer token between calls.
type Credentials interface {
	Token() (string, error)
	Clear() error
}

// StaticToken is an in-process Credentials, mostly useful for tests and tools.
type StaticToken struct {
	mux sync.Mutex
	tok string
}

func NewStaticToken(tok string) *StaticToken {
	return &StaticToken{tok: tok}
}

func (s *StaticToken) Token() (string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.tok, nil
}

func (s *StaticToken) Clear() error {
	s.mux.Lock()
	s.tok = ""
	s.mux.Unlock()
	return nil
}

var parser = jwt.NewParser()

// tokenExpired reports whether tok is a JWT with an exp claim in the past.
// The signature isn't checked, that's the API's job; opaque tokens are never
// considered expired.
func tokenExpired(tok string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(tok, &claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
