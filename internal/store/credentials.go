package store

import (
	"errors"
	"time"
)

type credentialStore struct {
	be     Backend
	bucket string
}

type savedToken struct {
	Token   string `json:"token"`
	SavedAt int64  `json:"savedAt"`
}

// Credentials is the brand's bearer token for one profile. It satisfies
// api.Credentials.
type Credentials struct {
	cs      *credentialStore
	profile string
}

func (c *Credentials) Token() (string, error) {
	if c.profile == "" {
		return "", nil
	}
	var st savedToken
	if err := getJSON(c.cs.be, c.cs.bucket, c.profile, &st); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return st.Token, nil
}

func (c *Credentials) Set(token string) error {
	if c.profile == "" {
		return ErrMissingProfile
	}
	return putJSON(c.cs.be, c.cs.bucket, c.profile, savedToken{Token: token, SavedAt: time.Now().Unix()})
}

func (c *Credentials) Clear() error {
	if c.profile == "" {
		return nil
	}
	return c.cs.be.Delete(c.cs.bucket, c.profile)
}
