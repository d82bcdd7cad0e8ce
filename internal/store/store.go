// Package store keeps the small amount of per-profile state the portal owns:
// referral codes, the influencer shortlist and the brand's API credentials.
package store

import (
	"encoding/json"
	"errors"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrMissingProfile = errors.New("missing profile id")
)

// Backend is the storage contract. Get returns ErrNotFound for missing keys,
// Delete on a missing key is not an error.
type Backend interface {
	Get(bucket, key string) ([]byte, error)
	Put(bucket, key string, val []byte) error
	Delete(bucket, key string) error
}

type Buckets struct {
	Referral    string
	Shortlist   string
	Credentials string
}

var DefaultBuckets = Buckets{
	Referral:    "referral",
	Shortlist:   "shortlist",
	Credentials: "credentials",
}

func (b Buckets) All() []string {
	return []string{b.Referral, b.Shortlist, b.Credentials}
}

// Store groups the typed views over a single backend.
type Store struct {
	Referrals *Referrals
	Shortlist *Shortlist
	creds     *credentialStore
}

func New(be Backend, buckets Buckets) *Store {
	return &Store{
		Referrals: &Referrals{be: be, bucket: buckets.Referral},
		Shortlist: &Shortlist{be: be, bucket: buckets.Shortlist},
		creds:     &credentialStore{be: be, bucket: buckets.Credentials},
	}
}

// Credentials returns the brand credentials saved for profile.
func (s *Store) Credentials(profile string) *Credentials {
	return &Credentials{cs: s.creds, profile: profile}
}

func getJSON(be Backend, bucket, key string, v interface{}) error {
	b, err := be.Get(bucket, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func putJSON(be Backend, bucket, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return be.Put(bucket, key, b)
}
