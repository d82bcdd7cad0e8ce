package store

import (
	"errors"
	"sync"

	"github.com/swayops/portal/misc"
)

const ReferralCodeLen = 8

type Referrals struct {
	be     Backend
	bucket string
	mux    sync.Mutex
}

// Code returns the profile's referral code, creating it on first use. The
// same profile always gets the same code back.
func (r *Referrals) Code(profile string) (string, error) {
	if profile == "" {
		return "", ErrMissingProfile
	}

	r.mux.Lock()
	defer r.mux.Unlock()

	v, err := r.be.Get(r.bucket, profile)
	switch {
	case err == nil && len(v) == ReferralCodeLen:
		return string(v), nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return "", err
	}

	code, err := misc.RandomCode(ReferralCodeLen, misc.CodeAlphabet)
	if err != nil {
		return "", err
	}
	if err := r.be.Put(r.bucket, profile, []byte(code)); err != nil {
		return "", err
	}
	return code, nil
}

func (r *Referrals) Clear(profile string) error {
	if profile == "" {
		return ErrMissingProfile
	}
	return r.be.Delete(r.bucket, profile)
}
