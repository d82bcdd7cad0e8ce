package store

import (
	"errors"
	"sync"

	"github.com/swayops/portal/internal/common"
)

// Shortlist is an insertion ordered set of influencer ids per profile.
type Shortlist struct {
	be     Backend
	bucket string
	mux    sync.Mutex
}

func (s *Shortlist) List(profile string) ([]string, error) {
	if profile == "" {
		return nil, ErrMissingProfile
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.list(profile)
}

func (s *Shortlist) list(profile string) ([]string, error) {
	var ids []string
	if err := getJSON(s.be, s.bucket, profile, &ids); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Add appends id unless it's already there, added reports which happened.
func (s *Shortlist) Add(profile, id string) (added bool, err error) {
	if profile == "" {
		return false, ErrMissingProfile
	}
	s.mux.Lock()
	defer s.mux.Unlock()

	ids, err := s.list(profile)
	if err != nil {
		return false, err
	}
	if common.IsInList(ids, id) {
		return false, nil
	}
	return true, putJSON(s.be, s.bucket, profile, append(ids, id))
}

func (s *Shortlist) Remove(profile, id string) (removed bool, err error) {
	if profile == "" {
		return false, ErrMissingProfile
	}
	s.mux.Lock()
	defer s.mux.Unlock()

	ids, err := s.list(profile)
	if err != nil {
		return false, err
	}
	if ids, removed = common.StringsRemove(ids, id); !removed {
		return false, nil
	}
	return true, putJSON(s.be, s.bucket, profile, ids)
}

func (s *Shortlist) Contains(profile, id string) (bool, error) {
	ids, err := s.List(profile)
	if err != nil {
		return false, err
	}
	return common.IsInList(ids, id), nil
}

func (s *Shortlist) Clear(profile string) error {
	if profile == "" {
		return ErrMissingProfile
	}
	return s.be.Delete(s.bucket, profile)
}
