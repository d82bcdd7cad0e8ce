package tracking

import (
	"errors"
	"regexp"
	"strings"
)

var ErrNoCode = errors.New("No tracking code in link")

var tokenRe = regexp.MustCompile(`^[A-Z0-9]{6,16}$`)

// Params carries every place a tracking code has been seen in a submission
// link. Code is the canonical one.
type Params struct {
	Code string
	Slug string
	Path string
}

// CodeFromParams picks the tracking code out of a submission link. In order:
// the code parameter (also when it comes with a slug, the slug is only
// decoration), then the last path segment that looks like a code.
func CodeFromParams(p Params) (string, error) {
	if code := strings.TrimSpace(p.Code); code != "" {
		return code, nil
	}

	segs := strings.Split(strings.Trim(p.Path, "/"), "/")
	if p.Slug != "" {
		segs = append(segs, p.Slug)
	}
	for i := len(segs) - 1; i >= 0; i-- {
		if tokenRe.MatchString(segs[i]) {
			return segs[i], nil
		}
	}
	return "", ErrNoCode
}
