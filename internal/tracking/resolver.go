// Package tracking holds the public side of tracking links: the redirect a
// visitor goes through and the form an influencer submits posts with.
package tracking

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/swayops/portal/internal/api"
)

type State string

const (
	StateRedirect      State = "redirect"
	StateMisconfigured State = "misconfigured"
	StateInvalid       State = "invalid"
)

var (
	ErrInvalidLink   = errors.New("This tracking link is invalid")
	ErrMisconfigured = errors.New("This tracking link has no destination configured")
)

type Outcome struct {
	State   State  `json:"state"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// Linker is the part of the API the resolver needs, *api.Client satisfies it.
type Linker interface {
	RecordClick(ctx context.Context, code string, v api.Visit) (*api.ClickResult, error)
	TrackingLinkByCode(ctx context.Context, code string) (*api.TrackingLink, error)
}

type Resolver struct {
	l Linker
}

func NewResolver(l Linker) *Resolver {
	return &Resolver{l: l}
}

// Resolve records the click and works out where the visitor goes. Click
// recording and the destination lookup can live on different endpoints, so a
// failed record falls back to the read-only lookup before giving up. Every
// path ends in a terminal state.
func (r *Resolver) Resolve(ctx context.Context, code string, v api.Visit) Outcome {
	code = strings.TrimSpace(code)
	if code == "" {
		return invalid()
	}

	res, err := r.l.RecordClick(ctx, code, v)
	if err == nil {
		return destination(res.DestinationURL)
	}
	log.Println("Click record failed, falling back to lookup", code, err)

	link, err := r.l.TrackingLinkByCode(ctx, code)
	if err != nil {
		if !api.IsNotFound(err) {
			log.Println("Tracking link lookup failed", code, err)
		}
		return invalid()
	}
	return destination(link.DestinationURL)
}

func destination(u string) Outcome {
	if u == "" {
		return Outcome{State: StateMisconfigured, Message: ErrMisconfigured.Error()}
	}
	if err := api.ValidateURL("destinationUrl", u); err != nil {
		log.Println("Refusing to redirect to", u, err)
		return Outcome{State: StateMisconfigured, Message: ErrMisconfigured.Error()}
	}
	return Outcome{State: StateRedirect, URL: u}
}

func invalid() Outcome {
	return Outcome{State: StateInvalid, Message: ErrInvalidLink.Error()}
}
