package tracking

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/swayops/portal/internal/api"
)

var (
	Platforms = []string{"instagram", "tiktok", "youtube", "twitter", "facebook", "other"}
	PostTypes = []string{"post", "story", "reel", "video", "short", "tweet", "other"}
)

const DefaultPostType = "post"

// Submitter is the part of the API the form needs, *api.Client satisfies it.
type Submitter interface {
	TrackingLinkByCode(ctx context.Context, code string) (*api.TrackingLink, error)
	SubmitPost(ctx context.Context, code string, in api.PostInput) (*api.SubmittedPost, error)
}

// Form is the post submission form behind a tracking code. Posts can only be
// appended, reviewing them is up to the brand.
type Form struct {
	mux  sync.Mutex
	s    Submitter
	code string
	link *api.TrackingLink
}

type FormView struct {
	Code       string              `json:"code"`
	Campaign   api.Ref             `json:"campaign"`
	Influencer api.Ref             `json:"influencer"`
	Posts      []api.SubmittedPost `json:"posts"`
	Platforms  []string            `json:"platforms"`
	PostTypes  []string            `json:"postTypes"`
}

func OpenForm(ctx context.Context, s Submitter, code string) (*Form, error) {
	f := &Form{s: s, code: code}
	if err := f.Refresh(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Form) Refresh(ctx context.Context) error {
	if f.code == "" {
		return ErrInvalidLink
	}
	link, err := f.s.TrackingLinkByCode(ctx, f.code)
	if err != nil {
		if api.IsNotFound(err) {
			return ErrInvalidLink
		}
		return err
	}

	f.mux.Lock()
	f.link = link
	f.mux.Unlock()
	return nil
}

// Submit validates in locally and only then sends it. On success the post
// history is reloaded from the API rather than patched locally.
func (f *Form) Submit(ctx context.Context, in api.PostInput) (*api.SubmittedPost, error) {
	in, err := Validate(in)
	if err != nil {
		return nil, err
	}

	post, err := f.s.SubmitPost(ctx, f.code, in)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, ErrInvalidLink
		}
		return nil, err
	}

	if err := f.Refresh(ctx); err != nil {
		log.Println("Post submitted but refresh failed", f.code, err)
	}
	return post, nil
}

func (f *Form) Posts() []api.SubmittedPost {
	f.mux.Lock()
	defer f.mux.Unlock()
	if f.link == nil {
		return nil
	}
	return append([]api.SubmittedPost(nil), f.link.SubmittedPosts...)
}

func (f *Form) View() FormView {
	f.mux.Lock()
	defer f.mux.Unlock()

	v := FormView{Code: f.code, Platforms: Platforms, PostTypes: PostTypes, Posts: []api.SubmittedPost{}}
	if f.link != nil {
		v.Campaign, v.Influencer = f.link.Campaign, f.link.Influencer
		v.Posts = append(v.Posts, f.link.SubmittedPosts...)
	}
	return v
}

// Validate normalises a submission and checks what can be checked without
// the API: platform and an absolute http(s) URL are required.
func Validate(in api.PostInput) (api.PostInput, error) {
	in.Platform = strings.ToLower(strings.TrimSpace(in.Platform))
	in.PostType = strings.ToLower(strings.TrimSpace(in.PostType))
	in.PostURL = strings.TrimSpace(in.PostURL)
	in.Caption = strings.TrimSpace(in.Caption)

	if in.Platform == "" {
		return in, api.Invalid("platform", "is required")
	}
	if err := api.ValidateURL("postUrl", in.PostURL); err != nil {
		return in, err
	}
	if in.PostType == "" {
		in.PostType = DefaultPostType
	}
	return in, nil
}
