package api

import (
	"context"
	"net/http"
)

func (c *Client) GenerateTrackingLink(ctx context.Context, in GenerateLinkInput) (*TrackingLink, error) {
	if in.CampaignID == "" {
		return nil, Invalid("campaignId", "is required")
	}
	if in.InfluencerID == "" {
		return nil, Invalid("influencerId", "is required")
	}
	if in.DestinationURL != "" {
		if err := ValidateURL("destinationUrl", in.DestinationURL); err != nil {
			return nil, err
		}
	}
	var out TrackingLink
	if _, err := c.do(ctx, call{method: http.MethodPost, path: "/tracking-links/generate", body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CampaignTrackingLinks(ctx context.Context, campaignID string) ([]TrackingLink, error) {
	var out []TrackingLink
	_, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/tracking-links/campaign/{id}",
		params: map[string]string{"id": campaignID},
	}, &out)
	return out, ignoreEmpty(err)
}

func (c *Client) GetTrackingLink(ctx context.Context, id string) (*TrackingLink, error) {
	var out TrackingLink
	if _, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/tracking-links/{id}",
		params: map[string]string{"id": id},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTrackingLink(ctx context.Context, id string, in UpdateLinkInput) (*TrackingLink, error) {
	if in.DestinationURL != nil && *in.DestinationURL != "" {
		if err := ValidateURL("destinationUrl", *in.DestinationURL); err != nil {
			return nil, err
		}
	}
	var out TrackingLink
	if _, err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/tracking-links/{id}",
		params: map[string]string{"id": id},
		body:   in,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTrackingLink(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/tracking-links/{id}",
		params: map[string]string{"id": id},
	}, nil)
	return err
}

func (c *Client) SetPostStatus(ctx context.Context, linkID, postID string, status PostStatus) (*SubmittedPost, error) {
	if !status.Valid() {
		return nil, Invalid("status", "must be one of pending, approved or rejected")
	}
	var out SubmittedPost
	if _, err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/tracking-links/{id}/posts/{postId}/status",
		params: map[string]string{"id": linkID, "postId": postID},
		body:   map[string]PostStatus{"status": status},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetPostMetrics(ctx context.Context, linkID, postID string, m Metrics) (*SubmittedPost, error) {
	if m.Views < 0 || m.Likes < 0 || m.Comments < 0 || m.Shares < 0 {
		return nil, Invalid("metrics", "can't be negative")
	}
	var out SubmittedPost
	if _, err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/tracking-links/{id}/posts/{postId}/metrics",
		params: map[string]string{"id": linkID, "postId": postID},
		body:   m,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, linkID, postID string) error {
	_, err := c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/tracking-links/{id}/posts/{postId}",
		params: map[string]string{"id": linkID, "postId": postID},
	}, nil)
	return err
}

// TrackingLinkByCode is the public, read-only lookup.
func (c *Client) TrackingLinkByCode(ctx context.Context, code string) (*TrackingLink, error) {
	var out TrackingLink
	if _, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/tracking-links/code/{code}",
		params: map[string]string{"code": code},
		public: true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitPost expects a validated input, see tracking.Form for the checks.
func (c *Client) SubmitPost(ctx context.Context, code string, in PostInput) (*SubmittedPost, error) {
	var out SubmittedPost
	if _, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/tracking-links/submit/{code}",
		params: map[string]string{"code": code},
		body:   in,
		public: true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordClick records a visit and returns where to send the visitor. A
// successful reply may still carry no destination.
func (c *Client) RecordClick(ctx context.Context, code string, v Visit) (*ClickResult, error) {
	var out ClickResult
	env, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/tracking-links/click/{code}",
		params: map[string]string{"code": code},
		body:   v,
		public: true,
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(env.Data) > 0 {
		if err := unmarshalData(env, &out); err != nil {
			return nil, err
		}
	}
	return &out, nil
}
