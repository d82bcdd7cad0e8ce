package api

import (
	"context"
	"net/http"
	"strconv"
)

func (c *Client) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	var out []Campaign
	_, err := c.do(ctx, call{method: http.MethodGet, path: "/campaigns"}, &out)
	return out, ignoreEmpty(err)
}

func (c *Client) AddInfluencerToCampaign(ctx context.Context, campaignID, influencerID string) (*Campaign, error) {
	if influencerID == "" {
		return nil, Invalid("influencerId", "is required")
	}
	var out Campaign
	if _, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/campaigns/{id}/influencers",
		params: map[string]string{"id": campaignID},
		body:   map[string]string{"influencerId": influencerID},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchInfluencers lists influencers page by page, an empty term lists all.
func (c *Client) SearchInfluencers(ctx context.Context, term string, page, limit int) (*InfluencerPage, error) {
	q := map[string]string{}
	if term != "" {
		q["search"] = term
	}
	if page > 0 {
		q["page"] = strconv.Itoa(page)
	}
	if limit > 0 {
		q["limit"] = strconv.Itoa(limit)
	}

	var out InfluencerPage
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/influencers", query: q}, &out.Influencers)
	if err = ignoreEmpty(err); err != nil {
		return nil, err
	}
	if env.Pagination != nil {
		out.Pagination = *env.Pagination
	} else {
		out.Pagination = Pagination{Page: 1, Limit: len(out.Influencers), Total: len(out.Influencers), Pages: 1}
	}
	return &out, nil
}

// Search backs the global header search box.
func (c *Client) Search(ctx context.Context, q string) (*SearchResults, error) {
	var out SearchResults
	if _, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/search",
		query:  map[string]string{"q": q},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
