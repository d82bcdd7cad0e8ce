package api

import (
	"context"
	"net/http"
	"strings"
)

func (c *Client) ListContracts(ctx context.Context) ([]Contract, error) {
	var out []Contract
	_, err := c.do(ctx, call{method: http.MethodGet, path: "/contracts"}, &out)
	return out, ignoreEmpty(err)
}

func (c *Client) CreateContract(ctx context.Context, in ContractInput) (*Contract, error) {
	if err := validateContract(in); err != nil {
		return nil, err
	}
	var out Contract
	if _, err := c.do(ctx, call{method: http.MethodPost, path: "/contracts", body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetContract(ctx context.Context, id string) (*Contract, error) {
	var out Contract
	if _, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/contracts/{id}",
		params: map[string]string{"id": id},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContract only changes what future sends carry, contracts that already
// went out keep the content they were sent with.
func (c *Client) UpdateContract(ctx context.Context, id string, in ContractInput) (*Contract, error) {
	if err := validateContract(in); err != nil {
		return nil, err
	}
	var out Contract
	if _, err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/contracts/{id}",
		params: map[string]string{"id": id},
		body:   in,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteContract(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/contracts/{id}",
		params: map[string]string{"id": id},
	}, nil)
	return err
}

func (c *Client) SendContract(ctx context.Context, id string, in SendContractInput) (*SentContract, error) {
	if in.InfluencerID == "" {
		return nil, Invalid("influencerId", "is required")
	}
	var out SentContract
	if _, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/contracts/{id}/send",
		params: map[string]string{"id": id},
		body:   in,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ContractStatus returns the latest contract sent to an influencer for a campaign.
func (c *Client) ContractStatus(ctx context.Context, influencerID, campaignID string) (*SentContract, error) {
	var out SentContract
	if _, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/contracts/status/{influencerId}/{campaignId}",
		params: map[string]string{"influencerId": influencerID, "campaignId": campaignID},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CampaignContracts(ctx context.Context, campaignID string) ([]Contract, error) {
	var out []Contract
	_, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/contracts/campaign/{campaignId}",
		params: map[string]string{"campaignId": campaignID},
	}, &out)
	return out, ignoreEmpty(err)
}

// GetContractResponse is public, the token is the only credential.
func (c *Client) GetContractResponse(ctx context.Context, token string) (*ContractResponse, error) {
	var out ContractResponse
	if _, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/contracts/respond/{token}",
		params: map[string]string{"token": token},
		public: true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RespondContract(ctx context.Context, token string, action ContractAction) (*RespondResult, error) {
	if !action.Valid() {
		return nil, Invalid("action", "must be one of accept, reject or connect")
	}
	var out RespondResult
	if _, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/contracts/respond/{token}",
		params: map[string]string{"token": token},
		body:   map[string]ContractAction{"action": action},
		public: true,
	}, &out); err != nil {
		return nil, err
	}
	if out.Status == "" {
		out.Status = action.Status()
	}
	return &out, nil
}

func validateContract(in ContractInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return Invalid("title", "is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return Invalid("content", "is required")
	}
	return nil
}
