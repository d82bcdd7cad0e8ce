package dialog

import (
	"context"

	"github.com/swayops/portal/internal/api"
)

type CampaignClient interface {
	ListCampaigns(ctx context.Context) ([]api.Campaign, error)
	AddInfluencerToCampaign(ctx context.Context, campaignID, influencerID string) (*api.Campaign, error)
}

type ContractClient interface {
	ListContracts(ctx context.Context) ([]api.Contract, error)
	SendContract(ctx context.Context, id string, in api.SendContractInput) (*api.SentContract, error)
}

// NewCampaignPicker lists the brand's campaigns for adding influencerID.
func NewCampaignPicker(c CampaignClient, influencerID string) *Picker {
	return newPicker(
		func(ctx context.Context) ([]Candidate, error) {
			cmps, err := c.ListCampaigns(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]Candidate, 0, len(cmps))
			for _, cmp := range cmps {
				out = append(out, Candidate{ID: cmp.ID, Name: cmp.Name, State: stateOf(cmp.HasInfluencer(influencerID))})
			}
			return out, nil
		},
		func(ctx context.Context, id string) error {
			_, err := c.AddInfluencerToCampaign(ctx, id, influencerID)
			return err
		},
	)
}

// NewContractPicker lists the brand's contracts for sending to influencerID,
// optionally tied to campaignID.
func NewContractPicker(c ContractClient, influencerID, campaignID string) *Picker {
	return newPicker(
		func(ctx context.Context) ([]Candidate, error) {
			cts, err := c.ListContracts(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]Candidate, 0, len(cts))
			for i := range cts {
				out = append(out, Candidate{ID: cts[i].ID, Name: cts[i].Title, State: stateOf(cts[i].SentTo(influencerID, campaignID))})
			}
			return out, nil
		},
		func(ctx context.Context, id string) error {
			_, err := c.SendContract(ctx, id, api.SendContractInput{InfluencerID: influencerID, CampaignID: campaignID})
			return err
		},
	)
}
