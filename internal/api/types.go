package api

import (
	"encoding/json"
	"time"
)

// Response is the envelope every API reply is wrapped in.
type Response struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Count      int             `json:"count,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Ref points at another entity, the name is filled in when the API populates it.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type ContractStatus string

const (
	ContractPending   ContractStatus = "pending"
	ContractAccepted  ContractStatus = "accepted"
	ContractRejected  ContractStatus = "rejected"
	ContractConnected ContractStatus = "connected"
)

func (s ContractStatus) Terminal() bool {
	switch s {
	case ContractAccepted, ContractRejected, ContractConnected:
		return true
	}
	return false
}

type Contract struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	CreatedBy     string         `json:"createdBy,omitempty"`
	SentContracts []SentContract `json:"sentContracts,omitempty"`
	CreatedAt     time.Time      `json:"createdAt,omitempty"`
	UpdatedAt     time.Time      `json:"updatedAt,omitempty"`
}

// SentTo reports whether the contract already went out to the influencer,
// for the given campaign when campaignID is set.
func (c *Contract) SentTo(influencerID, campaignID string) bool {
	for _, sc := range c.SentContracts {
		if sc.Influencer.ID != influencerID {
			continue
		}
		if campaignID == "" || (sc.Campaign != nil && sc.Campaign.ID == campaignID) {
			return true
		}
	}
	return false
}

type SentContract struct {
	Influencer      Ref            `json:"influencer"`
	InfluencerEmail string         `json:"influencerEmail,omitempty"`
	Campaign        *Ref           `json:"campaign,omitempty"`
	ResponseToken   string         `json:"responseToken,omitempty"`
	Status          ContractStatus `json:"status"`
	SentAt          time.Time      `json:"sentAt,omitempty"`
	RespondedAt     *time.Time     `json:"respondedAt,omitempty"`
}

type ContractInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type SendContractInput struct {
	InfluencerID string `json:"influencerId"`
	CampaignID   string `json:"campaignId,omitempty"`
}

// ContractResponse is the public view of a sent contract, addressed by its
// response token.
type ContractResponse struct {
	ContractTitle   string         `json:"contractTitle"`
	ContractContent string         `json:"contractContent"`
	BrandName       string         `json:"brandName,omitempty"`
	InfluencerName  string         `json:"influencerName,omitempty"`
	CampaignName    string         `json:"campaignName,omitempty"`
	Status          ContractStatus `json:"status"`
	RespondedAt     *time.Time     `json:"respondedAt,omitempty"`
}

type ContractAction string

const (
	ActionAccept  ContractAction = "accept"
	ActionReject  ContractAction = "reject"
	ActionConnect ContractAction = "connect"
)

func (a ContractAction) Valid() bool {
	switch a {
	case ActionAccept, ActionReject, ActionConnect:
		return true
	}
	return false
}

// Status is the state a pending contract moves to once a is applied.
func (a ContractAction) Status() ContractStatus {
	switch a {
	case ActionAccept:
		return ContractAccepted
	case ActionReject:
		return ContractRejected
	case ActionConnect:
		return ContractConnected
	}
	return ""
}

type RespondResult struct {
	Status     ContractStatus `json:"status"`
	BrandEmail string         `json:"brandEmail,omitempty"`
}

type PostStatus string

const (
	PostPending  PostStatus = "pending"
	PostApproved PostStatus = "approved"
	PostRejected PostStatus = "rejected"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostPending, PostApproved, PostRejected:
		return true
	}
	return false
}

type Metrics struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

type SubmittedPost struct {
	ID          string     `json:"id"`
	Platform    string     `json:"platform"`
	PostType    string     `json:"postType,omitempty"`
	PostURL     string     `json:"postUrl"`
	Caption     string     `json:"caption,omitempty"`
	Status      PostStatus `json:"status"`
	Metrics     Metrics    `json:"metrics"`
	SubmittedAt time.Time  `json:"submittedAt,omitempty"`
}

type ClickStats struct {
	Total       int64      `json:"total"`
	Unique      int64      `json:"unique"`
	LastClickAt *time.Time `json:"lastClickAt,omitempty"`
}

type TrackingLink struct {
	ID             string          `json:"id"`
	TrackingCode   string          `json:"trackingCode"`
	DestinationURL string          `json:"destinationUrl,omitempty"`
	Status         string          `json:"status,omitempty"`
	Campaign       Ref             `json:"campaign"`
	Influencer     Ref             `json:"influencer"`
	SubmittedPosts []SubmittedPost `json:"submittedPosts"`
	ClickStats     ClickStats      `json:"clickStats"`
}

type GenerateLinkInput struct {
	CampaignID     string `json:"campaignId"`
	InfluencerID   string `json:"influencerId"`
	DestinationURL string `json:"destinationUrl,omitempty"`
}

type UpdateLinkInput struct {
	DestinationURL *string `json:"destinationUrl,omitempty"`
	Status         *string `json:"status,omitempty"`
}

type PostInput struct {
	Platform string `json:"platform"`
	PostType string `json:"postType,omitempty"`
	PostURL  string `json:"postUrl"`
	Caption  string `json:"caption,omitempty"`
}

// Visit is what the click endpoint records about a visitor.
type Visit struct {
	Referrer  string `json:"referrer,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

type ClickResult struct {
	DestinationURL string `json:"destinationUrl,omitempty"`
}

type Campaign struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Status        string   `json:"status,omitempty"`
	InfluencerIDs []string `json:"influencerIds,omitempty"`
}

func (c *Campaign) HasInfluencer(id string) bool {
	for _, v := range c.InfluencerIDs {
		if v == id {
			return true
		}
	}
	return false
}

type Influencer struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email,omitempty"`
	Handle    string   `json:"handle,omitempty"`
	Platforms []string `json:"platforms,omitempty"`
}

type InfluencerPage struct {
	Influencers []Influencer `json:"influencers"`
	Pagination  Pagination   `json:"pagination"`
}

type SearchResults struct {
	Campaigns   []Campaign   `json:"campaigns"`
	Influencers []Influencer `json:"influencers"`
}
