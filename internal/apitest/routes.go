package apitest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swayops/portal/internal/api"
)

var (
	errNoContract  = errors.New("Contract not found")
	errAlreadySent = errors.New("Contract already sent to this influencer")
)

func (b *Backend) routes(r *gin.Engine) {
	// public
	r.GET("/contracts/respond/:token", b.getResponse)
	r.POST("/contracts/respond/:token", b.respond)
	r.GET("/tracking-links/code/:code", b.linkByCode)
	r.POST("/tracking-links/submit/:code", b.submit)
	r.POST("/tracking-links/click/:code", b.click)

	g := r.Group("/", b.authorized)
	g.GET("/contracts", b.listContracts)
	g.POST("/contracts", b.createContract)
	g.GET("/contracts/:id", b.getContract)
	g.PUT("/contracts/:id", b.updateContract)
	g.DELETE("/contracts/:id", b.deleteContract)
	g.POST("/contracts/:id/send", b.sendContract)
	g.GET("/contracts/status/:influencerId/:campaignId", b.contractStatus)
	g.GET("/contracts/campaign/:campaignId", b.campaignContracts)

	g.POST("/tracking-links/generate", b.generateLink)
	g.GET("/tracking-links/campaign/:id", b.campaignLinks)
	g.GET("/tracking-links/:id", b.getLink)
	g.PUT("/tracking-links/:id", b.updateLink)
	g.DELETE("/tracking-links/:id", b.deleteLink)
	g.PUT("/tracking-links/:id/posts/:postId/status", b.postStatus)
	g.PUT("/tracking-links/:id/posts/:postId/metrics", b.postMetrics)
	g.DELETE("/tracking-links/:id/posts/:postId", b.deletePost)

	g.GET("/campaigns", b.listCampaigns)
	g.POST("/campaigns/:id/influencers", b.addToCampaign)
	g.GET("/influencers", b.listInfluencers)
	g.GET("/search", b.search)
}

func (b *Backend) getResponse(c *gin.Context) {
	b.mux.Lock()
	defer b.mux.Unlock()

	sc := b.sentByToken(c.Param("token"))
	if sc == nil {
		fail(c, http.StatusNotFound, "Contract not found or link expired")
		return
	}
	ct := b.contracts[b.tokens[c.Param("token")]]
	out := api.ContractResponse{
		ContractTitle:   ct.Title,
		ContractContent: ct.Content,
		BrandName:       b.BrandName,
		InfluencerName:  sc.Influencer.Name,
		Status:          sc.Status,
		RespondedAt:     sc.RespondedAt,
	}
	if sc.Campaign != nil {
		out.CampaignName = sc.Campaign.Name
	}
	reply(c, http.StatusOK, out)
}

func (b *Backend) respond(c *gin.Context) {
	var req struct {
		Action api.ContractAction `json:"action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Action.Valid() {
		fail(c, http.StatusBadRequest, "Invalid action")
		return
	}

	b.mux.Lock()
	defer b.mux.Unlock()

	sc := b.sentByToken(c.Param("token"))
	if sc == nil {
		fail(c, http.StatusNotFound, "Contract not found or link expired")
		return
	}
	if sc.Status.Terminal() {
		fail(c, http.StatusConflict, "You have already responded to this contract")
		return
	}

	now := time.Now().UTC()
	sc.Status, sc.RespondedAt = req.Action.Status(), &now

	out := api.RespondResult{Status: sc.Status}
	if req.Action == api.ActionConnect {
		out.BrandEmail = b.BrandEmail
	}
	reply(c, http.StatusOK, out)
}

func (b *Backend) linkByCode(c *gin.Context) {
	b.mux.Lock()
	defer b.mux.Unlock()

	l, ok := b.links[b.codes[c.Param("code")]]
	if !ok {
		fail(c, http.StatusNotFound, "Invalid tracking link")
		return
	}
	reply(c, http.StatusOK, l)
}

func (b *Backend) submit(c *gin.Context) {
	var in api.PostInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Platform == "" || in.PostURL == "" {
		fail(c, http.StatusBadRequest, "Platform and post URL are required")
		return
	}

	b.mux.Lock()
	defer b.mux.Unlock()

	l, ok := b.links[b.codes[c.Param("code")]]
	if !ok {
		fail(c, http.StatusNotFound, "Invalid tracking link")
		return
	}
	post := api.SubmittedPost{
		ID:          newID(),
		Platform:    in.Platform,
		PostType:    in.PostType,
		PostURL:     in.PostURL,
		Caption:     in.Caption,
		Status:      api.PostPending,
		SubmittedAt: time.Now().UTC(),
	}
	l.SubmittedPosts = append(l.SubmittedPosts, post)
	reply(c, http.StatusCreated, post)
}

func (b *Backend) click(c *gin.Context) {
	if b.FailClicks {
		fail(c, http.StatusInternalServerError, "Click tracking unavailable")
		return
	}
	var v api.Visit
	c.ShouldBindJSON(&v)

	b.mux.Lock()
	defer b.mux.Unlock()

	l, ok := b.links[b.codes[c.Param("code")]]
	if !ok {
		fail(c, http.StatusNotFound, "Invalid tracking link")
		return
	}
	now := time.Now().UTC()
	l.ClickStats.Total++
	l.ClickStats.LastClickAt = &now
	reply(c, http.StatusOK, api.ClickResult{DestinationURL: l.DestinationURL})
}

func (b *Backend) listContracts(c *gin.Context) {
	b.mux.Lock()
	defer b.mux.Unlock()

	out := make([]*api.Contract, 0, len(b.contracts))
	for _, ct := range b.contracts {
		out = append(out, ct)
	}
	replyList(c, out, len(out), nil)
}

func (b *Backend) createContract(c *gin.Context) {
	var in api.ContractInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Title == "" {
		fail(c, http.StatusBadRequest, "Title is required")
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	reply(c, http.StatusCreated, b.addContract(in.Title, in.Content))
}

func (b *Backend) getContract(c *gin.Context) {
	b.mux.Lock()
	defer b.mux.Unlock()

	ct, ok := b.contracts[c.Param("id")]
	if !ok {
		fail(c, http.StatusNotFound, errNoContract.Error())
		return
	}
	reply(c, http.StatusOK, ct)
}

func (b *Backend) updateContract(c *gin.Context) {
	var in api.ContractInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()

	ct, ok := b.contracts[c.Param("id")]
	if !ok {
		fail(c, http.StatusNotFound, errNoContract.Error())
		return
	}
	ct.Title, ct.Content, ct.UpdatedAt = in.Title, in.Content, time.Now().UTC()
	reply(c, http.StatusOK, ct)
}

func (b *Backend) deleteContract(c *gin.Context) {
	b.mux.Lock()
	defer b.mux.Unlock()

	id := c.Param("id")
	if _, ok := b.contracts[id]; !ok {
		fail(c, http.StatusNotFound, errNoContract.Error())
		return
	}
	delete(b.contracts, id)
	for tok, cid := range b.tokens {
		if cid == id {
			delete(b.tokens, tok)
		}
	}
	reply(c, http.StatusOK, gin.H{"id": id})
}

func (b *Backend) sendContract(c *gin.Context) {
	var in api.SendContractInput
	if err := c.ShouldBindJSON(&in); err != nil || in.InfluencerID == "" {
		fail(c, http.StatusBadRequest, "Influencer is required")
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()

	sc, err := b.send(c.Param("id"), in)
	switch err {
	case nil:
		reply(c, http.StatusCreated, sc)
	case errNoContract:
		fail(c, http.StatusNotFound, err.Error())
	default:
		fail(c, http.StatusConflict, err.Error())
	}
}

func (b *Backend) send(contractID string, in api.SendContractInput) (*api.SentContract, error) {
	ct, ok := b.contracts[contractID]
	if !ok {
		return nil, errNoContract
	}
	if ct.SentTo(in.InfluencerID, in.CampaignID) {
		return nil, errAlreadySent
	}
	sc := api.SentContract{
		Influencer:    api.Ref{ID: in.InfluencerID, Name: b.influencerName(in.InfluencerID)},
		ResponseToken: newToken(),
		Status:        api.ContractPending,
		SentAt:        time.Now().UTC(),
	}
	if inf := b.influencer(in.InfluencerID); inf != nil {
		sc.InfluencerEmail = inf.Email
	}
	if in.CampaignID != "" {
		sc.Campaign = &api.Ref{ID: in.CampaignID, Name: b.campaignName(in.CampaignID)}
	}
	ct.SentContracts = append(ct.SentContracts, sc)
	b.tokens[sc.ResponseToken] = ct.ID
	return &sc, nil
}

func (b *Backend) contractStatus(c *gin.Context) {
	b.mux.Lock()
	defer b.mux.Unlock()

	var found *api.SentContract
	for _, ct := range b.contracts {
		for i := range ct.SentContracts {
			sc := &ct.SentContracts[i]
			if sc.Influencer.ID == c.Param("influencerId") && sc.Campaign != nil && sc.Campaign.ID == c.Param("campaignId") {
				if found == nil || sc.SentAt.After(found.SentAt) {
					found = sc
				}
			}
		}
	}
	if found == nil {
		fail(c, http.StatusNotFound, "No contract sent")
		return
	}
	reply(c, http.StatusOK, found)
}

func (b *Backend) campaignContracts(c *gin.Context) {
	b.mux.Lock()
	defer b.mux.Unlock()

	out := []*api.Contract{}
	for _, ct := range b.contracts {
		for _, sc := range ct.SentContracts {
			if sc.Campaign != nil && sc.Campaign.ID == c.Param("campaignId") {
				out = append(out, ct)
				break
			}
		}
	}
	replyList(c, out, len(out), nil)
}

func (b *Backend) generateLink(c *gin.Context) {
	var in api.GenerateLinkInput
	if err := c.ShouldBindJSON(&in); err != nil || in.CampaignID == "" || in.InfluencerID == "" {
		fail(c, http.StatusBadRequest, "Campaign and influencer are required")
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()

	for _, l := range b.links {
		if l.Campaign.ID == in.CampaignID && l.Influencer.ID == in.InfluencerID {
			reply(c, http.StatusOK, l)
			return
		}
	}
	reply(c, http.StatusCreated, b.addLink(in.CampaignID, in.InfluencerID, in.DestinationURL))
}

func (b *Backend) campaignLinks(c *gin.Context) {
	b.mux.Lock()
	defer b.mux.Unlock()

	out := []*api.TrackingLink{}
	for _, l := range b.links {
		if l.Campaign.ID == c.Param("id") {
			out = append(out, l)
		}
	}
	replyList(c, out, len(out), nil)
}

func (b *Backend) getLink(c *gin.Context) {
	b.mux.Lock()
	defer b.mux.Unlock()

	l, ok := b.links[c.Param("id")]
	if !ok {
		fail(c, http.StatusNotFound, "Tracking link not found")
		return
	}
	reply(c, http.StatusOK, l)
}

func (b *Backend) updateLink(c *gin.Context) {
	var in api.UpdateLinkInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()

	l, ok := b.links[c.Param("id")]
	if !ok {
		fail(c, http.StatusNotFound, "Tracking link not found")
		return
	}
	if in.DestinationURL != nil {
		l.DestinationURL = *in.DestinationURL
	}
	if in.Status != nil {
		l.Status = *in.Status
	}
	reply(c, http.StatusOK, l)
}

func (b *Backend) deleteLink(c *gin.Context) {
	b.mux.Lock()
	defer b.mux.Unlock()

	l, ok := b.links[c.Param("id")]
	if !ok {
		fail(c, http.StatusNotFound, "Tracking link not found")
		return
	}
	delete(b.codes, l.TrackingCode)
	delete(b.links, l.ID)
	reply(c, http.StatusOK, gin.H{"id": l.ID})
}

// post finds a post, the caller holds the lock.
func (b *Backend) post(c *gin.Context) (*api.TrackingLink, int) {
	l, ok := b.links[c.Param("id")]
	if !ok {
		return nil, -1
	}
	for i := range l.SubmittedPosts {
		if l.SubmittedPosts[i].ID == c.Param("postId") {
			return l, i
		}
	}
	return l, -1
}

func (b *Backend) postStatus(c *gin.Context) {
	var in struct {
		Status api.PostStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || !in.Status.Valid() {
		fail(c, http.StatusBadRequest, "Invalid status")
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()

	l, idx := b.post(c)
	if idx < 0 {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}
	l.SubmittedPosts[idx].Status = in.Status
	reply(c, http.StatusOK, l.SubmittedPosts[idx])
}

func (b *Backend) postMetrics(c *gin.Context) {
	var in api.Metrics
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()

	l, idx := b.post(c)
	if idx < 0 {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}
	l.SubmittedPosts[idx].Metrics = in
	reply(c, http.StatusOK, l.SubmittedPosts[idx])
}

func (b *Backend) deletePost(c *gin.Context) {
	b.mux.Lock()
	defer b.mux.Unlock()

	l, idx := b.post(c)
	if idx < 0 {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}
	id := l.SubmittedPosts[idx].ID
	l.SubmittedPosts = append(l.SubmittedPosts[:idx], l.SubmittedPosts[idx+1:]...)
	reply(c, http.StatusOK, gin.H{"id": id})
}

func (b *Backend) listCampaigns(c *gin.Context) {
	b.mux.Lock()
	defer b.mux.Unlock()
	replyList(c, b.campaigns, len(b.campaigns), nil)
}

func (b *Backend) addToCampaign(c *gin.Context) {
	var in struct {
		InfluencerID string `json:"influencerId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.InfluencerID == "" {
		fail(c, http.StatusBadRequest, "Influencer is required")
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()

	for _, cmp := range b.campaigns {
		if cmp.ID != c.Param("id") {
			continue
		}
		if cmp.HasInfluencer(in.InfluencerID) {
			fail(c, http.StatusConflict, "Influencer already in campaign")
			return
		}
		cmp.InfluencerIDs = append(cmp.InfluencerIDs, in.InfluencerID)
		reply(c, http.StatusOK, cmp)
		return
	}
	fail(c, http.StatusNotFound, "Campaign not found")
}

func (b *Backend) listInfluencers(c *gin.Context) {
	term := strings.ToLower(c.Query("search"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	b.mux.Lock()
	defer b.mux.Unlock()

	matched := []*api.Influencer{}
	for _, inf := range b.influencers {
		if term == "" || strings.Contains(strings.ToLower(inf.Name), term) {
			matched = append(matched, inf)
		}
	}

	start, end := (page-1)*limit, page*limit
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}
	p := &api.Pagination{Page: page, Limit: limit, Total: len(matched), Pages: (len(matched) + limit - 1) / limit}
	replyList(c, matched[start:end], end-start, p)
}

func (b *Backend) search(c *gin.Context) {
	term := strings.ToLower(c.Query("q"))

	b.mux.Lock()
	defer b.mux.Unlock()

	out := api.SearchResults{Campaigns: []api.Campaign{}, Influencers: []api.Influencer{}}
	if term == "" {
		reply(c, http.StatusOK, out)
		return
	}
	for _, cmp := range b.campaigns {
		if strings.Contains(strings.ToLower(cmp.Name), term) {
			out.Campaigns = append(out.Campaigns, *cmp)
		}
	}
	for _, inf := range b.influencers {
		if strings.Contains(strings.ToLower(inf.Name), term) {
			out.Influencers = append(out.Influencers, *inf)
		}
	}
	reply(c, http.StatusOK, out)
}
