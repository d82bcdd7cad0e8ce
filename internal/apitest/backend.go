// Package apitest runs an in-memory stand-in for the REST API so the portal's
// flows can be tested end to end without the real backend.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/swayops/portal/internal/api"
	"github.com/swayops/portal/misc"
)

const DefaultBrandEmail = "brand@sway.test"

var secret = []byte("apitest-secret")

type Backend struct {
	URL string

	// FailClicks makes the click endpoint reply with a 500.
	FailClicks bool
	// BrandEmail is returned by the connect action, leave empty to omit it.
	BrandEmail string
	BrandName  string

	mux         sync.Mutex
	calls       []string
	contracts   map[string]*api.Contract
	tokens      map[string]string // response token -> contract id
	links       map[string]*api.TrackingLink
	codes       map[string]string // tracking code -> link id
	campaigns   []*api.Campaign
	influencers []*api.Influencer

	srv *httptest.Server
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// New starts a backend that's closed when t finishes.
func New(t testing.TB) *Backend {
	b := &Backend{
		BrandEmail: DefaultBrandEmail,
		BrandName:  "Sway Brand",
		contracts:  make(map[string]*api.Contract),
		tokens:     make(map[string]string),
		links:      make(map[string]*api.TrackingLink),
		codes:      make(map[string]string),
	}

	r := gin.New()
	r.Use(b.record)
	b.routes(r)

	b.srv = httptest.NewServer(r)
	b.URL = b.srv.URL
	t.Cleanup(b.srv.Close)
	return b
}

// Token returns a bearer token the backend accepts.
func (b *Backend) Token() string {
	return b.TokenExpiring(time.Now().Add(time.Hour))
}

func (b *Backend) TokenExpiring(at time.Time) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "brand-1",
		ExpiresAt: jwt.NewNumericDate(at),
	})
	s, err := tok.SignedString(secret)
	if err != nil {
		panic(err)
	}
	return s
}

// Calls returns every request seen so far as "METHOD /path".
func (b *Backend) Calls() []string {
	b.mux.Lock()
	defer b.mux.Unlock()
	return append([]string(nil), b.calls...)
}

// CallCount counts requests whose "METHOD /path" starts with prefix.
func (b *Backend) CallCount(prefix string) (n int) {
	for _, c := range b.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return
}

func (b *Backend) ResetCalls() {
	b.mux.Lock()
	b.calls = nil
	b.mux.Unlock()
}

func (b *Backend) AddCampaign(name string, influencerIDs ...string) *api.Campaign {
	b.mux.Lock()
	defer b.mux.Unlock()
	cmp := &api.Campaign{ID: newID(), Name: name, Status: "active", InfluencerIDs: influencerIDs}
	b.campaigns = append(b.campaigns, cmp)
	return cmp
}

func (b *Backend) AddInfluencer(name, email string) *api.Influencer {
	b.mux.Lock()
	defer b.mux.Unlock()
	inf := &api.Influencer{
		ID:        newID(),
		Name:      name,
		Email:     email,
		Handle:    "@" + strings.ToLower(strings.ReplaceAll(name, " ", "")),
		Platforms: []string{"instagram"},
	}
	b.influencers = append(b.influencers, inf)
	return inf
}

func (b *Backend) AddContract(title, content string) *api.Contract {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.addContract(title, content)
}

func (b *Backend) addContract(title, content string) *api.Contract {
	now := time.Now().UTC()
	ct := &api.Contract{ID: newID(), Title: title, Content: content, CreatedBy: "brand-1", CreatedAt: now, UpdatedAt: now}
	b.contracts[ct.ID] = ct
	return ct
}

// SendContract sends contractID to influencerID and returns the response token.
func (b *Backend) SendContract(contractID, influencerID, campaignID string) string {
	b.mux.Lock()
	defer b.mux.Unlock()
	sc, err := b.send(contractID, api.SendContractInput{InfluencerID: influencerID, CampaignID: campaignID})
	if err != nil {
		panic(err)
	}
	return sc.ResponseToken
}

// ContractStatusOf returns the status behind a response token.
func (b *Backend) ContractStatusOf(token string) api.ContractStatus {
	b.mux.Lock()
	defer b.mux.Unlock()
	if sc := b.sentByToken(token); sc != nil {
		return sc.Status
	}
	return ""
}

// AddLink creates a tracking link and returns its code.
func (b *Backend) AddLink(campaignID, influencerID, dest string) string {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.addLink(campaignID, influencerID, dest).TrackingCode
}

func (b *Backend) Link(code string) *api.TrackingLink {
	b.mux.Lock()
	defer b.mux.Unlock()
	if l, ok := b.links[b.codes[code]]; ok {
		cp := *l
		cp.SubmittedPosts = append([]api.SubmittedPost(nil), l.SubmittedPosts...)
		return &cp
	}
	return nil
}

func (b *Backend) addLink(campaignID, influencerID, dest string) *api.TrackingLink {
	code, err := misc.RandomCode(8, misc.CodeAlphabet)
	if err != nil {
		panic(err)
	}
	l := &api.TrackingLink{
		ID:             newID(),
		TrackingCode:   code,
		DestinationURL: dest,
		Status:         "active",
		Campaign:       api.Ref{ID: campaignID, Name: b.campaignName(campaignID)},
		Influencer:     api.Ref{ID: influencerID, Name: b.influencerName(influencerID)},
		SubmittedPosts: []api.SubmittedPost{},
	}
	b.links[l.ID] = l
	b.codes[code] = l.ID
	return l
}

func (b *Backend) record(c *gin.Context) {
	b.mux.Lock()
	b.calls = append(b.calls, c.Request.Method+" "+c.Request.URL.Path)
	b.mux.Unlock()
	c.Next()
}

func (b *Backend) authorized(c *gin.Context) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		fail(c, http.StatusUnauthorized, "Missing token")
		return
	}
	_, err := jwt.Parse(strings.TrimPrefix(h, "Bearer "), func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid token")
		return
	}
	c.Next()
}

func (b *Backend) sentByToken(token string) *api.SentContract {
	ct, ok := b.contracts[b.tokens[token]]
	if !ok {
		return nil
	}
	for i := range ct.SentContracts {
		if ct.SentContracts[i].ResponseToken == token {
			return &ct.SentContracts[i]
		}
	}
	return nil
}

func (b *Backend) campaignName(id string) string {
	for _, cmp := range b.campaigns {
		if cmp.ID == id {
			return cmp.Name
		}
	}
	return ""
}

func (b *Backend) influencerName(id string) string {
	if inf := b.influencer(id); inf != nil {
		return inf.Name
	}
	return ""
}

func (b *Backend) influencer(id string) *api.Influencer {
	for _, inf := range b.influencers {
		if inf.ID == id {
			return inf
		}
	}
	return nil
}

func newID() string {
	return ulid.Make().String()
}

func newToken() string {
	return uuid.NewString()
}

func reply(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func replyList(c *gin.Context, data interface{}, count int, p *api.Pagination) {
	out := gin.H{"success": true, "data": data, "count": count}
	if p != nil {
		out["pagination"] = p
	}
	c.JSON(http.StatusOK, out)
}

func fail(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": msg})
}
