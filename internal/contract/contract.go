// Package contract drives the public page an influencer lands on from a sent
// contract's response link.
package contract

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/swayops/portal/internal/api"
	"github.com/swayops/portal/internal/templates"
)

type State string

const (
	StateLoading          State = "loading"
	StateReady            State = "ready"
	StateResponded        State = "responded"
	StateAlreadyResponded State = "already_responded"
	StateNotFound         State = "not_found"
	StateFailed           State = "failed"
)

var (
	ErrAlreadyResponded = errors.New("You have already responded to this contract")
	ErrNotFound         = errors.New("This contract link is invalid or has expired")
)

var Actions = []api.ContractAction{api.ActionAccept, api.ActionReject, api.ActionConnect}

// CanTransition reports whether a sent contract may move from one status to
// another. Only pending contracts move, and only to a terminal status.
func CanTransition(from, to api.ContractStatus) bool {
	return from == api.ContractPending && to.Terminal()
}

// Responder is the part of the API the page needs, *api.Client satisfies it.
type Responder interface {
	GetContractResponse(ctx context.Context, token string) (*api.ContractResponse, error)
	RespondContract(ctx context.Context, token string, action api.ContractAction) (*api.RespondResult, error)
}

// Page is one load of a response link.
type Page struct {
	mux sync.Mutex

	r     Responder
	token string

	state    State
	contract *api.ContractResponse
	result   *api.RespondResult
	msg      string

	autoApplied bool
}

type View struct {
	State      State                 `json:"state"`
	Contract   *api.ContractResponse `json:"contract,omitempty"`
	Status     api.ContractStatus    `json:"status,omitempty"`
	Actions    []api.ContractAction  `json:"actions,omitempty"`
	BrandEmail string                `json:"brandEmail,omitempty"`
	ComposeURL string                `json:"composeUrl,omitempty"`
	Message    string                `json:"message,omitempty"`
}

// Load fetches the contract behind token. It never returns an error, the
// outcome is carried by the page's state.
func Load(ctx context.Context, r Responder, token string) *Page {
	p := &Page{r: r, token: token, state: StateLoading}
	if token == "" {
		p.state, p.msg = StateNotFound, ErrNotFound.Error()
		return p
	}

	ct, err := r.GetContractResponse(ctx, token)
	switch {
	case err == nil:
		p.contract = ct
		if ct.Status.Terminal() {
			p.state, p.msg = StateAlreadyResponded, ErrAlreadyResponded.Error()
		} else {
			p.state = StateReady
		}
	case isClientError(err):
		p.state, p.msg = StateNotFound, ErrNotFound.Error()
	default:
		log.Println("Failed to load contract response", err)
		p.state, p.msg = StateFailed, err.Error()
	}
	return p
}

// AutoApply applies the action passed along with the link (?action=accept).
// It fires at most once per page no matter how often it's called, and only
// while the contract is still pending. Unknown actions are ignored.
func (p *Page) AutoApply(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}

	p.mux.Lock()
	if p.autoApplied || p.state != StateReady {
		p.mux.Unlock()
		return nil
	}
	p.autoApplied = true
	p.mux.Unlock()

	action := api.ContractAction(raw)
	if !action.Valid() {
		log.Println("Ignoring unknown contract action", raw)
		return nil
	}
	return p.Respond(ctx, action)
}

// Respond applies action. A contract that was already answered is refused
// without calling the API.
func (p *Page) Respond(ctx context.Context, action api.ContractAction) error {
	if !action.Valid() {
		return api.Invalid("action", "must be one of accept, reject or connect")
	}

	p.mux.Lock()
	defer p.mux.Unlock()

	switch p.state {
	case StateReady:
	case StateResponded, StateAlreadyResponded:
		return ErrAlreadyResponded
	default:
		return ErrNotFound
	}

	res, err := p.r.RespondContract(ctx, p.token, action)
	switch {
	case err == nil:
	case api.StatusOf(err) == http.StatusConflict:
		// answered from another tab or device since we loaded
		p.state, p.msg = StateAlreadyResponded, ErrAlreadyResponded.Error()
		return ErrAlreadyResponded
	case api.IsNotFound(err):
		p.state, p.msg = StateNotFound, ErrNotFound.Error()
		return ErrNotFound
	default:
		return err
	}

	if !CanTransition(p.contract.Status, res.Status) {
		log.Println("Unexpected contract transition", p.contract.Status, "->", res.Status)
	}

	p.result = res
	p.contract.Status = res.Status
	p.state, p.msg = StateResponded, ""
	return nil
}

func (p *Page) State() State {
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.state
}

func (p *Page) View() View {
	p.mux.Lock()
	defer p.mux.Unlock()

	v := View{State: p.state, Message: p.msg}
	if p.contract != nil {
		cp := *p.contract
		v.Contract, v.Status = &cp, cp.Status
	}
	if p.state == StateReady {
		v.Actions = Actions
	}
	if p.result != nil && p.result.Status == api.ContractConnected && p.result.BrandEmail != "" {
		v.BrandEmail = p.result.BrandEmail
		v.ComposeURL = templates.ComposeURL(templates.Connect{
			BrandEmail:     p.result.BrandEmail,
			BrandName:      p.contract.BrandName,
			ContractTitle:  p.contract.ContractTitle,
			CampaignName:   p.contract.CampaignName,
			InfluencerName: p.contract.InfluencerName,
		})
	}
	return v
}

func isClientError(err error) bool {
	st := api.StatusOf(err)
	return st >= 400 && st < 500
}
