// Package dialog drives the brand side association dialogs: adding an
// influencer to a campaign and sending an influencer a contract.
package dialog

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/swayops/portal/internal/api"
	"github.com/swayops/portal/internal/search"
)

type RowState string

const (
	RowIdle    RowState = "idle"
	RowPending RowState = "pending"
	RowAdded   RowState = "added"
	RowFailed  RowState = "failed"
)

var (
	ErrUnknownCandidate = errors.New("Candidate not found!")
	ErrPending          = errors.New("Request already in progress")
	ErrAlreadyAdded     = errors.New("Already added")
)

type Candidate struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	State RowState `json:"state"`
	Error string   `json:"error,omitempty"`
}

// Added reports whether the candidate already holds the association.
func (c Candidate) Added() bool { return c.State == RowAdded }

type (
	loadFunc   func(ctx context.Context) ([]Candidate, error)
	selectFunc func(ctx context.Context, id string) error
)

// Picker lists candidates and performs one association per selection. Row
// state lives with the picker so a row that is pending or done can't be
// selected again.
type Picker struct {
	mux  sync.Mutex
	load loadFunc
	act  selectFunc
	rows []Candidate
}

func newPicker(load loadFunc, act selectFunc) *Picker {
	return &Picker{load: load, act: act}
}

// Load fetches the candidates again. Rows with a request in flight keep
// their pending state.
func (p *Picker) Load(ctx context.Context) error {
	rows, err := p.load(ctx)
	if err != nil {
		return err
	}

	p.mux.Lock()
	defer p.mux.Unlock()
	pending := make(map[string]bool)
	for _, r := range p.rows {
		if r.State == RowPending {
			pending[r.ID] = true
		}
	}
	for i := range rows {
		if pending[rows[i].ID] {
			rows[i].State = RowPending
		}
	}
	p.rows = rows
	return nil
}

func (p *Picker) Candidates() []Candidate {
	p.mux.Lock()
	defer p.mux.Unlock()
	return append([]Candidate{}, p.rows...)
}

// Filter narrows the loaded candidates by name.
func (p *Picker) Filter(term string) []Candidate {
	return search.Filter(p.Candidates(), term, func(c Candidate) string { return c.Name })
}

// Select associates the candidate with one call. A conflict from the API
// means someone else already did it, the row ends up added either way.
func (p *Picker) Select(ctx context.Context, id string) (Candidate, error) {
	p.mux.Lock()
	i := p.find(id)
	if i < 0 {
		p.mux.Unlock()
		return Candidate{}, ErrUnknownCandidate
	}
	switch c := p.rows[i]; c.State {
	case RowPending:
		p.mux.Unlock()
		return c, ErrPending
	case RowAdded:
		p.mux.Unlock()
		return c, ErrAlreadyAdded
	}
	p.rows[i].State, p.rows[i].Error = RowPending, ""
	p.mux.Unlock()

	err := p.act(ctx, id)

	p.mux.Lock()
	defer p.mux.Unlock()
	if i = p.find(id); i < 0 {
		// reloaded without this row meanwhile
		return Candidate{ID: id, State: RowIdle}, err
	}
	switch {
	case err == nil, api.StatusOf(err) == http.StatusConflict:
		p.rows[i].State = RowAdded
		err = nil
	default:
		log.Println("Association failed", id, err)
		p.rows[i].State, p.rows[i].Error = RowFailed, err.Error()
	}
	return p.rows[i], err
}

func (p *Picker) find(id string) int {
	for i := range p.rows {
		if p.rows[i].ID == id {
			return i
		}
	}
	return -1
}

func stateOf(added bool) RowState {
	if added {
		return RowAdded
	}
	return RowIdle
}
