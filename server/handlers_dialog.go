package server

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/swayops/portal/internal/dialog"
	"github.com/swayops/portal/misc"
)

const maxDialogs = 4096

// dialogSet keeps the open pickers so row state survives between the list
// and the selection requests. Pickers are scoped to a profile.
type dialogSet struct {
	m map[string]*dialog.Picker
	l sync.Mutex
}

func newDialogSet() *dialogSet {
	return &dialogSet{m: make(map[string]*dialog.Picker)}
}

// get returns the picker under key, created reports whether it was just made.
func (ds *dialogSet) get(key string, mk func() *dialog.Picker) (p *dialog.Picker, created bool) {
	ds.l.Lock()
	defer ds.l.Unlock()
	if p, ok := ds.m[key]; ok {
		return p, false
	}
	if len(ds.m) >= maxDialogs {
		ds.m = make(map[string]*dialog.Picker)
	}
	p = mk()
	ds.m[key] = p
	return p, true
}

func (ds *dialogSet) clear(profile string) {
	ds.l.Lock()
	for k := range ds.m {
		if strings.HasPrefix(k, profile+"|") {
			delete(ds.m, k)
		}
	}
	ds.l.Unlock()
}

func campaignPicker(s *Server, c *gin.Context) (*dialog.Picker, bool) {
	inf := c.Param("id")
	return s.dialogs.get(profileID(c)+"|campaigns|"+inf, func() *dialog.Picker {
		return dialog.NewCampaignPicker(brandClient(c), inf)
	})
}

func contractPicker(s *Server, c *gin.Context) (*dialog.Picker, bool) {
	inf, cmp := c.Param("id"), c.Query("campaignId")
	return s.dialogs.get(profileID(c)+"|contracts|"+inf+"|"+cmp, func() *dialog.Picker {
		return dialog.NewContractPicker(brandClient(c), inf, cmp)
	})
}

func campaignDialog(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := campaignPicker(s, c)
		listDialog(c, p)
	}
}

func contractDialog(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := contractPicker(s, c)
		listDialog(c, p)
	}
}

func addToCampaign(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, created := campaignPicker(s, c)
		selectDialog(c, p, created, c.Param("campaignId"))
	}
}

func sendToInfluencer(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, created := contractPicker(s, c)
		selectDialog(c, p, created, c.Param("contractId"))
	}
}

// listDialog reloads the candidates every time the dialog is opened or
// searched, the filter itself runs locally.
func listDialog(c *gin.Context, p *dialog.Picker) {
	if err := p.Load(c.Request.Context()); err != nil {
		apiErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Filter(c.Query("q")))
}

func selectDialog(c *gin.Context, p *dialog.Picker, created bool, id string) {
	ctx := c.Request.Context()
	if created {
		if err := p.Load(ctx); err != nil {
			apiErr(c, err)
			return
		}
	}

	row, err := p.Select(ctx, id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, row)
	case errors.Is(err, dialog.ErrUnknownCandidate):
		misc.AbortWithErr(c, http.StatusNotFound, err)
	case errors.Is(err, dialog.ErrPending), errors.Is(err, dialog.ErrAlreadyAdded):
		misc.AbortWithErr(c, http.StatusConflict, err)
	default:
		apiErr(c, err)
	}
}
