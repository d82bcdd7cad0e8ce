package server

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/swayops/portal/internal/api"
	"github.com/swayops/portal/internal/search"
)

const debouncerKey = "debouncer"

type searchReply struct {
	Query   string             `json:"query"`
	Results *api.SearchResults `json:"results,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// newSearchSocket wires the header search box. Every message is the box's
// current text; each connection gets its own debouncer so only the answer
// to the latest text is pushed back.
func newSearchSocket(s *Server) *melody.Melody {
	m := melody.New()
	m.Config.MaxMessageSize = 1024
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(sess *melody.Session) {
		v, _ := sess.Get(clientKey)
		client, ok := v.(*api.Client)
		if !ok {
			sess.Close()
			return
		}

		run := func(ctx context.Context, q string) (interface{}, error) {
			if q == "" {
				return &api.SearchResults{Campaigns: []api.Campaign{}, Influencers: []api.Influencer{}}, nil
			}
			return client.Search(ctx, q)
		}
		deliver := func(res search.Result) {
			out := searchReply{Query: res.Query}
			if res.Err != nil {
				out.Error = res.Err.Error()
			} else {
				out.Results, _ = res.Value.(*api.SearchResults)
			}
			b, err := json.Marshal(out)
			if err != nil {
				log.Println("Failed to marshal search reply", err)
				return
			}
			if err := sess.Write(b); err != nil {
				log.Println("Failed to push search reply", err)
			}
		}
		sess.Set(debouncerKey, search.NewDebouncer(s.Cfg.Debounce(), run, deliver))
	})

	m.HandleMessage(func(sess *melody.Session, msg []byte) {
		if d, ok := sess.Get(debouncerKey); ok {
			d.(*search.Debouncer).Input(strings.TrimSpace(string(msg)))
		}
	})

	m.HandleDisconnect(func(sess *melody.Session) {
		if d, ok := sess.Get(debouncerKey); ok {
			d.(*search.Debouncer).Stop()
		}
	})

	m.HandleError(func(sess *melody.Session, err error) {
		log.Println("Search socket error", err)
	})

	return m
}

func searchSocket(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		keys := map[string]interface{}{
			profileKey: profileID(c),
			clientKey:  brandClient(c),
		}
		if err := s.ws.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
			log.Println("Failed to upgrade search socket", err)
		}
	}
}
