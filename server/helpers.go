package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/swayops/portal/internal/api"
	"github.com/swayops/portal/misc"
)

const (
	profileCookie = "sway_profile"
	profileTTL    = 365 * 24 * time.Hour

	profileKey = "profile"
	clientKey  = "apiClient"
)

var (
	ErrTooMany     = errors.New("Too many requests, slow down!")
	ErrNotLoggedIn = errors.New("Not logged in!")
	ErrBadBody     = errors.New("Error unmarshalling request body")
	ErrMissingID   = errors.New("Missing id")
)

// profile makes sure every visitor carries a profile id. It's what local
// state (referral code, shortlist, credentials) is keyed by.
func profile(s *Server) gin.HandlerFunc {
	secure := !s.Cfg.Sandbox
	return func(c *gin.Context) {
		id := misc.GetCookie(c.Request, profileCookie)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			misc.SetCookie(c.Writer, s.Cfg.Domain, profileCookie, id, secure, profileTTL)
		} else {
			misc.RefreshCookie(c.Writer, c.Request, s.Cfg.Domain, profileCookie, secure, profileTTL)
		}
		c.Set(profileKey, id)
	}
}

func profileID(c *gin.Context) string {
	return c.GetString(profileKey)
}

func limit(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		if wait, ok := s.LimitSet.Allow(c.ClientIP()); !ok {
			c.Header("Retry-After", strconv.Itoa(int(wait.Round(time.Second)/time.Second)))
			misc.AbortWithErr(c, http.StatusTooManyRequests, ErrTooMany)
		}
	}
}

// brandOnly needs saved credentials and hands the handlers a client that
// uses them. The client clears them itself when the API rejects the token.
func brandOnly(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		creds := s.Store.Credentials(profileID(c))
		tok, err := creds.Token()
		if err != nil {
			log.Println("Failed to read credentials", err)
			misc.AbortWithErr(c, http.StatusInternalServerError, err)
			return
		}
		if tok == "" {
			misc.AbortWithErr(c, http.StatusUnauthorized, ErrNotLoggedIn)
			return
		}
		c.Set(clientKey, s.API.WithCredentials(creds))
	}
}

func brandClient(c *gin.Context) *api.Client {
	return c.MustGet(clientKey).(*api.Client)
}

// errCode maps an API client error to the status we reply with.
func errCode(err error) int {
	switch {
	case api.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, api.ErrNetwork), errors.Is(err, api.ErrEmptyReply):
		return http.StatusBadGateway
	}
	if st := api.StatusOf(err); st >= 400 && st < 500 {
		return st
	}
	return http.StatusBadGateway
}

func apiErr(c *gin.Context, err error) {
	code := errCode(err)
	if code >= 500 {
		log.Println("API error", c.Request.Method, c.Request.URL.Path, err)
	}
	misc.AbortWithErr(c, code, err)
}
