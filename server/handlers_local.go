package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/swayops/portal/internal/common"
	"github.com/swayops/portal/misc"
)

func getReferral(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		code, err := s.Store.Referrals.Code(profileID(c))
		if err != nil {
			misc.AbortWithErr(c, http.StatusInternalServerError, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": code})
	}
}

///////// Shortlist /////////

func getShortlist(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := s.Store.Shortlist.List(profileID(c))
		if err != nil {
			misc.AbortWithErr(c, http.StatusInternalServerError, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ids": ids})
	}
}

// putShortlist adds several influencers at once.
func putShortlist(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDs []string `json:"ids"`
		}
		if err := misc.BindJSON(c, &req); err != nil {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrBadBody)
			return
		}

		prof := profileID(c)
		for _, id := range common.CleanIDs(req.IDs) {
			if _, err := s.Store.Shortlist.Add(prof, id); err != nil {
				misc.AbortWithErr(c, http.StatusInternalServerError, err)
				return
			}
		}
		shortlist(s, c, nil)
	}
}

func addShortlist(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrMissingID)
			return
		}
		added, err := s.Store.Shortlist.Add(profileID(c), id)
		if err != nil {
			misc.AbortWithErr(c, http.StatusInternalServerError, err)
			return
		}
		shortlist(s, c, gin.H{"added": added})
	}
}

func delShortlist(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed, err := s.Store.Shortlist.Remove(profileID(c), c.Param("id"))
		if err != nil {
			misc.AbortWithErr(c, http.StatusInternalServerError, err)
			return
		}
		shortlist(s, c, gin.H{"removed": removed})
	}
}

func clearShortlist(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.Store.Shortlist.Clear(profileID(c)); err != nil {
			misc.AbortWithErr(c, http.StatusInternalServerError, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ids": []string{}})
	}
}

func shortlist(s *Server, c *gin.Context, out gin.H) {
	ids, err := s.Store.Shortlist.List(profileID(c))
	if err != nil {
		misc.AbortWithErr(c, http.StatusInternalServerError, err)
		return
	}
	if out == nil {
		out = gin.H{}
	}
	out["ids"] = ids
	c.JSON(http.StatusOK, out)
}

///////// Session /////////

func getSession(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := s.Store.Credentials(profileID(c)).Token()
		if err != nil {
			misc.AbortWithErr(c, http.StatusInternalServerError, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"loggedIn": tok != ""})
	}
}

func putSession(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Token string `json:"token"`
		}
		if err := misc.BindJSON(c, &req); err != nil {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrBadBody)
			return
		}
		if req.Token = strings.TrimSpace(req.Token); req.Token == "" {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrNotLoggedIn)
			return
		}

		prof := profileID(c)
		if err := s.Store.Credentials(prof).Set(req.Token); err != nil {
			misc.AbortWithErr(c, http.StatusInternalServerError, err)
			return
		}
		s.dialogs.clear(prof)
		c.JSON(http.StatusOK, misc.StatusOK(prof))
	}
}

func delSession(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		prof := profileID(c)
		if err := s.Store.Credentials(prof).Clear(); err != nil {
			misc.AbortWithErr(c, http.StatusInternalServerError, err)
			return
		}
		s.dialogs.clear(prof)
		c.JSON(http.StatusOK, misc.StatusOK(prof))
	}
}
