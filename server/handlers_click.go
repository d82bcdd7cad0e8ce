package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swayops/portal/internal/api"
	"github.com/swayops/portal/internal/templates"
	"github.com/swayops/portal/internal/tracking"
	"github.com/swayops/portal/misc"
)

func click(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := s.resolver.Resolve(c.Request.Context(), c.Param("code"), api.Visit{
			Referrer:  c.Request.Referer(),
			UserAgent: c.Request.UserAgent(),
		})

		code := http.StatusNotFound
		switch out.State {
		case tracking.StateRedirect:
			c.Redirect(http.StatusFound, out.URL)
			return
		case tracking.StateMisconfigured:
			code = http.StatusUnprocessableEntity
		}

		// browsers get a page, everything else the usual JSON
		if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
			c.Data(code, "text/html; charset=utf-8", []byte(templates.LinkErrorPage("Link unavailable", out.Message)))
			return
		}
		misc.WriteJSON(c, code, misc.StatusErr(out.Message))
	}
}
