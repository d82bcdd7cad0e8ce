package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swayops/portal/internal/api"
	"github.com/swayops/portal/internal/tracking"
	"github.com/swayops/portal/misc"
)

// submissionCode accepts /submit?code=X, /submit/X, /submit/slug/X and
// /s/any/path/X, where only the path is known.
func submissionCode(c *gin.Context) (string, error) {
	p := tracking.Params{Code: c.Query("code"), Path: c.Request.URL.Path}
	switch slug, code := c.Param("slug"), c.Param("code"); {
	case code != "":
		p.Code, p.Slug = code, slug
	case slug != "" && p.Code == "":
		p.Code = slug
	default:
		p.Slug = slug
	}
	return tracking.CodeFromParams(p)
}

func getSubmission(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		code, err := submissionCode(c)
		if err != nil {
			misc.AbortWithErr(c, http.StatusNotFound, tracking.ErrInvalidLink)
			return
		}

		f, err := tracking.OpenForm(c.Request.Context(), s.API, code)
		if err != nil {
			formErr(c, err)
			return
		}
		c.JSON(http.StatusOK, f.View())
	}
}

func postSubmission(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		code, err := submissionCode(c)
		if err != nil {
			misc.AbortWithErr(c, http.StatusNotFound, tracking.ErrInvalidLink)
			return
		}

		var in api.PostInput
		if err := misc.BindJSON(c, &in); err != nil {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrBadBody)
			return
		}
		// nothing leaves the portal until the input checks out
		if in, err = tracking.Validate(in); err != nil {
			misc.AbortWithErr(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		f, err := tracking.OpenForm(ctx, s.API, code)
		if err != nil {
			formErr(c, err)
			return
		}
		if _, err := f.Submit(ctx, in); err != nil {
			formErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, f.View())
	}
}

func formErr(c *gin.Context, err error) {
	if errors.Is(err, tracking.ErrInvalidLink) {
		misc.AbortWithErr(c, http.StatusNotFound, err)
		return
	}
	apiErr(c, err)
}
