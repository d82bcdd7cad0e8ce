package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/swayops/portal/internal/api"
	"github.com/swayops/portal/misc"
)

///////// Contracts /////////

func listContracts(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cts, err := brandClient(c).ListContracts(c.Request.Context())
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, orEmpty(cts))
	}
}

func postContract(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in api.ContractInput
		if err := misc.BindJSON(c, &in); err != nil {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrBadBody)
			return
		}
		ct, err := brandClient(c).CreateContract(c.Request.Context(), in)
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, misc.StatusOK(ct.ID))
	}
}

func getContract(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct, err := brandClient(c).GetContract(c.Request.Context(), c.Param("id"))
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ct)
	}
}

func putContract(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in api.ContractInput
		if err := misc.BindJSON(c, &in); err != nil {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrBadBody)
			return
		}
		ct, err := brandClient(c).UpdateContract(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, misc.StatusOK(ct.ID))
	}
}

func delContract(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := brandClient(c).DeleteContract(c.Request.Context(), id); err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, misc.StatusOK(id))
	}
}

func sendContract(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in api.SendContractInput
		if err := misc.BindJSON(c, &in); err != nil {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrBadBody)
			return
		}
		sc, err := brandClient(c).SendContract(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, sc)
	}
}

func contractStatus(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, err := brandClient(c).ContractStatus(c.Request.Context(), c.Param("influencerId"), c.Param("campaignId"))
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, sc)
	}
}

///////// Campaigns /////////

func listCampaigns(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmps, err := brandClient(c).ListCampaigns(c.Request.Context())
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, orEmpty(cmps))
	}
}

func campaignContracts(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cts, err := brandClient(c).CampaignContracts(c.Request.Context(), c.Param("id"))
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, orEmpty(cts))
	}
}

func campaignLinks(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		links, err := brandClient(c).CampaignTrackingLinks(c.Request.Context(), c.Param("id"))
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, orEmpty(links))
	}
}

///////// Tracking links /////////

func generateLink(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in api.GenerateLinkInput
		if err := misc.BindJSON(c, &in); err != nil {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrBadBody)
			return
		}
		l, err := brandClient(c).GenerateTrackingLink(c.Request.Context(), in)
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, l)
	}
}

func getLink(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := brandClient(c).GetTrackingLink(c.Request.Context(), c.Param("id"))
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, l)
	}
}

func putLink(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in api.UpdateLinkInput
		if err := misc.BindJSON(c, &in); err != nil {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrBadBody)
			return
		}
		l, err := brandClient(c).UpdateTrackingLink(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, l)
	}
}

func delLink(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := brandClient(c).DeleteTrackingLink(c.Request.Context(), id); err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, misc.StatusOK(id))
	}
}

func putPostStatus(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Status api.PostStatus `json:"status"`
		}
		if err := misc.BindJSON(c, &in); err != nil {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrBadBody)
			return
		}
		post, err := brandClient(c).SetPostStatus(c.Request.Context(), c.Param("id"), c.Param("postId"), in.Status)
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

func putPostMetrics(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var m api.Metrics
		if err := misc.BindJSON(c, &m); err != nil {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrBadBody)
			return
		}
		post, err := brandClient(c).SetPostMetrics(c.Request.Context(), c.Param("id"), c.Param("postId"), m)
		if err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

func delPost(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("postId")
		if err := brandClient(c).DeletePost(c.Request.Context(), c.Param("id"), id); err != nil {
			apiErr(c, err)
			return
		}
		c.JSON(http.StatusOK, misc.StatusOK(id))
	}
}

///////// Influencers /////////

func listInfluencers(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))
		lim, _ := strconv.Atoi(c.Query("limit"))
		out, err := brandClient(c).SearchInfluencers(c.Request.Context(), c.Query("search"), page, lim)
		if err != nil {
			apiErr(c, err)
			return
		}
		if out.Influencers == nil {
			out.Influencers = []api.Influencer{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
