package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swayops/portal/internal/api"
	"github.com/swayops/portal/internal/contract"
	"github.com/swayops/portal/misc"
)

// getResponse serves the response page. An action in the query is applied
// right away, once, if the contract is still pending.
func getResponse(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page := contract.Load(ctx, s.API, c.Param("token"))
		if err := page.AutoApply(ctx, c.Query("action")); err != nil {
			log.Println("Auto apply failed", c.Query("action"), err)
		}
		v := page.View()
		c.JSON(viewCode(v.State), v)
	}
}

func postResponse(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Action api.ContractAction `json:"action"`
		}
		if err := misc.BindJSON(c, &req); err != nil {
			misc.AbortWithErr(c, http.StatusBadRequest, ErrBadBody)
			return
		}
		if !req.Action.Valid() {
			misc.AbortWithErr(c, http.StatusBadRequest, api.Invalid("action", "must be one of accept, reject or connect"))
			return
		}

		page := contract.Load(c.Request.Context(), s.API, c.Param("token"))
		err := page.Respond(c.Request.Context(), req.Action)
		v := page.View()
		switch {
		case err == nil:
			c.JSON(http.StatusOK, v)
		case errors.Is(err, contract.ErrAlreadyResponded):
			c.JSON(http.StatusConflict, v)
		case errors.Is(err, contract.ErrNotFound):
			c.JSON(viewCode(v.State), v)
		default:
			apiErr(c, err)
		}
	}
}

func viewCode(st contract.State) int {
	switch st {
	case contract.StateNotFound:
		return http.StatusNotFound
	case contract.StateFailed:
		return http.StatusBadGateway
	}
	return http.StatusOK
}
