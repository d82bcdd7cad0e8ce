package misc

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

func BindJSON(c *gin.Context, v interface{}) error {
	body := c.Request.Body
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

func WriteJSON(c *gin.Context, code int, v interface{}) error {
	c.Writer.Header().Set("Content-Type", gin.MIMEJSON)
	c.Status(code)
	return json.NewEncoder(c.Writer).Encode(v)
}

type Status struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
	Msg    string `json:"msg,omitempty"`
}

func StatusOK(id string) Status {
	return Status{Status: "success", ID: id}
}

func StatusErr(msg string) Status {
	return Status{Status: "error", Msg: msg}
}

func AbortWithErr(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, StatusErr(err.Error()))
}
