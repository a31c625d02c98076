package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Message is the body every non-payload response carries.
// swagger:model
type Message struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Message{Message: msg})
}

// Internal maps an unexpected store failure to a 500 with the diagnostic
// detail alongside the safe message.
func Internal(c *gin.Context, msg string, err error) {
	body := Message{Message: msg}
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
