package response

import "github.com/gin-gonic/gin"

// Body is the envelope every endpoint answers with. The storefront client
// reads success/message/data, so the keys are fixed.
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Success(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, Body{Success: true, Message: msg, Data: data})
}

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, errBody{Success: false, Message: msg})
}
