// Package response implements the uniform JSON envelope every endpoint
// returns: a success flag, an optional message, and either the payload keys or
// an error description.
package response

import "github.com/gin-gonic/gin"

func OK(c *gin.Context, payload gin.H) {
	write(c, 200, "", payload)
}

func Created(c *gin.Context, message string, payload gin.H) {
	write(c, 201, message, payload)
}

func Message(c *gin.Context, message string, payload gin.H) {
	write(c, 200, message, payload)
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// FailWith surfaces the underlying error next to the message. Acceptable only
// because this API runs in an internal, non-adversarial scope.
func FailWith(c *gin.Context, status int, message string, err error) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}

func write(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}
