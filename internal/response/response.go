// Package response writes the public wire shapes of the API. The
// submission endpoint predates this service and its JSON bodies are load
// bearing for deployed clients, so the helpers here keep them exact:
// errors are {"error": ...} with an optional "detail", successes carry
// "ok": true.
package response

import "github.com/gin-gonic/gin"

// Error sends an error body with the caller-facing message.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// ErrorWithDetail sends an error body with a diagnostic detail string.
// Detail is only for errors that are safe to echo (storage failures);
// validation errors use Error.
func ErrorWithDetail(c *gin.Context, statusCode int, message, detail string) {
	c.JSON(statusCode, gin.H{"error": message, "detail": detail})
}

// OK sends a success body, forcing "ok": true alongside the given fields.
func OK(c *gin.Context, statusCode int, fields gin.H) {
	body := gin.H{"ok": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(statusCode, body)
}
