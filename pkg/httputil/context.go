package httputil

import "github.com/gin-gonic/gin"

type contextKey string

// ContextURL is the key the base URL of the API is stored with in the gin context.
const ContextURL contextKey = "baseURL"

// URL returns the base URL of the API for the request.
func URL(c *gin.Context) string {
	return c.GetString(string(ContextURL))
}
