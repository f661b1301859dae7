package transport

import (
	"net/http"

	"github.com/alex-pricope/roomvote/api/models"
	"github.com/alex-pricope/roomvote/logging"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine the in-process session service runs on.
func NewRouter(ginMode string) *gin.Engine {
	gin.SetMode(ginMode)
	engine := gin.New()
	engine.Use(RequestLogMiddleware())

	engine.NoRoute(NoRouteHandler())

	return engine
}

// RequestLogMiddleware echoes the caller's request id and logs the exchange.
func RequestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(models.HeaderRequestID)
		if id != "" {
			c.Writer.Header().Set(models.HeaderRequestID, id)
		}

		c.Next()

		logging.Log.Debugf("SERVICE: %s %s [%s] -> %d", c.Request.Method, c.Request.URL.Path, id, c.Writer.Status())
	}
}

func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logging.Log.Infof("No routed request received for:%s", c.Request.URL.Path)
		c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
	}
}

// AuthMiddleware guards owner-only routes with a shared token.
func AuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(models.HeaderAuthToken)

		if token == "" || token != expected {
			logging.Log.Warnf("SERVICE: Unauthorized access attempt to %s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, &models.ErrorResponse{Message: "Unauthorized or room not found."})
			return
		}
		c.Next()
	}
}
