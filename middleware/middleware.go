package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack-api/app"
)

const (
	dbKey       = "db"
	servicesKey = "services"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization, "+RequestIDHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// DatabaseMiddleware makes db available to handlers through GetDB.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, db)
		c.Next()
	}
}

// GetDB returns the request-scoped database handle, or nil when
// DatabaseMiddleware is not installed.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbKey)
	if !ok {
		return nil
	}
	db, _ := v.(*gorm.DB)
	if db == nil {
		return nil
	}
	return db.WithContext(c.Request.Context())
}

// ServicesMiddleware stores s in the context for handlers.
func ServicesMiddleware(s *app.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(servicesKey, s)
		c.Next()
	}
}

// GetServices returns the services set by ServicesMiddleware, or nil.
func GetServices(c *gin.Context) *app.Services {
	v, ok := c.Get(servicesKey)
	if !ok {
		return nil
	}
	s, _ := v.(*app.Services)
	return s
}
