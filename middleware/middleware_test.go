package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/glucotrack/glucotrack-api/app"
	"github.com/glucotrack/glucotrack-api/testutil"
)

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/test", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), RequestIDHeader)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDatabaseAndServicesMiddleware(t *testing.T) {
	db := testutil.NewTestDB(t, "middleware_injection")
	services := app.New(app.Deps{DB: db})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(DatabaseMiddleware(db), ServicesMiddleware(services))
	r.GET("/test", func(c *gin.Context) {
		assert.NotNil(t, GetDB(c))
		assert.Same(t, services, GetServices(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGettersWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetDB(c))
	assert.Nil(t, GetServices(c))
}
