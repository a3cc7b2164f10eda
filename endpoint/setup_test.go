package endpoint

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/glucotrack/glucotrack-api/config"
)

// TestMain pins the environment before the config singleton is loaded.
func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	os.Setenv("GINMODE", "release")

	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	os.Exit(m.Run())
}
