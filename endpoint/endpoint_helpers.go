package endpoint

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glucotrack/glucotrack-api/app"
	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/middleware"
	"github.com/glucotrack/glucotrack-api/util"
)

// ensureServices writes a server error and returns nil when the services
// middleware is missing.
func ensureServices(c *gin.Context) *app.Services {
	s := middleware.GetServices(c)
	if s == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Services not available",
			Err: fmt.Errorf("services are nil"),
		})
	}
	return s
}

// respondError answers with the status carried by err and attaches err to
// the context for the access log.
func respondError(c *gin.Context, msg string, err error) {
	_ = c.Error(err)
	util.CallError(c, util.APIErrorParams{Msg: msg, Err: err})
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", apperr.BadRequest, name, raw)
	}
	return uint(id), nil
}

func idParam(c *gin.Context, name string) (uint, error) {
	return parseID(c.Param(name), name)
}

func idQuery(c *gin.Context, name string) (uint, error) {
	return parseID(c.Query(name), name)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return false
	}
	return true
}

// intQuery reads an optional integer query parameter.
func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", apperr.BadRequest, name, raw)
	}
	return v, nil
}

func boolQuery(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: invalid %s %q", apperr.BadRequest, name, raw)
	}
	return v, nil
}
