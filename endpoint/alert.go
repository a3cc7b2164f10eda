package endpoint

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/glucotrack/glucotrack-api/alert"
	"github.com/glucotrack/glucotrack-api/util"
)

type createGlycemiaAlertRequest struct {
	UserID     uint      `json:"user_id" binding:"required"`
	Value      int       `json:"value" binding:"required"`
	MeasuredAt time.Time `json:"measured_at"`
	Level      string    `json:"level"`
	Message    string    `json:"message"`
}

// CreateGlycemiaAlert godoc
// @Summary      Raise a glycemia alert
// @Description  Classifies the reading, skips duplicates of the same day and fans the alert out to its recipients
// @Tags         Alert
// @Accept       json
// @Produce      json
// @Param        request body createGlycemiaAlertRequest true "Reading to alert on"
// @Success      201 {object} util.APIResponse{data=alert.Outcome} "Alert created"
// @Success      200 {object} util.APIResponse{data=alert.Outcome} "No alert created, see reason"
// @Failure      400 {object} util.APIResponse "Invalid reading"
// @Failure      404 {object} util.APIResponse "Unknown alert type"
// @Failure      422 {object} util.APIResponse "No recipients"
// @Failure      429 {object} util.APIResponse "Rate limited"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /alert/glycemia [post]
func CreateGlycemiaAlert(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	var req createGlycemiaAlertRequest
	if !bindJSON(c, &req) {
		return
	}

	outcome, err := s.Alerts.CreateGlycemiaAlert(c.Request.Context(), alert.GlycemiaAlertRequest{
		SubjectID:  req.UserID,
		Value:      req.Value,
		MeasuredAt: req.MeasuredAt,
		Level:      req.Level,
		Message:    req.Message,
	})
	if err != nil {
		respondError(c, "Failed to create glycemia alert", err)
		return
	}
	if !outcome.Created {
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "No alert created", Data: outcome})
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Alert created", Data: outcome})
}

// ListUserAlerts godoc
// @Summary      List alerts addressed to a user
// @Tags         Alert
// @Produce      json
// @Param        userId query int true "Recipient user id"
// @Param        onlyOpen query bool false "Only alerts not yet resolved"
// @Success      200 {object} util.APIResponse{data=[]model.RecipientAlert} "Alerts retrieved"
// @Failure      400 {object} util.APIResponse "Invalid user id"
// @Failure      404 {object} util.APIResponse "User not found"
// @Router       /alert/user-alerts [get]
func ListUserAlerts(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	userID, err := idQuery(c, "userId")
	if err != nil {
		respondError(c, "Invalid user id", err)
		return
	}
	onlyOpen, _ := strconv.ParseBool(c.DefaultQuery("onlyOpen", "false"))

	alerts, err := s.Inbox.ListForRecipient(c.Request.Context(), userID, onlyOpen)
	if err != nil {
		respondError(c, "Failed to retrieve alerts", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Alerts retrieved", Data: alerts})
}

// ResolveAlert godoc
// @Summary      Resolve an alert
// @Description  Marks the recipient's copy read and the alert resolved for everyone
// @Tags         Alert
// @Produce      json
// @Param        id path int true "Alert recipient id"
// @Success      200 {object} util.APIResponse "Alert resolved"
// @Failure      404 {object} util.APIResponse "Alert recipient not found"
// @Router       /alert/recipient/{id}/resolve [patch]
func ResolveAlert(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		respondError(c, "Invalid alert recipient id", err)
		return
	}
	if err := s.Inbox.Resolve(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to resolve alert", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Alert resolved", Data: gin.H{"alert_recipient_id": id}})
}

// MarkAlertRead godoc
// @Summary      Mark an alert read
// @Tags         Alert
// @Produce      json
// @Param        id path int true "Alert recipient id"
// @Success      200 {object} util.APIResponse "Alert marked read"
// @Failure      404 {object} util.APIResponse "Alert recipient not found"
// @Router       /alert/recipient/{id}/read [patch]
func MarkAlertRead(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		respondError(c, "Invalid alert recipient id", err)
		return
	}
	if err := s.Inbox.MarkRead(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to mark alert read", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Alert marked read", Data: gin.H{"alert_recipient_id": id}})
}
