package endpoint

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack-api/app"
	"github.com/glucotrack/glucotrack-api/docs"
	"github.com/glucotrack/glucotrack-api/middleware"
	"github.com/glucotrack/glucotrack-api/util"
)

// RouterConfig carries the router settings read from configuration.
type RouterConfig struct {
	AppName        string
	AlertRateLimit int
	RateWindow     time.Duration
}

// NewRouter registers every route of the API on a fresh engine.
func NewRouter(db *gorm.DB, services *app.Services, cfg RouterConfig) *gin.Engine {
	docs.SwaggerInfo.Title = cfg.AppName
	if docs.SwaggerInfo.Title == "" {
		docs.SwaggerInfo.Title = "GlucoTrack API"
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.EndpointCallLogger(services.Log),
		middleware.CORSMiddleware(),
		middleware.DatabaseMiddleware(db),
		middleware.ServicesMiddleware(services),
	)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", docs.SwaggerInfo.Title),
		})
	})
	router.GET("/healthz", Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	alerts := router.Group("/alert")
	{
		alerts.POST("/glycemia", middleware.RateLimiter(middleware.RateLimitConfig{
			Limit:  cfg.AlertRateLimit,
			Window: cfg.RateWindow,
			Log:    services.Log,
		}), CreateGlycemiaAlert)
		alerts.GET("/user-alerts", ListUserAlerts)
		alerts.PATCH("/recipient/:id/resolve", ResolveAlert)
		alerts.PATCH("/recipient/:id/read", MarkAlertRead)
	}

	doctor := router.Group("/doctor")
	{
		doctor.GET("/dashboard", GetDoctorDashboard)
		doctor.GET("/patient-analytics", GetPatientAnalytics)
		doctor.GET("/recent-therapies", ListRecentTherapies)
		doctor.POST("/therapy", SaveTherapy)
		doctor.GET("/therapy/:id", GetTherapy)
		doctor.GET("/therapy/:id/history", GetTherapyHistory)
		doctor.PATCH("/therapy/:id/close", CloseTherapy)
		doctor.DELETE("/therapy/:id", DeleteTherapy)
		doctor.GET("/patients", SearchPatients)
		doctor.POST("/clinical-profile", UpdateClinicalProfile)
		doctor.DELETE("/patient/:userId/comorbidity/:id", DeleteComorbidity)
		doctor.DELETE("/patient/:userId/risk-factor/:riskFactorId", DeleteRiskFactor)
	}

	patient := router.Group("/patient")
	{
		patient.POST("/glycemic-log", AddGlycemicLog)
		patient.GET("/glycemic-log/:id", GetGlycemicLog)
		patient.DELETE("/glycemic-log/:id", DeleteGlycemicLog)
		patient.POST("/medication-log", AddMedicationLog)
		patient.POST("/symptom-log", AddSymptomLog)
		patient.GET("/symptom-log/:id", GetSymptomLog)
		patient.DELETE("/symptom-log/:id", DeleteSymptomLog)
		patient.GET("/glycemic-resume", GetGlycemicResume)
		patient.GET("/daily-resume", GetDailyResume)
		patient.GET("/therapies", ListActiveTherapies)
	}

	return router
}

// Health godoc
// @Summary      Liveness and database check
// @Tags         System
// @Produce      json
// @Success      200 {object} util.APIResponse "Healthy"
// @Failure      500 {object} util.APIResponse "Database unreachable"
// @Router       /healthz [get]
func Health(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database unreachable", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "ok", Data: gin.H{"status": "up"}})
}
