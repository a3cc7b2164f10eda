package endpoint

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/patientlog"
	"github.com/glucotrack/glucotrack-api/util"
)

// AddGlycemicLog godoc
// @Summary      Add or update a glucose reading
// @Description  A new reading is classified and may raise an alert; the outcome is returned with the reading
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        request body patientlog.GlycemicLogRequest true "Reading"
// @Success      200 {object} util.APIResponse{data=patientlog.GlycemicLogResult} "Reading saved"
// @Failure      400 {object} util.APIResponse "Invalid reading"
// @Failure      404 {object} util.APIResponse "User or reading not found"
// @Router       /patient/glycemic-log [post]
func AddGlycemicLog(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	var req patientlog.GlycemicLogRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := s.Logs.LogGlycemia(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to save glycemic log", err)
		return
	}
	msg := "Glycemic log added"
	if result.Updated {
		msg = "Glycemic log updated"
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: msg, Data: result})
}

// AddMedicationLog godoc
// @Summary      Record a medication intake
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        request body patientlog.MedicationLogRequest true "Intake"
// @Success      201 {object} util.APIResponse{data=model.MedicationIntake} "Intake saved"
// @Failure      400 {object} util.APIResponse "Invalid intake"
// @Router       /patient/medication-log [post]
func AddMedicationLog(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	var req patientlog.MedicationLogRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := s.Logs.LogMedication(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to save medication log", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Medication log added", Data: in})
}

// AddSymptomLog godoc
// @Summary      Record a symptom
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        request body patientlog.SymptomLogRequest true "Symptom"
// @Success      201 {object} util.APIResponse{data=model.Symptom} "Symptom saved"
// @Failure      400 {object} util.APIResponse "Invalid symptom"
// @Router       /patient/symptom-log [post]
func AddSymptomLog(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	var req patientlog.SymptomLogRequest
	if !bindJSON(c, &req) {
		return
	}
	sym, err := s.Logs.LogSymptom(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to save symptom log", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Symptom log added", Data: sym})
}

// GetGlycemicResume godoc
// @Summary      Daily glucose averages of the last seven days
// @Tags         Patient
// @Produce      json
// @Param        userId query int true "Patient id"
// @Success      200 {object} util.APIResponse{data=[]patientlog.DayAverage} "Resume retrieved"
// @Failure      400 {object} util.APIResponse "Invalid patient id"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patient/glycemic-resume [get]
func GetGlycemicResume(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	userID, err := idQuery(c, "userId")
	if err != nil {
		respondError(c, "Invalid patient id", err)
		return
	}
	resume, err := s.Logs.GlycemicResume(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to build glycemic resume", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Resume retrieved", Data: resume})
}

// ListActiveTherapies godoc
// @Summary      Therapies the patient follows today
// @Tags         Patient
// @Produce      json
// @Param        userId query int true "Patient id"
// @Success      200 {object} util.APIResponse{data=[]model.Therapy} "Therapies retrieved"
// @Router       /patient/therapies [get]
func ListActiveTherapies(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	userID, err := idQuery(c, "userId")
	if err != nil {
		respondError(c, "Invalid patient id", err)
		return
	}
	therapies, err := s.Therapies.ActiveFor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to retrieve therapies", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Therapies retrieved", Data: therapies})
}

// GetDailyResume godoc
// @Summary      Everything a patient logged on one day
// @Tags         Patient
// @Produce      json
// @Param        userId query int true "Patient id"
// @Param        date query string true "Day, yyyy-mm-dd"
// @Success      200 {object} util.APIResponse{data=patientlog.DayLog} "Daily resume retrieved"
// @Failure      400 {object} util.APIResponse "Invalid parameters"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patient/daily-resume [get]
func GetDailyResume(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	userID, err := idQuery(c, "userId")
	if err != nil {
		respondError(c, "Invalid patient id", err)
		return
	}
	day, err := time.Parse(clock.DayLayout, c.Query("date"))
	if err != nil {
		respondError(c, "Invalid date", fmt.Errorf("%w: date must use yyyy-mm-dd", apperr.BadRequest))
		return
	}
	resume, err := s.Logs.DailyResume(c.Request.Context(), userID, day)
	if err != nil {
		respondError(c, "Failed to build daily resume", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Daily resume retrieved", Data: resume})
}

// GetGlycemicLog godoc
// @Summary      Get one glucose reading
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Measurement id"
// @Param        userId query int true "Patient id"
// @Success      200 {object} util.APIResponse{data=model.GlycemicMeasurement} "Glycemic log retrieved"
// @Failure      404 {object} util.APIResponse "Measurement not found"
// @Router       /patient/glycemic-log/{id} [get]
func GetGlycemicLog(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	userID, id, err := ownedRecordIDs(c)
	if err != nil {
		respondError(c, "Invalid parameters", err)
		return
	}
	m, err := s.Logs.GetGlycemicMeasurement(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, "Failed to retrieve glycemic log", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Glycemic log retrieved", Data: m})
}

// DeleteGlycemicLog godoc
// @Summary      Delete one glucose reading
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Measurement id"
// @Param        userId query int true "Patient id"
// @Success      200 {object} util.APIResponse "Glycemic log deleted"
// @Failure      404 {object} util.APIResponse "Measurement not found"
// @Router       /patient/glycemic-log/{id} [delete]
func DeleteGlycemicLog(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	userID, id, err := ownedRecordIDs(c)
	if err != nil {
		respondError(c, "Invalid parameters", err)
		return
	}
	if err := s.Logs.DeleteGlycemicMeasurement(c.Request.Context(), userID, id); err != nil {
		respondError(c, "Failed to delete glycemic log", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Glycemic log deleted", Data: gin.H{"glycemic_measurement_id": id}})
}

// GetSymptomLog godoc
// @Summary      Get one symptom
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Symptom id"
// @Param        userId query int true "Patient id"
// @Success      200 {object} util.APIResponse{data=model.Symptom} "Symptom log retrieved"
// @Failure      404 {object} util.APIResponse "Symptom not found"
// @Router       /patient/symptom-log/{id} [get]
func GetSymptomLog(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	userID, id, err := ownedRecordIDs(c)
	if err != nil {
		respondError(c, "Invalid parameters", err)
		return
	}
	sym, err := s.Logs.GetSymptom(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, "Failed to retrieve symptom log", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Symptom log retrieved", Data: sym})
}

// DeleteSymptomLog godoc
// @Summary      Delete one symptom
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Symptom id"
// @Param        userId query int true "Patient id"
// @Success      200 {object} util.APIResponse "Symptom log deleted"
// @Failure      404 {object} util.APIResponse "Symptom not found"
// @Router       /patient/symptom-log/{id} [delete]
func DeleteSymptomLog(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	userID, id, err := ownedRecordIDs(c)
	if err != nil {
		respondError(c, "Invalid parameters", err)
		return
	}
	if err := s.Logs.DeleteSymptom(c.Request.Context(), userID, id); err != nil {
		respondError(c, "Failed to delete symptom log", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Symptom log deleted", Data: gin.H{"symptom_id": id}})
}

func ownedRecordIDs(c *gin.Context) (userID, id uint, err error) {
	if userID, err = idQuery(c, "userId"); err != nil {
		return
	}
	id, err = idParam(c, "id")
	return
}
