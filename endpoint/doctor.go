package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/glucotrack/glucotrack-api/clinical"
	"github.com/glucotrack/glucotrack-api/dashboard"
	"github.com/glucotrack/glucotrack-api/therapy"
	"github.com/glucotrack/glucotrack-api/util"
)

// GetDoctorDashboard godoc
// @Summary      Doctor dashboard
// @Description  Weekly glucose averages and trends of the doctor's patients, grouped by status, with the doctor's open glycemic alerts
// @Tags         Doctor
// @Produce      json
// @Param        doctorId query int true "Doctor id"
// @Success      200 {object} util.APIResponse{data=dashboard.Summary} "Dashboard retrieved"
// @Failure      400 {object} util.APIResponse "Invalid doctor id"
// @Failure      404 {object} util.APIResponse "Doctor not found"
// @Router       /doctor/dashboard [get]
func GetDoctorDashboard(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	doctorID, err := idQuery(c, "doctorId")
	if err != nil {
		respondError(c, "Invalid doctor id", err)
		return
	}
	summary, err := s.Dashboard.GetDoctorDashboard(c.Request.Context(), doctorID)
	if err != nil {
		respondError(c, "Failed to build dashboard", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Dashboard retrieved", Data: summary})
}

// GetPatientAnalytics godoc
// @Summary      Patient analytics
// @Description  Weekly trends, six month distribution, therapy adherence and clinical context of a patient
// @Tags         Doctor
// @Produce      json
// @Param        userId query int true "Patient id"
// @Success      200 {object} util.APIResponse{data=analytics.PatientAnalytics} "Analytics retrieved"
// @Failure      400 {object} util.APIResponse "Invalid patient id"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /doctor/patient-analytics [get]
func GetPatientAnalytics(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	patientID, err := idQuery(c, "userId")
	if err != nil {
		respondError(c, "Invalid patient id", err)
		return
	}
	result, err := s.Analytics.GetPatientAnalytics(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, "Failed to compute analytics", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Analytics retrieved", Data: result})
}

// SaveTherapy godoc
// @Summary      Create or replace a therapy
// @Description  Without therapy_id a new therapy starting tomorrow is created. With therapy_id the given version is closed (or dropped when not started yet) and replaced.
// @Tags         Doctor
// @Accept       json
// @Produce      json
// @Param        request body therapy.SaveRequest true "Therapy"
// @Success      201 {object} util.APIResponse{data=model.Therapy} "Therapy saved"
// @Failure      400 {object} util.APIResponse "Invalid therapy"
// @Failure      404 {object} util.APIResponse "Therapy not found"
// @Router       /doctor/therapy [post]
func SaveTherapy(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	var req therapy.SaveRequest
	if !bindJSON(c, &req) {
		return
	}
	saved, err := s.Therapies.Save(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to save therapy", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Therapy saved", Data: saved})
}

// GetTherapy godoc
// @Summary      Get a therapy with its schedules
// @Tags         Doctor
// @Produce      json
// @Param        id path int true "Therapy id"
// @Success      200 {object} util.APIResponse{data=model.Therapy} "Therapy retrieved"
// @Failure      404 {object} util.APIResponse "Therapy not found"
// @Router       /doctor/therapy/{id} [get]
func GetTherapy(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		respondError(c, "Invalid therapy id", err)
		return
	}
	t, err := s.Therapies.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to retrieve therapy", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Therapy retrieved", Data: t})
}

// GetTherapyHistory godoc
// @Summary      Versions of a therapy, newest first
// @Tags         Doctor
// @Produce      json
// @Param        id path int true "Therapy id"
// @Success      200 {object} util.APIResponse{data=[]model.Therapy} "History retrieved"
// @Failure      404 {object} util.APIResponse "Therapy not found"
// @Router       /doctor/therapy/{id}/history [get]
func GetTherapyHistory(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		respondError(c, "Invalid therapy id", err)
		return
	}
	chain, err := s.Therapies.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to retrieve therapy history", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "History retrieved", Data: chain})
}

// CloseTherapy godoc
// @Summary      End a running therapy today
// @Tags         Doctor
// @Produce      json
// @Param        id path int true "Therapy id"
// @Success      200 {object} util.APIResponse{data=model.Therapy} "Therapy closed"
// @Failure      404 {object} util.APIResponse "Therapy not found"
// @Failure      409 {object} util.APIResponse "Therapy not running"
// @Router       /doctor/therapy/{id}/close [patch]
func CloseTherapy(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		respondError(c, "Invalid therapy id", err)
		return
	}
	closed, err := s.Therapies.Close(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to close therapy", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Therapy closed", Data: closed})
}

// DeleteTherapy godoc
// @Summary      Delete a therapy and its schedules
// @Tags         Doctor
// @Produce      json
// @Param        id path int true "Therapy id"
// @Success      200 {object} util.APIResponse "Therapy deleted"
// @Failure      404 {object} util.APIResponse "Therapy not found"
// @Router       /doctor/therapy/{id} [delete]
func DeleteTherapy(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		respondError(c, "Invalid therapy id", err)
		return
	}
	if err := s.Therapies.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete therapy", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Therapy deleted", Data: gin.H{"therapy_id": id}})
}

// ListRecentTherapies godoc
// @Summary      The doctor's ten newest therapies
// @Tags         Doctor
// @Produce      json
// @Param        doctorId query int true "Doctor id"
// @Success      200 {object} util.APIResponse{data=[]model.Therapy} "Therapies retrieved"
// @Failure      404 {object} util.APIResponse "No therapies"
// @Router       /doctor/recent-therapies [get]
func ListRecentTherapies(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	doctorID, err := idQuery(c, "doctorId")
	if err != nil {
		respondError(c, "Invalid doctor id", err)
		return
	}
	therapies, err := s.Therapies.Recent(c.Request.Context(), doctorID)
	if err != nil {
		respondError(c, "Failed to retrieve therapies", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Therapies retrieved", Data: therapies})
}

// SearchPatients godoc
// @Summary      Search patients
// @Description  Ten patients per page, ordered by name. onlyDoctorPatients limits the search to the doctor's current patients.
// @Tags         Doctor
// @Produce      json
// @Param        doctorId query int true "Doctor id"
// @Param        page query int false "Page, from 0"
// @Param        search query string false "Matches first name, last name or email"
// @Param        onlyDoctorPatients query bool false "Only the doctor's current patients"
// @Param        minAge query int false "Minimum age in years"
// @Param        maxAge query int false "Maximum age in years"
// @Param        gender query string false "Gender"
// @Success      200 {object} util.APIResponse{data=[]model.User} "Patients retrieved"
// @Failure      400 {object} util.APIResponse "Invalid filter"
// @Failure      404 {object} util.APIResponse "No patients found"
// @Router       /doctor/patients [get]
func SearchPatients(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	f, err := patientFilter(c)
	if err != nil {
		respondError(c, "Invalid patient filter", err)
		return
	}
	patients, err := s.Dashboard.SearchPatients(c.Request.Context(), f)
	if err != nil {
		respondError(c, "Failed to retrieve patients", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patients retrieved", Data: patients})
}

func patientFilter(c *gin.Context) (dashboard.PatientFilter, error) {
	f := dashboard.PatientFilter{Search: c.Query("search"), Gender: c.Query("gender")}
	var err error
	if f.DoctorID, err = idQuery(c, "doctorId"); err != nil {
		return f, err
	}
	if f.OnlyAssigned, err = boolQuery(c, "onlyDoctorPatients"); err != nil {
		return f, err
	}
	if f.Page, err = intQuery(c, "page", 0); err != nil {
		return f, err
	}
	if f.MinAge, err = intQuery(c, "minAge", 0); err != nil {
		return f, err
	}
	f.MaxAge, err = intQuery(c, "maxAge", 0)
	return f, err
}

// UpdateClinicalProfile godoc
// @Summary      Upsert comorbidities and add risk factors of a patient
// @Tags         Doctor
// @Accept       json
// @Produce      json
// @Param        request body clinical.ProfileRequest true "Clinical profile"
// @Success      200 {object} util.APIResponse{data=clinical.Profile} "Clinical profile updated"
// @Failure      400 {object} util.APIResponse "Invalid profile"
// @Failure      404 {object} util.APIResponse "User not found"
// @Router       /doctor/clinical-profile [post]
func UpdateClinicalProfile(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	var req clinical.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	profile, err := s.Clinical.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to update clinical profile", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Clinical profile updated", Data: profile})
}

// DeleteComorbidity godoc
// @Summary      Remove a comorbidity from a patient
// @Tags         Doctor
// @Produce      json
// @Param        userId path int true "Patient id"
// @Param        id path int true "Comorbidity id"
// @Param        doctorId query int true "Doctor id"
// @Success      200 {object} util.APIResponse "Comorbidity removed"
// @Failure      404 {object} util.APIResponse "Comorbidity not found"
// @Router       /doctor/patient/{userId}/comorbidity/{id} [delete]
func DeleteComorbidity(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	doctorID, userID, id, err := patientRecordIDs(c, "id")
	if err != nil {
		respondError(c, "Invalid parameters", err)
		return
	}
	if err := s.Clinical.DeleteComorbidity(c.Request.Context(), doctorID, userID, id); err != nil {
		respondError(c, "Failed to remove comorbidity", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Comorbidity removed", Data: gin.H{"comorbidity_id": id}})
}

// DeleteRiskFactor godoc
// @Summary      Unlink a risk factor from a patient
// @Tags         Doctor
// @Produce      json
// @Param        userId path int true "Patient id"
// @Param        riskFactorId path int true "Risk factor id"
// @Param        doctorId query int true "Doctor id"
// @Success      200 {object} util.APIResponse "Risk factor removed"
// @Failure      404 {object} util.APIResponse "Risk factor not linked"
// @Router       /doctor/patient/{userId}/risk-factor/{riskFactorId} [delete]
func DeleteRiskFactor(c *gin.Context) {
	s := ensureServices(c)
	if s == nil {
		return
	}
	doctorID, userID, id, err := patientRecordIDs(c, "riskFactorId")
	if err != nil {
		respondError(c, "Invalid parameters", err)
		return
	}
	if err := s.Clinical.DeleteRiskFactor(c.Request.Context(), doctorID, userID, id); err != nil {
		respondError(c, "Failed to remove risk factor", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Risk factor removed", Data: gin.H{"risk_factor_id": id}})
}

func patientRecordIDs(c *gin.Context, recordParam string) (doctorID, userID, recordID uint, err error) {
	if doctorID, err = idQuery(c, "doctorId"); err != nil {
		return
	}
	if userID, err = idParam(c, "userId"); err != nil {
		return
	}
	recordID, err = idParam(c, recordParam)
	return
}
