package endpoint

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucotrack/glucotrack-api/alert"
	"github.com/glucotrack/glucotrack-api/config"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/testutil"
)

func TestCreateGlycemiaAlertEndpoint(t *testing.T) {
	r, db := setupEndpointTest(t, "endpoint_create_alert")
	doctor := testutil.CreateDoctor(t, db)
	patient := testutil.CreatePatient(t, db)
	testutil.Assign(t, db, patient.ID, doctor.ID, now.AddDate(0, -1, 0), nil)

	body := map[string]interface{}{
		"user_id":     patient.ID,
		"value":       250,
		"measured_at": now.Add(-time.Hour),
	}
	w, resp := send(t, r, http.MethodPost, "/alert/glycemia", body)
	assertStatus(t, w, http.StatusCreated)
	data := dataMap(t, resp)
	assert.Equal(t, true, data["created"])
	assert.NotZero(t, data["alert_id"])

	w, resp = send(t, r, http.MethodPost, "/alert/glycemia", body)
	assertSuccessResponse(t, w, resp)
	data = dataMap(t, resp)
	assert.Equal(t, false, data["created"])
	assert.Equal(t, alert.ReasonDuplicate, data["reason"])

	var count int64
	require.NoError(t, db.Model(&model.Alert{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateGlycemiaAlertEndpointErrors(t *testing.T) {
	r, db := setupEndpointTest(t, "endpoint_create_alert_errors")
	patient := testutil.CreatePatient(t, db)

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"malformed json", "{", http.StatusBadRequest},
		{"missing value", map[string]interface{}{"user_id": patient.ID}, http.StatusBadRequest},
		{"implausible value", map[string]interface{}{"user_id": patient.ID, "value": 20}, http.StatusBadRequest},
		{"unknown level", map[string]interface{}{"user_id": patient.ID, "value": 250, "level": "EXTREME"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := send(t, r, http.MethodPost, "/alert/glycemia", tt.body)
			assertStatus(t, w, tt.status)
			assert.Equal(t, false, resp["success"])
		})
	}
}

func TestCreateCriticalAlertWithoutDoctor(t *testing.T) {
	r, db := setupEndpointTest(t, "endpoint_critical_no_doctor")
	patient := testutil.CreatePatient(t, db)

	w, resp := send(t, r, http.MethodPost, "/alert/glycemia", map[string]interface{}{"user_id": patient.ID, "value": 380})
	assertSuccessResponse(t, w, resp)
	data := dataMap(t, resp)
	assert.Equal(t, false, data["created"])
	assert.Equal(t, alert.ReasonNoDoctorAssigned, data["reason"])
}

func TestCreateGlycemiaAlertRateLimited(t *testing.T) {
	r, db := setupEndpointTest(t, "endpoint_alert_rate_limit")
	patient := testutil.CreatePatient(t, db)

	rdb, mock := redismock.NewClientMock()
	config.SetRedisClientForTesting(rdb)
	defer config.SetRedisClientForTesting(nil)

	key := "ratelimit:/alert/glycemia:192.0.2.1"
	mock.ExpectIncr(key).SetVal(6)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	w, resp := send(t, r, http.MethodPost, "/alert/glycemia", map[string]interface{}{"user_id": patient.ID, "value": 250})
	assertStatus(t, w, http.StatusTooManyRequests)
	assert.Equal(t, "rate limit exceeded", resp["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserAlertsResolveAndRead(t *testing.T) {
	r, db := setupEndpointTest(t, "endpoint_inbox")
	doctor := testutil.CreateDoctor(t, db)
	patient := testutil.CreatePatient(t, db, testutil.WithName("Grace", "Hopper"))
	testutil.AddAlert(t, db, patient.ID, model.LabelHighGlucose, "old", now.Add(-48*time.Hour), patient.ID, doctor.ID)
	testutil.AddAlert(t, db, patient.ID, model.LabelVeryHighGlucose, "new", now.Add(-time.Hour), patient.ID, doctor.ID)

	w, resp := get(t, r, fmt.Sprintf("/alert/user-alerts?userId=%d", doctor.ID))
	assertSuccessResponse(t, w, resp)
	alerts := dataList(t, resp)
	require.Len(t, alerts, 2)
	newest := alerts[0].(map[string]interface{})
	assert.Equal(t, "new", newest["message"])
	assert.Equal(t, "Grace", newest["patient_first_name"])
	recipientID := uint(newest["alert_recipient_id"].(float64))

	w, resp = send(t, r, http.MethodPatch, fmt.Sprintf("/alert/recipient/%d/read", recipientID), nil)
	assertSuccessResponse(t, w, resp)

	w, resp = send(t, r, http.MethodPatch, fmt.Sprintf("/alert/recipient/%d/resolve", recipientID), nil)
	assertSuccessResponse(t, w, resp)

	// Resolution is shared: the patient's copy is no longer open either.
	w, resp = get(t, r, fmt.Sprintf("/alert/user-alerts?userId=%d&onlyOpen=true", patient.ID))
	assertSuccessResponse(t, w, resp)
	open := dataList(t, resp)
	require.Len(t, open, 1)
	assert.Equal(t, "old", open[0].(map[string]interface{})["message"])
}

func TestUserAlertsErrors(t *testing.T) {
	r, _ := setupEndpointTest(t, "endpoint_inbox_errors")

	w, _ := get(t, r, "/alert/user-alerts?userId=abc")
	assertStatus(t, w, http.StatusBadRequest)

	w, _ = get(t, r, "/alert/user-alerts?userId=9999")
	assertStatus(t, w, http.StatusNotFound)

	w, _ = send(t, r, http.MethodPatch, "/alert/recipient/9999/resolve", nil)
	assertStatus(t, w, http.StatusNotFound)

	w, _ = send(t, r, http.MethodPatch, "/alert/recipient/0/read", nil)
	assertStatus(t, w, http.StatusBadRequest)
}
