package alert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucotrack/glucotrack-api/apperr"
	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/testutil"
)

func TestInboxListResolveAndMarkRead(t *testing.T) {
	fx := setupFactory(t, "inbox")
	ctx := context.Background()
	inbox := NewInbox(fx.repo, clock.Fixed(now))

	testutil.AddAlert(t, fx.db, fx.patient.ID, model.LabelHighGlucose, "older", now.AddDate(0, 0, -1), fx.doctor.ID)
	testutil.AddAlert(t, fx.db, fx.patient.ID, model.LabelVeryHighGlucose, "newer", now, fx.doctor.ID, fx.patient.ID)

	all, err := inbox.ListForRecipient(ctx, fx.doctor.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "newer", all[0].Message)
	assert.Equal(t, "Ada", all[0].PatientFirstName)

	require.NoError(t, inbox.Resolve(ctx, all[0].AlertRecipientID))

	open, err := inbox.ListForRecipient(ctx, fx.doctor.ID, true)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "older", open[0].Message)

	// Resolution is shared, read state is not.
	patientView, err := inbox.ListForRecipient(ctx, fx.patient.ID, false)
	require.NoError(t, err)
	require.Len(t, patientView, 1)
	assert.Equal(t, model.AlertStatusResolved, patientView[0].Status)
	assert.False(t, patientView[0].IsRead)

	require.NoError(t, inbox.MarkRead(ctx, patientView[0].AlertRecipientID))
	patientView, err = inbox.ListForRecipient(ctx, fx.patient.ID, false)
	require.NoError(t, err)
	assert.True(t, patientView[0].IsRead)

	assert.ErrorIs(t, inbox.Resolve(ctx, 9999), apperr.NotFound)
	_, err = inbox.ListForRecipient(ctx, 9999, false)
	assert.ErrorIs(t, err, apperr.NotFound)
}
