package alert

import (
	"errors"
	"fmt"

	"github.com/glucotrack/glucotrack-api/apperr"
)

var (
	ErrImplausibleValue = fmt.Errorf("%w: glycemic value outside plausible range", apperr.BadRequest)
	ErrInvalidSubject   = fmt.Errorf("%w: subject id must be positive", apperr.BadRequest)
	ErrUnknownSeverity  = fmt.Errorf("%w: unknown severity level", apperr.BadRequest)
	ErrUnknownAlertType = fmt.Errorf("%w: alert type not in catalog", apperr.NotFound)
	ErrNoRecipients     = fmt.Errorf("%w: alert resolves to no recipients", apperr.UnprocessableEntity)

	// ErrNoDoctorAssigned is a policy condition, reported to callers as an
	// Outcome reason rather than a failure.
	ErrNoDoctorAssigned = errors.New("no doctor assigned")
)

// Outcome reasons for alerts that were not created.
const (
	ReasonDuplicate        = "Duplicate"
	ReasonNoDoctorAssigned = "NoDoctorAssigned"
	ReasonNoAlertRequired  = "NoAlertRequired"
	ReasonImplausibleValue = "ImplausibleValue"
)
