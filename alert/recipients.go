package alert

import (
	"context"
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/glucotrack/glucotrack-api/clock"
	"github.com/glucotrack/glucotrack-api/model"
	"github.com/glucotrack/glucotrack-api/repository"
)

// RecipientResolver decides who is notified of an alert:
//
//	CRITICAL  all doctors plus the assigned doctor; requires an assigned doctor
//	SEVERE    subject patient plus all doctors
//	MILD      subject patient plus all doctors
type RecipientResolver struct {
	users repository.UserReader
	clock clock.Clock
}

func NewRecipientResolver(users repository.UserReader, c clock.Clock) *RecipientResolver {
	if c == nil {
		c = clock.System()
	}
	return &RecipientResolver{users: users, clock: c}
}

// ResolveRecipients returns the sorted, de-duplicated recipient ids.
func (r *RecipientResolver) ResolveRecipients(ctx context.Context, subjectID uint, severity Severity) ([]uint, error) {
	if subjectID == 0 {
		return nil, ErrInvalidSubject
	}
	if _, ok := LabelFor(severity); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSeverity, severity)
	}

	set := mapset.NewThreadUnsafeSet[uint]()

	if severity == SeverityCritical {
		pd, err := r.users.FindCurrentDoctorForPatient(ctx, subjectID, r.clock.Now())
		if err != nil {
			return nil, err
		}
		if pd == nil || pd.DoctorID == 0 {
			return nil, ErrNoDoctorAssigned
		}
		set.Add(pd.DoctorID)
	} else {
		set.Add(subjectID)
	}

	doctors, err := r.users.FindUsersByRole(ctx, model.RoleDoctor)
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		set.Add(d.ID)
	}

	set.Remove(0)
	if set.Cardinality() == 0 {
		return nil, ErrNoRecipients
	}

	ids := set.ToSlice()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
