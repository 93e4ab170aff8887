package schedule

import (
	"fmt"
	"time"

	"github.com/juliagrant/careshift/pkg/core/model"
)

// MaxWorkingDaysPerWeek is the regulatory cap on distinct calendar days a
// staff member may work within one ISO week.
const MaxWorkingDaysPerWeek = 3

// Assignment is a proposed staff-to-shift assignment to validate.
// ID is empty when the assignment has not been persisted yet; a non-empty
// ID excludes the matching commitment from the comparison set so an
// existing record can be revalidated against its peers only.
type Assignment struct {
	ID      string
	StaffID string
	Window  model.ShiftWindow
}

// OverlapViolation is returned when the proposed window intersects an
// existing assigned commitment for the same staff member.
type OverlapViolation struct {
	Conflict model.Commitment
}

func (e *OverlapViolation) Error() string {
	return fmt.Sprintf("staff already has an overlapping active shift assignment (%s to %s)",
		e.Conflict.Window.Start.Format("2006-01-02 15:04"),
		e.Conflict.Window.End.Format("2006-01-02 15:04"))
}

// WeeklyLimitViolation is returned when the proposed assignment would push
// the staff member past the weekly working-day cap.
type WeeklyLimitViolation struct {
	WeekStart   time.Time
	WorkingDays int
}

func (e *WeeklyLimitViolation) Error() string {
	return fmt.Sprintf("assignment violates %d-day weekly work limit for staff (week of %s would have %d working days)",
		MaxWorkingDaysPerWeek, e.WeekStart.Format("2006-01-02"), e.WorkingDays)
}

// Validate decides whether a candidate assignment is legal given the staff
// member's other commitments. Both rules must pass:
//
//   - No concurrent overlap: no ASSIGNED commitment may overlap the
//     candidate's window.
//   - Weekly working-day cap: ASSIGNED and COMPLETED commitments plus the
//     candidate may span at most MaxWorkingDaysPerWeek distinct calendar
//     days within the ISO week of the candidate's shift start. Multiple
//     shifts on the same day count as one working day.
//
// Callers must only run this for assignments entering or staying in the
// ASSIGNED state; cancellations and completions need no legality check.
// The existing set is assumed to be a consistent snapshot; serializing
// concurrent writes per staff member is the persistence layer's job.
func Validate(candidate Assignment, existing []model.Commitment) error {
	if candidate.Window.Start.IsZero() || !candidate.Window.Start.Before(candidate.Window.End) {
		return fmt.Errorf("invalid shift window: start must be before end")
	}

	if err := checkOverlap(candidate, existing); err != nil {
		return err
	}
	return checkWeeklyLimit(candidate, existing)
}

func checkOverlap(candidate Assignment, existing []model.Commitment) error {
	for _, c := range existing {
		if candidate.ID != "" && c.ID == candidate.ID {
			continue
		}
		if c.State != model.StateAssigned {
			continue
		}
		if Overlaps(candidate.Window, c.Window) {
			return &OverlapViolation{Conflict: c}
		}
	}
	return nil
}

func checkWeeklyLimit(candidate Assignment, existing []model.Commitment) error {
	weekStart, weekEnd := ISOWeekBounds(candidate.Window.Start)

	workingDays := map[string]bool{
		DateOf(candidate.Window.Start).Format("2006-01-02"): true,
	}
	for _, c := range existing {
		if candidate.ID != "" && c.ID == candidate.ID {
			continue
		}
		if c.State != model.StateAssigned && c.State != model.StateCompleted {
			continue
		}
		day := DateOf(c.Window.Start)
		if day.Before(weekStart) || !day.Before(weekEnd) {
			continue
		}
		workingDays[day.Format("2006-01-02")] = true
	}

	if len(workingDays) > MaxWorkingDaysPerWeek {
		return &WeeklyLimitViolation{WeekStart: weekStart, WorkingDays: len(workingDays)}
	}
	return nil
}
