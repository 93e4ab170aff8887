package match

import (
	"time"

	"github.com/juliagrant/careshift/pkg/core/model"
)

// Direction selects which matching direction a candidate pool was scored in
type Direction string

const (
	// StaffForJob ranks staff candidates for a hospital shift
	StaffForJob Direction = "hospital_to_staff"

	// JobsForStaff ranks open shifts for a staff member
	JobsForStaff Direction = "staff_to_hospitals"
)

// Confidence is the external ranker's self-reported confidence level
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// Factors is the rounded factor breakdown behind one match score. The four
// fields carry direction-dependent semantics; Tags renders them under the
// direction's canonical keys for display and serialization.
type Factors struct {
	// Fit is skill_match (staff-for-job) or profession_fit (jobs-for-staff)
	Fit int
	// Availability is availability_fit in both directions
	Availability int
	// History is past_shift_history or hospital_history
	History int
	// Quality is staff_reliability or hospital_rating
	Quality int
}

// Tag is one named factor value in a candidate's breakdown
type Tag struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// Tags renders the breakdown under the direction's semantic keys, in
// canonical display order.
func (f Factors) Tags(d Direction) []Tag {
	if d == JobsForStaff {
		return []Tag{
			{Key: "profession_fit", Value: f.Fit},
			{Key: "availability_fit", Value: f.Availability},
			{Key: "hospital_history", Value: f.History},
			{Key: "hospital_rating", Value: f.Quality},
		}
	}
	return []Tag{
		{Key: "skill_match", Value: f.Fit},
		{Key: "availability_fit", Value: f.Availability},
		{Key: "past_shift_history", Value: f.History},
		{Key: "staff_reliability", Value: f.Quality},
	}
}

// Candidate is one scored entry in a ranking response. The AI fields are
// zero until the re-ranking adapter runs; after it runs they are always
// populated, from the external service or from the deterministic fallback.
type Candidate struct {
	ID              string
	Name            string
	Role            string
	Department      string
	Rating          float64
	CompletedShifts int
	HourlyRate      string
	Currency        string

	// Match is the deterministic 0-100 score
	Match   int
	Factors Factors

	AIScore         int
	AIReasonShort   string
	AIReasonDetails []string
	AIConfidence    Confidence
}

// StaffCandidate is the per-staff input to the staff-for-job scorer,
// assembled by the caller from the persistence boundary.
type StaffCandidate struct {
	ID              string
	Name            string
	ProfessionID    string
	ProfessionName  string
	RatingAvg       float64
	CompletedShifts int
	Skills          []model.StaffSkill
	Availability    []model.AvailabilitySlot
	// HospitalShiftCount is this staff member's prior assignments at the
	// target job's hospital
	HospitalShiftCount int
}

// JobTarget is the shift being staffed in the staff-for-job direction
type JobTarget struct {
	ProfessionID   string
	Window         model.ShiftWindow
	RequiredSkills []model.SkillRequirement
}

// JobCandidate is the per-job input to the jobs-for-staff scorer
type JobCandidate struct {
	ID             string
	HospitalID     string
	HospitalName   string
	Role           string
	Department     string
	ProfessionID   string
	Window         model.ShiftWindow
	HourlyRate     string
	Currency       string
	// HospitalRating is the hospital's average review rating on a 0-5
	// scale; callers substitute DefaultHospitalRating when none exists
	HospitalRating float64
	// StaffShiftCount is the staff member's prior assignments at this hospital
	StaffShiftCount int
}

// StaffTarget is the staff member being matched in the jobs-for-staff direction
type StaffTarget struct {
	ProfessionID string
	Availability []model.AvailabilitySlot
}

// slotContains reports whether an active availability slot on the shift's
// weekday fully contains the shift's time-of-day span
func slotContains(slot model.AvailabilitySlot, weekday time.Weekday, startMinute, endMinute int) bool {
	return slot.Active &&
		slot.Weekday == weekday &&
		slot.StartMinute <= startMinute &&
		slot.EndMinute >= endMinute
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
