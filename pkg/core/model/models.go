package model

import "time"

// CommitmentState is the lifecycle state of a shift assignment
type CommitmentState string

const (
	StateAssigned  CommitmentState = "ASSIGNED"
	StateCancelled CommitmentState = "CANCELLED"
	StateCompleted CommitmentState = "COMPLETED"
)

func (s CommitmentState) IsValid() bool {
	return s == StateAssigned || s == StateCancelled || s == StateCompleted
}

// Terminal reports whether the state is one no forward-looking
// scheduling check applies to
func (s CommitmentState) Terminal() bool {
	return s == StateCancelled || s == StateCompleted
}

// ShiftWindow is a half-open [Start, End) time interval. Start must be
// strictly before End.
type ShiftWindow struct {
	Start time.Time
	End   time.Time
}

// Commitment is an existing shift assignment for a staff member
type Commitment struct {
	ID         string
	JobID      string
	StaffID    string
	HospitalID string
	Window     ShiftWindow
	State      CommitmentState
}

// AvailabilitySlot is a standing weekly availability window.
// Start and end are minutes since midnight on the given weekday.
type AvailabilitySlot struct {
	Weekday     time.Weekday
	StartMinute int
	EndMinute   int
	Active      bool
}

// StaffSkill is a staff member's proficiency (1-5) in a named skill
type StaffSkill struct {
	SkillID     string
	Proficiency int
}

// SkillRequirement is a job's minimum proficiency bar for a skill
type SkillRequirement struct {
	SkillID            string
	MinimumProficiency int
}

// StaffProfile represents a staff member available for matching
type StaffProfile struct {
	ID              string
	ExternalUserID  string
	FullName        string
	Email           string
	ProfessionID    string
	ProfessionName  string
	Status          string
	AvatarURL       string
	RatingAvg       float64
	CompletedShifts int
	Skills          []StaffSkill
	Availability    []AvailabilitySlot
}

// StaffStatusActive marks staff eligible for recommendations
const StaffStatusActive = "ACTIVE"

// JobPosting represents an open hospital shift posting
type JobPosting struct {
	ID             string
	HospitalID     string
	HospitalName   string
	DepartmentName string
	ProfessionID   string
	ProfessionName string
	Status         string
	Window         ShiftWindow
	HourlyRate     string
	Currency       string
	RequiredSkills []SkillRequirement
}

// JobStatusOpen marks postings eligible for matching
const JobStatusOpen = "OPEN"
