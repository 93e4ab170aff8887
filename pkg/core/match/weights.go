package match

// Canonical factor weights for the deterministic match score. The same
// weights apply in both directions; only the underlying signals differ
// (skill_match vs profession_fit, staff_reliability vs hospital_rating).
const (
	// WeightFit is the weight of the skill/profession qualification signal
	WeightFit = 0.40

	// WeightAvailability is the weight of the schedulability signal
	WeightAvailability = 0.25

	// WeightHistory is the weight of prior engagements with the same counterpart
	WeightHistory = 0.20

	// WeightQuality is the weight of the counterpart's rating signal
	WeightQuality = 0.15
)

// Fallback constants preserved from the original product tuning
const (
	// ProfessionMismatchStaff is the skill_match fallback when scoring staff
	// for a job whose profession does not match and no explicit skill
	// requirements exist
	ProfessionMismatchStaff = 25

	// ProfessionMismatchJob is the profession_fit value for jobs whose
	// profession does not match the staff member's
	ProfessionMismatchJob = 35

	// AvailabilityPartialCredit is the availability_fit value when no
	// standing availability window contains the shift. Nonzero on purpose:
	// approximate fits still have recall value.
	AvailabilityPartialCredit = 30

	// HistoryPointsPerShift converts prior shifts at a hospital into
	// hospital_history points in the jobs-for-staff direction
	HistoryPointsPerShift = 15

	// DefaultHospitalRating substitutes for hospitals with no reviews yet
	DefaultHospitalRating = 3.5
)
