package match

import (
	"math"
	"sort"
	"time"

	"github.com/juliagrant/careshift/pkg/core/model"
)

// ScoreStaffForJob computes deterministic 0-100 match scores for a pool of
// staff candidates against one job, sorted descending by score. Ties keep
// the pool's original order. The result is truncated to limit entries.
//
// The breakdown is intentionally explainable for hospital/staff trust:
// skill_match (40%) for qualification, availability_fit (25%) for realistic
// schedulability, past_shift_history (20%) for proven continuity and
// staff_reliability (15%) for peer feedback quality.
func ScoreStaffForJob(job JobTarget, pool []StaffCandidate, limit int) []Candidate {
	weekday := job.Window.Start.Weekday()
	startMinute := minuteOfDay(job.Window.Start)
	endMinute := minuteOfDay(job.Window.End)

	// Normalize history against the busiest candidate in the pool
	historyMax := 1
	for _, staff := range pool {
		if staff.HospitalShiftCount > historyMax {
			historyMax = staff.HospitalShiftCount
		}
	}

	scored := make([]Candidate, 0, len(pool))
	for _, staff := range pool {
		factors := Factors{
			Fit:          skillMatch(job, staff),
			Availability: availabilityFit(staff.Availability, weekday, startMinute, endMinute),
			History:      roundInt(float64(staff.HospitalShiftCount) / float64(historyMax) * 100),
			Quality:      clip100(roundInt(staff.RatingAvg / 5.0 * 100)),
		}

		scored = append(scored, Candidate{
			ID:              staff.ID,
			Name:            staff.Name,
			Role:            staff.ProfessionName,
			Rating:          staff.RatingAvg,
			CompletedShifts: staff.CompletedShifts,
			Match:           combine(factors),
			Factors:         factors,
		})
	}

	return rankAndTruncate(scored, limit)
}

// ScoreJobsForStaff computes deterministic match scores for open shifts
// against one staff member, mirroring ScoreStaffForJob with profession_fit
// in place of skill_match and hospital_rating in place of staff_reliability.
func ScoreJobsForStaff(staff StaffTarget, pool []JobCandidate, limit int) []Candidate {
	scored := make([]Candidate, 0, len(pool))
	for _, job := range pool {
		fit := 100
		if job.ProfessionID != staff.ProfessionID {
			fit = ProfessionMismatchJob
		}

		weekday := job.Window.Start.Weekday()
		availability := availabilityFit(staff.Availability, weekday,
			minuteOfDay(job.Window.Start), minuteOfDay(job.Window.End))

		factors := Factors{
			Fit:          fit,
			Availability: availability,
			History:      clip100(job.StaffShiftCount * HistoryPointsPerShift),
			Quality:      clip100(roundInt(job.HospitalRating / 5.0 * 100)),
		}

		scored = append(scored, Candidate{
			ID:         job.ID,
			Name:       job.HospitalName,
			Role:       job.Role,
			Department: job.Department,
			HourlyRate: job.HourlyRate,
			Currency:   job.Currency,
			Match:      combine(factors),
			Factors:    factors,
		})
	}

	return rankAndTruncate(scored, limit)
}

// skillMatch averages per-skill coverage against the job's minimum
// proficiency bars. Jobs without explicit skill requirements fall back to a
// binary profession-equality signal.
func skillMatch(job JobTarget, staff StaffCandidate) int {
	if len(job.RequiredSkills) == 0 {
		if staff.ProfessionID == job.ProfessionID {
			return 100
		}
		return ProfessionMismatchStaff
	}

	proficiency := make(map[string]int, len(staff.Skills))
	for _, s := range staff.Skills {
		proficiency[s.SkillID] = s.Proficiency
	}

	matched := 0.0
	for _, req := range job.RequiredSkills {
		minimum := req.MinimumProficiency
		if minimum < 1 {
			minimum = 1
		}
		coverage := float64(proficiency[req.SkillID]) / float64(minimum)
		matched += math.Min(coverage, 1.0)
	}
	return roundInt(matched / float64(len(job.RequiredSkills)) * 100)
}

func availabilityFit(slots []model.AvailabilitySlot, weekday time.Weekday, startMinute, endMinute int) int {
	for _, slot := range slots {
		if slotContains(slot, weekday, startMinute, endMinute) {
			return 100
		}
	}
	return AvailabilityPartialCredit
}

func combine(f Factors) int {
	return roundInt(
		float64(f.Fit)*WeightFit +
			float64(f.Availability)*WeightAvailability +
			float64(f.History)*WeightHistory +
			float64(f.Quality)*WeightQuality)
}

func rankAndTruncate(scored []Candidate, limit int) []Candidate {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Match > scored[j].Match
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func clip100(v int) int {
	if v > 100 {
		return 100
	}
	return v
}
