package match

import (
	"fmt"
	"strings"
)

// genericReason is used when no factor clears any threshold
const genericReason = "Balanced match based on skills, schedule fit, history, and rating."

// SynthesizeReason builds a short user-facing explanation from the
// deterministic factor breakdown. Up to three qualifying factors are
// listed; strong signals are preferred, with a softer second tier when
// nothing clears the strong thresholds.
func SynthesizeReason(f Factors) string {
	var topFactors []string
	if f.Fit >= 80 {
		topFactors = append(topFactors, "strong role/skill match")
	}
	if f.Availability >= 80 {
		topFactors = append(topFactors, "schedule fits your availability")
	}
	if f.History >= 60 {
		topFactors = append(topFactors, "good prior shift history")
	}
	if f.Quality >= 70 {
		topFactors = append(topFactors, "high quality workplace rating")
	}

	if len(topFactors) == 0 {
		if f.Fit >= 60 {
			topFactors = append(topFactors, "good role/skill alignment")
		}
		if f.Availability >= 60 {
			topFactors = append(topFactors, "reasonable schedule alignment")
		}
		if f.Quality >= 60 {
			topFactors = append(topFactors, "positive workplace quality signal")
		}
	}

	if len(topFactors) == 0 {
		return genericReason
	}
	if len(topFactors) > 3 {
		topFactors = topFactors[:3]
	}
	return fmt.Sprintf("Best for you due to %s.", strings.Join(topFactors, ", "))
}

// DeduplicateReasons rewrites repeated reason strings so every candidate in
// one response carries a distinct explanation (case-insensitive). Repeats
// get a short differentiator derived from the candidate's department/role,
// or failing that a score, or failing that the id. Scores and order are
// never touched.
func DeduplicateReasons(results []Candidate) {
	seen := make(map[string]int, len(results))
	for i := range results {
		reason := strings.TrimSpace(results[i].AIReasonShort)
		if reason == "" {
			reason = SynthesizeReason(results[i].Factors)
		}

		key := strings.ToLower(reason)
		if count := seen[key]; count > 0 {
			reason = fmt.Sprintf("%s (%s).", strings.TrimRight(reason, "."), reasonSuffix(results[i]))
			seen[key] = count + 1
			seen[strings.ToLower(reason)]++
		} else {
			seen[key] = 1
		}
		results[i].AIReasonShort = reason
	}
}

func reasonSuffix(c Candidate) string {
	role := strings.TrimSpace(c.Role)
	department := strings.TrimSpace(c.Department)

	switch {
	case department != "" && role != "":
		return fmt.Sprintf("%s / %s", department, role)
	case department != "":
		return department
	case role != "":
		return role
	case c.AIScore > 0:
		return fmt.Sprintf("AI %d%%", c.AIScore)
	case c.Match > 0:
		return fmt.Sprintf("Match %d%%", c.Match)
	default:
		return fmt.Sprintf("ID %s", c.ID)
	}
}
