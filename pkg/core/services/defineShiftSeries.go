package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/juliagrant/careshift/pkg/core/model"
	"github.com/juliagrant/careshift/pkg/db"
)

// ShiftSeriesSpec describes a recurring shift to expand into job postings
type ShiftSeriesSpec struct {
	HospitalID     string
	HospitalName   string
	DepartmentName string
	ProfessionID   string
	ProfessionName string
	// RRule is an RFC 5545 recurrence rule for the shift start dates,
	// e.g. "FREQ=WEEKLY;BYDAY=MO,WE"
	RRule string
	// StartMinute/EndMinute are the shift's time-of-day span in minutes
	// since midnight
	StartMinute int
	EndMinute   int
	HourlyRate  string
	Currency    string
	// Count caps how many occurrences are generated
	Count          int
	RequiredSkills []model.SkillRequirement
}

// ShiftSeriesResult reports the postings created from one series
type ShiftSeriesResult struct {
	Jobs []model.JobPosting
}

// DefineShiftSeries expands a recurrence rule into dated job postings and
// persists them. Occurrences are generated from the next midnight onward.
func DefineShiftSeries(ctx context.Context, database db.JobStore, logger *zap.Logger, spec ShiftSeriesSpec) (*ShiftSeriesResult, error) {
	if spec.Count <= 0 {
		return nil, fmt.Errorf("occurrence count must be positive, got %d", spec.Count)
	}
	if spec.StartMinute >= spec.EndMinute {
		return nil, fmt.Errorf("shift start must be before shift end within the day")
	}

	rule, err := rrule.StrToRRule(spec.RRule)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence rule: %w", err)
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	rule.DTStart(from)

	logger.Info("expanding shift series",
		zap.String("hospital_id", spec.HospitalID),
		zap.String("rrule", spec.RRule),
		zap.Int("count", spec.Count))

	iterator := rule.Iterator()
	jobs := make([]model.JobPosting, 0, spec.Count)
	for len(jobs) < spec.Count {
		day, ok := iterator()
		if !ok {
			break
		}
		start := day.Add(time.Duration(spec.StartMinute) * time.Minute)
		end := day.Add(time.Duration(spec.EndMinute) * time.Minute)

		jobs = append(jobs, model.JobPosting{
			ID:             uuid.New().String(),
			HospitalID:     spec.HospitalID,
			HospitalName:   spec.HospitalName,
			DepartmentName: spec.DepartmentName,
			ProfessionID:   spec.ProfessionID,
			ProfessionName: spec.ProfessionName,
			Status:         model.JobStatusOpen,
			Window:         model.ShiftWindow{Start: start, End: end},
			HourlyRate:     spec.HourlyRate,
			Currency:       spec.Currency,
			RequiredSkills: spec.RequiredSkills,
		})
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("recurrence rule produced no occurrences")
	}

	if err := database.InsertJobs(ctx, jobs); err != nil {
		return nil, fmt.Errorf("failed to insert job postings: %w", err)
	}

	logger.Info("shift series created",
		zap.Int("postings", len(jobs)),
		zap.Time("first_shift", jobs[0].Window.Start),
		zap.Time("last_shift", jobs[len(jobs)-1].Window.Start))

	return &ShiftSeriesResult{Jobs: jobs}, nil
}
