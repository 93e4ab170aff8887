package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/juliagrant/careshift/pkg/core/match"
	"github.com/juliagrant/careshift/pkg/db"
)

// RecommendJobsForStaff scores open postings against one staff member's
// profession, availability and hospital history, then optionally re-ranks
// through the external reasoning service.
func RecommendJobsForStaff(ctx context.Context, database db.Database, reranker *match.Reranker, logger *zap.Logger, staffID, department string, limit int) (*RecommendationResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0, got %d", limit)
	}

	staff, err := database.GetStaff(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff profile: %w", err)
	}

	jobs, err := database.GetOpenJobs(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open jobs: %w", err)
	}

	historyByHospital, err := database.CountByHospitalForStaff(ctx, staff.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment history: %w", err)
	}

	ratings, err := database.GetHospitalRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hospital ratings: %w", err)
	}

	logger.Debug("scoring job pool for staff",
		zap.String("staff_id", staff.ID),
		zap.Int("pool_size", len(jobs)),
		zap.Int("limit", limit))

	pool := make([]match.JobCandidate, 0, len(jobs))
	for _, job := range jobs {
		rating, ok := ratings[job.HospitalID]
		if !ok {
			rating = match.DefaultHospitalRating
		}
		pool = append(pool, match.JobCandidate{
			ID:              job.ID,
			HospitalID:      job.HospitalID,
			HospitalName:    job.HospitalName,
			Role:            fmt.Sprintf("%s - %s", job.ProfessionName, job.DepartmentName),
			Department:      job.DepartmentName,
			ProfessionID:    job.ProfessionID,
			Window:          job.Window,
			HourlyRate:      job.HourlyRate,
			Currency:        job.Currency,
			HospitalRating:  rating,
			StaffShiftCount: historyByHospital[job.HospitalID],
		})
	}

	top := match.ScoreJobsForStaff(match.StaffTarget{
		ProfessionID: staff.ProfessionID,
		Availability: staff.Availability,
	}, pool, limit)

	reqCtx := match.RequestContext{
		StaffID:         staff.ID,
		StaffProfession: staff.ProfessionName,
		Department:      department,
		Limit:           limit,
	}

	return assembleRecommendation(ctx, reranker, logger, match.JobsForStaff, top, reqCtx), nil
}
