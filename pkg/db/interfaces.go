package db

import (
	"context"

	"github.com/juliagrant/careshift/pkg/core/model"
)

// StaffStore defines staff profile read/write operations
type StaffStore interface {
	GetStaff(ctx context.Context, staffID string) (*model.StaffProfile, error)
	// GetActiveStaff returns active staff with skills and availability
	// slots already materialized
	GetActiveStaff(ctx context.Context) ([]model.StaffProfile, error)
	InsertStaff(ctx context.Context, staff *model.StaffProfile) error
}

// JobStore defines job posting read/write operations
type JobStore interface {
	GetJob(ctx context.Context, jobID string) (*model.JobPosting, error)
	// GetOpenJobs returns OPEN postings, optionally filtered by department
	// name ("" or "All" means no filter)
	GetOpenJobs(ctx context.Context, department string) ([]model.JobPosting, error)
	InsertJobs(ctx context.Context, jobs []model.JobPosting) error
}

// AssignmentStore defines shift assignment operations
type AssignmentStore interface {
	GetAssignment(ctx context.Context, assignmentID string) (*model.Commitment, error)
	// GetCommitments returns all of a staff member's assignments in every state
	GetCommitments(ctx context.Context, staffID string) ([]model.Commitment, error)
	InsertAssignment(ctx context.Context, assignment *model.Commitment) error
	UpdateAssignmentState(ctx context.Context, assignmentID string, state model.CommitmentState) error
	// CountByStaffForHospital returns prior assignment counts per staff id
	// at one hospital (staff-for-job history signal)
	CountByStaffForHospital(ctx context.Context, hospitalID string) (map[string]int, error)
	// CountByHospitalForStaff returns prior assignment counts per hospital
	// id for one staff member (jobs-for-staff history signal)
	CountByHospitalForStaff(ctx context.Context, staffID string) (map[string]int, error)
}

// ReviewStore defines rating aggregate reads
type ReviewStore interface {
	// GetHospitalRatings returns average review ratings keyed by hospital id
	GetHospitalRatings(ctx context.Context) (map[string]float64, error)
}

// Database composes every store the services depend on
type Database interface {
	StaffStore
	JobStore
	AssignmentStore
	ReviewStore
}
