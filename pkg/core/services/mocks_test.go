package services

import (
	"context"
	"fmt"

	"github.com/juliagrant/careshift/pkg/clients/identityclient"
	"github.com/juliagrant/careshift/pkg/core/model"
)

// mockDatabase is an in-memory db.Database for service tests
type mockDatabase struct {
	staff       []model.StaffProfile
	jobs        []model.JobPosting
	assignments []model.Commitment
	ratings     map[string]float64

	staffHistory    map[string]int
	hospitalHistory map[string]int

	insertedAssignments []model.Commitment
	insertedJobs        []model.JobPosting
	insertedStaff       []model.StaffProfile
	stateUpdates        map[string]model.CommitmentState

	failGetJob    bool
	failInsert    bool
	failGetActive bool
}

func (m *mockDatabase) GetStaff(_ context.Context, staffID string) (*model.StaffProfile, error) {
	for i := range m.staff {
		if m.staff[i].ID == staffID {
			return &m.staff[i], nil
		}
	}
	return nil, fmt.Errorf("staff %s not found", staffID)
}

func (m *mockDatabase) GetActiveStaff(_ context.Context) ([]model.StaffProfile, error) {
	if m.failGetActive {
		return nil, fmt.Errorf("connection refused")
	}
	active := make([]model.StaffProfile, 0, len(m.staff))
	for _, s := range m.staff {
		if s.Status == model.StaffStatusActive {
			active = append(active, s)
		}
	}
	return active, nil
}

func (m *mockDatabase) InsertStaff(_ context.Context, staff *model.StaffProfile) error {
	if m.failInsert {
		return fmt.Errorf("insert failed")
	}
	m.insertedStaff = append(m.insertedStaff, *staff)
	return nil
}

func (m *mockDatabase) GetJob(_ context.Context, jobID string) (*model.JobPosting, error) {
	if m.failGetJob {
		return nil, fmt.Errorf("connection refused")
	}
	for i := range m.jobs {
		if m.jobs[i].ID == jobID {
			return &m.jobs[i], nil
		}
	}
	return nil, fmt.Errorf("job %s not found", jobID)
}

func (m *mockDatabase) GetOpenJobs(_ context.Context, department string) ([]model.JobPosting, error) {
	open := make([]model.JobPosting, 0, len(m.jobs))
	for _, j := range m.jobs {
		if j.Status != model.JobStatusOpen {
			continue
		}
		if department != "" && department != "All" && j.DepartmentName != department {
			continue
		}
		open = append(open, j)
	}
	return open, nil
}

func (m *mockDatabase) InsertJobs(_ context.Context, jobs []model.JobPosting) error {
	if m.failInsert {
		return fmt.Errorf("insert failed")
	}
	m.insertedJobs = append(m.insertedJobs, jobs...)
	return nil
}

func (m *mockDatabase) GetAssignment(_ context.Context, assignmentID string) (*model.Commitment, error) {
	for i := range m.assignments {
		if m.assignments[i].ID == assignmentID {
			return &m.assignments[i], nil
		}
	}
	return nil, fmt.Errorf("assignment %s not found", assignmentID)
}

func (m *mockDatabase) GetCommitments(_ context.Context, staffID string) ([]model.Commitment, error) {
	commitments := make([]model.Commitment, 0, len(m.assignments))
	for _, a := range m.assignments {
		if a.StaffID == staffID {
			commitments = append(commitments, a)
		}
	}
	return commitments, nil
}

func (m *mockDatabase) InsertAssignment(_ context.Context, assignment *model.Commitment) error {
	if m.failInsert {
		return fmt.Errorf("insert failed")
	}
	m.insertedAssignments = append(m.insertedAssignments, *assignment)
	return nil
}

func (m *mockDatabase) UpdateAssignmentState(_ context.Context, assignmentID string, state model.CommitmentState) error {
	if m.stateUpdates == nil {
		m.stateUpdates = make(map[string]model.CommitmentState)
	}
	m.stateUpdates[assignmentID] = state
	return nil
}

func (m *mockDatabase) CountByStaffForHospital(_ context.Context, _ string) (map[string]int, error) {
	if m.staffHistory == nil {
		return map[string]int{}, nil
	}
	return m.staffHistory, nil
}

func (m *mockDatabase) CountByHospitalForStaff(_ context.Context, _ string) (map[string]int, error) {
	if m.hospitalHistory == nil {
		return map[string]int{}, nil
	}
	return m.hospitalHistory, nil
}

func (m *mockDatabase) GetHospitalRatings(_ context.Context) (map[string]float64, error) {
	if m.ratings == nil {
		return map[string]float64{}, nil
	}
	return m.ratings, nil
}

// mockIssuer fakes the external identity provider
type mockIssuer struct {
	externalID string
	err        error

	createdEmail string
}

func (m *mockIssuer) CreateAccount(_ context.Context, email, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.createdEmail = email
	return m.externalID, nil
}

func (m *mockIssuer) Authenticate(_ context.Context, _, _ string) (identityclient.SessionInfo, error) {
	return identityclient.SessionInfo{UserID: m.externalID, AccessToken: "session-token"}, nil
}
