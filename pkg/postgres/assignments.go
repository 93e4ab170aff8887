package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/juliagrant/careshift/pkg/core/model"
)

// GetAssignment retrieves one shift assignment
func (db *DB) GetAssignment(ctx context.Context, assignmentID string) (*model.Commitment, error) {
	row := db.pool.QueryRow(ctx, `
		SELECT id, job_id, staff_id, hospital_id, shift_start_snapshot, shift_end_snapshot, status
		FROM shift_assignments
		WHERE id = $1
	`, assignmentID)

	var c model.Commitment
	if err := row.Scan(&c.ID, &c.JobID, &c.StaffID, &c.HospitalID,
		&c.Window.Start, &c.Window.End, &c.State); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("assignment %s not found", assignmentID)
		}
		return nil, fmt.Errorf("failed to query assignment: %w", err)
	}
	return &c, nil
}

// GetCommitments retrieves all of a staff member's assignments, every state
func (db *DB) GetCommitments(ctx context.Context, staffID string) ([]model.Commitment, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, job_id, staff_id, hospital_id, shift_start_snapshot, shift_end_snapshot, status
		FROM shift_assignments
		WHERE staff_id = $1
		ORDER BY shift_start_snapshot
	`, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to query commitments: %w", err)
	}
	defer rows.Close()

	var commitments []model.Commitment
	for rows.Next() {
		var c model.Commitment
		if err := rows.Scan(&c.ID, &c.JobID, &c.StaffID, &c.HospitalID,
			&c.Window.Start, &c.Window.End, &c.State); err != nil {
			return nil, fmt.Errorf("failed to scan commitment: %w", err)
		}
		commitments = append(commitments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating commitments: %w", err)
	}
	return commitments, nil
}

// InsertAssignment persists a confirmed assignment
func (db *DB) InsertAssignment(ctx context.Context, assignment *model.Commitment) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO shift_assignments (id, job_id, staff_id, hospital_id, shift_start_snapshot, shift_end_snapshot, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, assignment.ID, assignment.JobID, assignment.StaffID, assignment.HospitalID,
		assignment.Window.Start, assignment.Window.End, assignment.State)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

// UpdateAssignmentState transitions an assignment's lifecycle state
func (db *DB) UpdateAssignmentState(ctx context.Context, assignmentID string, state model.CommitmentState) error {
	tag, err := db.pool.Exec(ctx, `
		UPDATE shift_assignments SET status = $2 WHERE id = $1
	`, assignmentID, state)
	if err != nil {
		return fmt.Errorf("failed to update assignment state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s not found", assignmentID)
	}
	return nil
}

// CountByStaffForHospital returns prior assignment counts per staff id at
// one hospital
func (db *DB) CountByStaffForHospital(ctx context.Context, hospitalID string) (map[string]int, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT staff_id, COUNT(*)
		FROM shift_assignments
		WHERE hospital_id = $1
		GROUP BY staff_id
	`, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment counts: %w", err)
	}
	defer rows.Close()

	return scanCounts(rows)
}

// CountByHospitalForStaff returns prior assignment counts per hospital id
// for one staff member
func (db *DB) CountByHospitalForStaff(ctx context.Context, staffID string) (map[string]int, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT hospital_id, COUNT(*)
		FROM shift_assignments
		WHERE staff_id = $1
		GROUP BY hospital_id
	`, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment counts: %w", err)
	}
	defer rows.Close()

	return scanCounts(rows)
}

func scanCounts(rows pgx.Rows) (map[string]int, error) {
	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counts: %w", err)
	}
	return counts, nil
}
