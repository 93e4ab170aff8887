package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/juliagrant/careshift/pkg/core/model"
)

const jobSelect = `
	SELECT j.id, j.hospital_id, h.name, j.department_name, j.profession_id,
	       p.name, j.status, j.shift_start, j.shift_end, j.hourly_rate, j.currency
	FROM job_postings j
	JOIN hospitals h ON h.id = j.hospital_id
	JOIN professions p ON p.id = j.profession_id
`

// GetJob retrieves one job posting with its required skills
func (db *DB) GetJob(ctx context.Context, jobID string) (*model.JobPosting, error) {
	row := db.pool.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, jobID)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("job %s not found", jobID)
		}
		return nil, fmt.Errorf("failed to query job: %w", err)
	}

	if err := db.attachRequiredSkills(ctx, []*model.JobPosting{job}); err != nil {
		return nil, err
	}
	return job, nil
}

// GetOpenJobs retrieves OPEN postings, optionally filtered by department
func (db *DB) GetOpenJobs(ctx context.Context, department string) ([]model.JobPosting, error) {
	query := jobSelect + ` WHERE j.status = 'OPEN'`
	args := []any{}
	if department != "" && department != "All" {
		query += ` AND LOWER(j.department_name) = LOWER($1)`
		args = append(args, department)
	}
	query += ` ORDER BY j.shift_start`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query open jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	refs := make([]*model.JobPosting, len(jobs))
	for i := range jobs {
		refs[i] = &jobs[i]
	}
	if err := db.attachRequiredSkills(ctx, refs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// InsertJobs inserts job postings with their required skills
func (db *DB) InsertJobs(ctx context.Context, jobs []model.JobPosting) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, job := range jobs {
		_, err := tx.Exec(ctx, `
			INSERT INTO job_postings (id, hospital_id, department_name, profession_id, status, shift_start, shift_end, hourly_rate, currency)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, job.ID, job.HospitalID, job.DepartmentName, job.ProfessionID, job.Status,
			job.Window.Start, job.Window.End, job.HourlyRate, job.Currency)
		if err != nil {
			return fmt.Errorf("failed to insert job posting: %w", err)
		}

		for _, req := range job.RequiredSkills {
			_, err := tx.Exec(ctx, `
				INSERT INTO job_required_skills (job_id, skill_id, minimum_proficiency)
				VALUES ($1, $2, $3)
			`, job.ID, req.SkillID, req.MinimumProficiency)
			if err != nil {
				return fmt.Errorf("failed to insert required skill: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanJob(row pgx.Row) (*model.JobPosting, error) {
	var j model.JobPosting
	if err := row.Scan(&j.ID, &j.HospitalID, &j.HospitalName, &j.DepartmentName, &j.ProfessionID,
		&j.ProfessionName, &j.Status, &j.Window.Start, &j.Window.End, &j.HourlyRate, &j.Currency); err != nil {
		return nil, err
	}
	return &j, nil
}

func (db *DB) attachRequiredSkills(ctx context.Context, jobs []*model.JobPosting) error {
	if len(jobs) == 0 {
		return nil
	}

	ids := make([]string, len(jobs))
	byID := make(map[string]*model.JobPosting, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
		byID[j.ID] = j
	}

	rows, err := db.pool.Query(ctx, `
		SELECT job_id, skill_id, minimum_proficiency
		FROM job_required_skills
		WHERE job_id = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query required skills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var jobID string
		var req model.SkillRequirement
		if err := rows.Scan(&jobID, &req.SkillID, &req.MinimumProficiency); err != nil {
			return fmt.Errorf("failed to scan required skill: %w", err)
		}
		if j, ok := byID[jobID]; ok {
			j.RequiredSkills = append(j.RequiredSkills, req)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating required skills: %w", err)
	}
	return nil
}
