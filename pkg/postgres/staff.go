package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/juliagrant/careshift/pkg/core/model"
)

// GetStaff retrieves one staff profile with skills and availability slots
func (db *DB) GetStaff(ctx context.Context, staffID string) (*model.StaffProfile, error) {
	row := db.pool.QueryRow(ctx, `
		SELECT s.id, s.external_user_id, s.full_name, s.email, s.profession_id,
		       p.name, s.status, s.avatar_url, s.rating_avg, s.total_completed_shifts
		FROM staff_profiles s
		JOIN professions p ON p.id = s.profession_id
		WHERE s.id = $1
	`, staffID)

	var s model.StaffProfile
	var avatar *string
	if err := row.Scan(&s.ID, &s.ExternalUserID, &s.FullName, &s.Email, &s.ProfessionID,
		&s.ProfessionName, &s.Status, &avatar, &s.RatingAvg, &s.CompletedShifts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("staff %s not found", staffID)
		}
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	if avatar != nil {
		s.AvatarURL = *avatar
	}

	if err := db.attachStaffDetails(ctx, []*model.StaffProfile{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetActiveStaff retrieves all active staff profiles with their skills and
// availability slots materialized
func (db *DB) GetActiveStaff(ctx context.Context) ([]model.StaffProfile, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT s.id, s.external_user_id, s.full_name, s.email, s.profession_id,
		       p.name, s.status, s.avatar_url, s.rating_avg, s.total_completed_shifts
		FROM staff_profiles s
		JOIN professions p ON p.id = s.profession_id
		WHERE s.status = 'ACTIVE'
		ORDER BY s.full_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active staff: %w", err)
	}
	defer rows.Close()

	var staff []model.StaffProfile
	for rows.Next() {
		var s model.StaffProfile
		var avatar *string
		if err := rows.Scan(&s.ID, &s.ExternalUserID, &s.FullName, &s.Email, &s.ProfessionID,
			&s.ProfessionName, &s.Status, &avatar, &s.RatingAvg, &s.CompletedShifts); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		if avatar != nil {
			s.AvatarURL = *avatar
		}
		staff = append(staff, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	refs := make([]*model.StaffProfile, len(staff))
	for i := range staff {
		refs[i] = &staff[i]
	}
	if err := db.attachStaffDetails(ctx, refs); err != nil {
		return nil, err
	}
	return staff, nil
}

// InsertStaff inserts a new staff profile with its skills and slots
func (db *DB) InsertStaff(ctx context.Context, staff *model.StaffProfile) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO staff_profiles (id, external_user_id, full_name, email, profession_id, status, rating_avg, total_completed_shifts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, staff.ID, staff.ExternalUserID, staff.FullName, staff.Email, staff.ProfessionID,
		staff.Status, staff.RatingAvg, staff.CompletedShifts)
	if err != nil {
		return fmt.Errorf("failed to insert staff profile: %w", err)
	}

	for _, skill := range staff.Skills {
		_, err := tx.Exec(ctx, `
			INSERT INTO staff_skills (staff_id, skill_id, proficiency)
			VALUES ($1, $2, $3)
		`, staff.ID, skill.SkillID, skill.Proficiency)
		if err != nil {
			return fmt.Errorf("failed to insert staff skill: %w", err)
		}
	}

	for _, slot := range staff.Availability {
		_, err := tx.Exec(ctx, `
			INSERT INTO availability_slots (staff_id, day_of_week, start_minute, end_minute, is_active)
			VALUES ($1, $2, $3, $4, $5)
		`, staff.ID, int(slot.Weekday), slot.StartMinute, slot.EndMinute, slot.Active)
		if err != nil {
			return fmt.Errorf("failed to insert availability slot: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// attachStaffDetails loads skills and availability slots for the given
// profiles in two batched queries
func (db *DB) attachStaffDetails(ctx context.Context, staff []*model.StaffProfile) error {
	if len(staff) == 0 {
		return nil
	}

	ids := make([]string, len(staff))
	byID := make(map[string]*model.StaffProfile, len(staff))
	for i, s := range staff {
		ids[i] = s.ID
		byID[s.ID] = s
	}

	rows, err := db.pool.Query(ctx, `
		SELECT staff_id, skill_id, proficiency
		FROM staff_skills
		WHERE staff_id = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query staff skills: %w", err)
	}
	for rows.Next() {
		var staffID string
		var skill model.StaffSkill
		if err := rows.Scan(&staffID, &skill.SkillID, &skill.Proficiency); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan staff skill: %w", err)
		}
		if s, ok := byID[staffID]; ok {
			s.Skills = append(s.Skills, skill)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating staff skills: %w", err)
	}

	rows, err = db.pool.Query(ctx, `
		SELECT staff_id, day_of_week, start_minute, end_minute, is_active
		FROM availability_slots
		WHERE staff_id = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query availability slots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var staffID string
		var weekday int
		var slot model.AvailabilitySlot
		if err := rows.Scan(&staffID, &weekday, &slot.StartMinute, &slot.EndMinute, &slot.Active); err != nil {
			return fmt.Errorf("failed to scan availability slot: %w", err)
		}
		slot.Weekday = time.Weekday(weekday)
		if s, ok := byID[staffID]; ok {
			s.Availability = append(s.Availability, slot)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating availability slots: %w", err)
	}

	return nil
}
