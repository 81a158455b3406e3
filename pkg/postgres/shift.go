package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/db"
)

const shiftColumns = `id, date, shift_type, department, start_time, end_time, required_staff,
	minimum_skill_level, priority, special_requirements, max_capacity, status,
	actual_start_time, actual_end_time, is_extended, completion_notes`

// GetShifts retrieves every shift, oldest first.
func (d *DB) GetShifts(ctx context.Context) ([]model.Shift, error) {
	return d.queryShifts(ctx, `
		SELECT `+shiftColumns+`
		FROM shift
		ORDER BY created_at, id
	`)
}

// GetShiftsByDate retrieves the shifts on one calendar date.
func (d *DB) GetShiftsByDate(ctx context.Context, date string) ([]model.Shift, error) {
	return d.queryShifts(ctx, `
		SELECT `+shiftColumns+`
		FROM shift
		WHERE date = $1
		ORDER BY created_at, id
	`, date)
}

func (d *DB) queryShifts(ctx context.Context, query string, args ...any) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}
	if shifts == nil {
		shifts = []model.Shift{}
	}
	return shifts, nil
}

// GetShift returns nil with no error when the id is unknown.
func (d *DB) GetShift(ctx context.Context, id string) (*model.Shift, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+shiftColumns+`
		FROM shift
		WHERE id = $1
	`, id)

	shift, err := scanShift(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// InsertShift stores a new shift.
func (d *DB) InsertShift(ctx context.Context, shift *model.Shift) error {
	requiredStaff, specialRequirements, err := marshalShiftFields(shift)
	if err != nil {
		return err
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO shift (id, date, shift_type, department, start_time, end_time, required_staff,
			minimum_skill_level, priority, special_requirements, max_capacity, status,
			actual_start_time, actual_end_time, is_extended, completion_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, shift.ID, shift.Date, string(shift.ShiftType), shift.Department, shift.StartTime,
		shift.EndTime, requiredStaff, shift.MinimumSkillLevel, string(shift.Priority),
		specialRequirements, shift.MaxCapacity, string(shift.Status),
		shift.ActualStartTime, shift.ActualEndTime, shift.IsExtended, shift.CompletionNotes)
	if err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}
	return nil
}

// UpdateShift replaces a stored shift.
func (d *DB) UpdateShift(ctx context.Context, shift *model.Shift) error {
	requiredStaff, specialRequirements, err := marshalShiftFields(shift)
	if err != nil {
		return err
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE shift
		SET date = $2, shift_type = $3, department = $4, start_time = $5, end_time = $6,
			required_staff = $7, minimum_skill_level = $8, priority = $9,
			special_requirements = $10, max_capacity = $11, status = $12,
			actual_start_time = $13, actual_end_time = $14, is_extended = $15,
			completion_notes = $16
		WHERE id = $1
	`, shift.ID, shift.Date, string(shift.ShiftType), shift.Department, shift.StartTime,
		shift.EndTime, requiredStaff, shift.MinimumSkillLevel, string(shift.Priority),
		specialRequirements, shift.MaxCapacity, string(shift.Status),
		shift.ActualStartTime, shift.ActualEndTime, shift.IsExtended, shift.CompletionNotes)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shift %s: %w", shift.ID, db.ErrNotFound)
	}
	return nil
}

// DeleteShift removes a shift.
func (d *DB) DeleteShift(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM shift WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shift %s: %w", id, db.ErrNotFound)
	}
	return nil
}

func marshalShiftFields(shift *model.Shift) (requiredStaff, specialRequirements []byte, err error) {
	staff := shift.RequiredStaff
	if staff == nil {
		staff = map[string]int{}
	}
	requiredStaff, err = json.Marshal(staff)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal required staff: %w", err)
	}
	specialRequirements, err = json.Marshal(orEmptyList(shift.SpecialRequirements))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal special requirements: %w", err)
	}
	return requiredStaff, specialRequirements, nil
}

func scanShift(row pgx.Row) (*model.Shift, error) {
	var shift model.Shift
	var shiftType, priority, status string
	var requiredStaff, specialRequirements []byte

	err := row.Scan(&shift.ID, &shift.Date, &shiftType, &shift.Department, &shift.StartTime,
		&shift.EndTime, &requiredStaff, &shift.MinimumSkillLevel, &priority,
		&specialRequirements, &shift.MaxCapacity, &status,
		&shift.ActualStartTime, &shift.ActualEndTime, &shift.IsExtended, &shift.CompletionNotes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan shift: %w", err)
	}

	shift.ShiftType = model.ShiftType(shiftType)
	shift.Priority = model.Priority(priority)
	shift.Status = model.ShiftStatus(status)
	if err := json.Unmarshal(requiredStaff, &shift.RequiredStaff); err != nil {
		return nil, fmt.Errorf("failed to unmarshal required staff: %w", err)
	}
	if err := json.Unmarshal(specialRequirements, &shift.SpecialRequirements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal special requirements: %w", err)
	}
	return &shift, nil
}
