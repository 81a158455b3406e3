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

const staffColumns = `id, name, role, department, skill_level, max_hours_per_week,
	preferred_shifts, unavailable_dates, certification_level, experience_years, hourly_rate`

// GetStaffMembers retrieves every staff member, oldest first.
func (d *DB) GetStaffMembers(ctx context.Context) ([]model.StaffMember, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+staffColumns+`
		FROM staff_member
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff members: %w", err)
	}
	defer rows.Close()

	var members []model.StaffMember
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff members: %w", err)
	}
	if members == nil {
		members = []model.StaffMember{}
	}
	return members, nil
}

// GetStaffMember returns nil with no error when the id is unknown.
func (d *DB) GetStaffMember(ctx context.Context, id string) (*model.StaffMember, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+staffColumns+`
		FROM staff_member
		WHERE id = $1
	`, id)

	member, err := scanStaff(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

// InsertStaffMember stores a new staff member and initializes their
// availability record as available in their home department.
func (d *DB) InsertStaffMember(ctx context.Context, staff *model.StaffMember) error {
	preferredShifts, unavailableDates, err := marshalStaffLists(staff)
	if err != nil {
		return err
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO staff_member (id, name, role, department, skill_level, max_hours_per_week,
			preferred_shifts, unavailable_dates, certification_level, experience_years, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, staff.ID, staff.Name, string(staff.Role), string(staff.Department), staff.SkillLevel,
		staff.MaxHoursPerWeek, preferredShifts, unavailableDates, staff.CertificationLevel,
		staff.ExperienceYears, staff.HourlyRate)
	if err != nil {
		return fmt.Errorf("failed to insert staff member: %w", err)
	}

	now := model.NowTimestamp()
	_, err = tx.Exec(ctx, `
		INSERT INTO staff_availability (id, staff_id, status, current_shift_id, available_from,
			last_updated, location, notes)
		VALUES ($1, $2, $3, '', $4, $5, $6, $7)
		ON CONFLICT (staff_id) DO NOTHING
	`, "avail_"+staff.ID, staff.ID, string(model.AvailabilityAvailable), now, now,
		string(staff.Department), "Initialized as available")
	if err != nil {
		return fmt.Errorf("failed to initialize availability: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit staff insert: %w", err)
	}
	return nil
}

// UpdateStaffMember replaces a stored staff member.
func (d *DB) UpdateStaffMember(ctx context.Context, staff *model.StaffMember) error {
	preferredShifts, unavailableDates, err := marshalStaffLists(staff)
	if err != nil {
		return err
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE staff_member
		SET name = $2, role = $3, department = $4, skill_level = $5, max_hours_per_week = $6,
			preferred_shifts = $7, unavailable_dates = $8, certification_level = $9,
			experience_years = $10, hourly_rate = $11
		WHERE id = $1
	`, staff.ID, staff.Name, string(staff.Role), string(staff.Department), staff.SkillLevel,
		staff.MaxHoursPerWeek, preferredShifts, unavailableDates, staff.CertificationLevel,
		staff.ExperienceYears, staff.HourlyRate)
	if err != nil {
		return fmt.Errorf("failed to update staff member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("staff member %s: %w", staff.ID, db.ErrNotFound)
	}
	return nil
}

// DeleteStaffMember removes a staff member.
func (d *DB) DeleteStaffMember(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM staff_member WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("staff member %s: %w", id, db.ErrNotFound)
	}
	return nil
}

func marshalStaffLists(staff *model.StaffMember) (preferredShifts, unavailableDates []byte, err error) {
	preferredShifts, err = json.Marshal(orEmptyList(staff.PreferredShifts))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal preferred shifts: %w", err)
	}
	unavailableDates, err = json.Marshal(orEmptyList(staff.UnavailableDates))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal unavailable dates: %w", err)
	}
	return preferredShifts, unavailableDates, nil
}

func scanStaff(row pgx.Row) (*model.StaffMember, error) {
	var member model.StaffMember
	var role, department string
	var preferredShifts, unavailableDates []byte

	err := row.Scan(&member.ID, &member.Name, &role, &department, &member.SkillLevel,
		&member.MaxHoursPerWeek, &preferredShifts, &unavailableDates,
		&member.CertificationLevel, &member.ExperienceYears, &member.HourlyRate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan staff member: %w", err)
	}

	member.Role = model.Role(role)
	member.Department = model.Department(department)
	if err := json.Unmarshal(preferredShifts, &member.PreferredShifts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferred shifts: %w", err)
	}
	if err := json.Unmarshal(unavailableDates, &member.UnavailableDates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal unavailable dates: %w", err)
	}
	return &member, nil
}

// orEmptyList keeps JSON columns as [] rather than null.
func orEmptyList(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
