package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"
)

const availabilityColumns = `id, staff_id, status, current_shift_id, available_from,
	last_updated, location, notes`

// GetAvailability returns nil with no error when the staff id has no record.
func (d *DB) GetAvailability(ctx context.Context, staffID string) (*model.StaffAvailability, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+availabilityColumns+`
		FROM staff_availability
		WHERE staff_id = $1
	`, staffID)

	var availability model.StaffAvailability
	var status string
	err := row.Scan(&availability.ID, &availability.StaffID, &status,
		&availability.CurrentShiftID, &availability.AvailableFrom,
		&availability.LastUpdated, &availability.Location, &availability.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan availability: %w", err)
	}
	availability.Status = model.AvailabilityStatus(status)
	return &availability, nil
}

// GetAllAvailability retrieves every staff member's availability record.
func (d *DB) GetAllAvailability(ctx context.Context) ([]model.StaffAvailability, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+availabilityColumns+`
		FROM staff_availability
		ORDER BY staff_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var records []model.StaffAvailability
	for rows.Next() {
		var availability model.StaffAvailability
		var status string
		if err := rows.Scan(&availability.ID, &availability.StaffID, &status,
			&availability.CurrentShiftID, &availability.AvailableFrom,
			&availability.LastUpdated, &availability.Location, &availability.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		availability.Status = model.AvailabilityStatus(status)
		records = append(records, availability)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability: %w", err)
	}
	if records == nil {
		records = []model.StaffAvailability{}
	}
	return records, nil
}

// UpsertAvailability replaces the whole availability record for the staff
// member, creating it if absent.
func (d *DB) UpsertAvailability(ctx context.Context, availability *model.StaffAvailability) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO staff_availability (id, staff_id, status, current_shift_id, available_from,
			last_updated, location, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (staff_id) DO UPDATE
		SET status = EXCLUDED.status, current_shift_id = EXCLUDED.current_shift_id,
			available_from = EXCLUDED.available_from, last_updated = EXCLUDED.last_updated,
			location = EXCLUDED.location, notes = EXCLUDED.notes
	`, availability.ID, availability.StaffID, string(availability.Status),
		availability.CurrentShiftID, availability.AvailableFrom, availability.LastUpdated,
		availability.Location, availability.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}
	return nil
}

// AppendTimeline records one availability change. Entries are append-only.
func (d *DB) AppendTimeline(ctx context.Context, entry *model.AvailabilityTimeline) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO availability_timeline (id, staff_id, status, changed_at, changed_by, reason, shift_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.StaffID, string(entry.Status), entry.ChangedAt, entry.ChangedBy,
		entry.Reason, entry.ShiftID)
	if err != nil {
		return fmt.Errorf("failed to append timeline entry: %w", err)
	}
	return nil
}

// GetTimeline returns a staff member's status history newest first, capped
// at limit. A non-positive limit returns the full history.
func (d *DB) GetTimeline(ctx context.Context, staffID string, limit int) ([]model.AvailabilityTimeline, error) {
	query := `
		SELECT id, staff_id, status, changed_at, changed_by, reason, shift_id
		FROM availability_timeline
		WHERE staff_id = $1
		ORDER BY changed_at DESC, created_at DESC
	`
	args := []any{staffID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query timeline: %w", err)
	}
	defer rows.Close()

	var entries []model.AvailabilityTimeline
	for rows.Next() {
		var entry model.AvailabilityTimeline
		var status string
		if err := rows.Scan(&entry.ID, &entry.StaffID, &status, &entry.ChangedAt,
			&entry.ChangedBy, &entry.Reason, &entry.ShiftID); err != nil {
			return nil, fmt.Errorf("failed to scan timeline entry: %w", err)
		}
		entry.Status = model.AvailabilityStatus(status)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timeline: %w", err)
	}
	if entries == nil {
		entries = []model.AvailabilityTimeline{}
	}
	return entries, nil
}
