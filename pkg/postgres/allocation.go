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

const allocationColumns = `id, staff_id, shift_id, status, assigned_at, confidence_score,
	reasoning, constraints_met, potential_issues, checked_in_at, checked_out_at,
	is_present, overtime_hours`

// GetAllocations retrieves every allocation record, oldest first.
func (d *DB) GetAllocations(ctx context.Context) ([]model.AllocationRecord, error) {
	return d.queryAllocations(ctx, `
		SELECT `+allocationColumns+`
		FROM allocation
		ORDER BY created_at, id
	`)
}

// GetAllocationsByStaff retrieves one staff member's allocations.
func (d *DB) GetAllocationsByStaff(ctx context.Context, staffID string) ([]model.AllocationRecord, error) {
	return d.queryAllocations(ctx, `
		SELECT `+allocationColumns+`
		FROM allocation
		WHERE staff_id = $1
		ORDER BY created_at, id
	`, staffID)
}

// GetAllocationsByShift retrieves one shift's allocations.
func (d *DB) GetAllocationsByShift(ctx context.Context, shiftID string) ([]model.AllocationRecord, error) {
	return d.queryAllocations(ctx, `
		SELECT `+allocationColumns+`
		FROM allocation
		WHERE shift_id = $1
		ORDER BY created_at, id
	`, shiftID)
}

func (d *DB) queryAllocations(ctx context.Context, query string, args ...any) ([]model.AllocationRecord, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []model.AllocationRecord
	for rows.Next() {
		allocation, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, *allocation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}
	if allocations == nil {
		allocations = []model.AllocationRecord{}
	}
	return allocations, nil
}

// GetAllocation returns nil with no error when the id is unknown.
func (d *DB) GetAllocation(ctx context.Context, id string) (*model.AllocationRecord, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+allocationColumns+`
		FROM allocation
		WHERE id = $1
	`, id)

	allocation, err := scanAllocation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return allocation, nil
}

// InsertAllocation stores a new allocation record.
func (d *DB) InsertAllocation(ctx context.Context, allocation *model.AllocationRecord) error {
	constraintsMet, potentialIssues, err := marshalAllocationLists(allocation)
	if err != nil {
		return err
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO allocation (id, staff_id, shift_id, status, assigned_at, confidence_score,
			reasoning, constraints_met, potential_issues, checked_in_at, checked_out_at,
			is_present, overtime_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, allocation.ID, allocation.StaffID, allocation.ShiftID, string(allocation.Status),
		allocation.AssignedAt, allocation.ConfidenceScore, allocation.Reasoning,
		constraintsMet, potentialIssues, allocation.CheckedInAt, allocation.CheckedOutAt,
		allocation.IsPresent, allocation.OvertimeHours)
	if err != nil {
		return fmt.Errorf("failed to insert allocation: %w", err)
	}
	return nil
}

// UpdateAllocation replaces a stored allocation record.
func (d *DB) UpdateAllocation(ctx context.Context, allocation *model.AllocationRecord) error {
	constraintsMet, potentialIssues, err := marshalAllocationLists(allocation)
	if err != nil {
		return err
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE allocation
		SET staff_id = $2, shift_id = $3, status = $4, assigned_at = $5, confidence_score = $6,
			reasoning = $7, constraints_met = $8, potential_issues = $9, checked_in_at = $10,
			checked_out_at = $11, is_present = $12, overtime_hours = $13
		WHERE id = $1
	`, allocation.ID, allocation.StaffID, allocation.ShiftID, string(allocation.Status),
		allocation.AssignedAt, allocation.ConfidenceScore, allocation.Reasoning,
		constraintsMet, potentialIssues, allocation.CheckedInAt, allocation.CheckedOutAt,
		allocation.IsPresent, allocation.OvertimeHours)
	if err != nil {
		return fmt.Errorf("failed to update allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("allocation %s: %w", allocation.ID, db.ErrNotFound)
	}
	return nil
}

// DeleteAllocation removes an allocation record.
func (d *DB) DeleteAllocation(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM allocation WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("allocation %s: %w", id, db.ErrNotFound)
	}
	return nil
}

func marshalAllocationLists(allocation *model.AllocationRecord) (constraintsMet, potentialIssues []byte, err error) {
	constraintsMet, err = json.Marshal(orEmptyList(allocation.ConstraintsMet))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal constraints met: %w", err)
	}
	potentialIssues, err = json.Marshal(orEmptyList(allocation.PotentialIssues))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal potential issues: %w", err)
	}
	return constraintsMet, potentialIssues, nil
}

func scanAllocation(row pgx.Row) (*model.AllocationRecord, error) {
	var allocation model.AllocationRecord
	var status string
	var constraintsMet, potentialIssues []byte

	err := row.Scan(&allocation.ID, &allocation.StaffID, &allocation.ShiftID, &status,
		&allocation.AssignedAt, &allocation.ConfidenceScore, &allocation.Reasoning,
		&constraintsMet, &potentialIssues, &allocation.CheckedInAt, &allocation.CheckedOutAt,
		&allocation.IsPresent, &allocation.OvertimeHours)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan allocation: %w", err)
	}

	allocation.Status = model.AllocationStatus(status)
	if err := json.Unmarshal(constraintsMet, &allocation.ConstraintsMet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal constraints met: %w", err)
	}
	if err := json.Unmarshal(potentialIssues, &allocation.PotentialIssues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal potential issues: %w", err)
	}
	return &allocation, nil
}
