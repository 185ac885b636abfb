package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	ar.id, ar.account_id, ar.employee_identifier, ar.date, ar.check_in, ar.check_out,
	ar.check_in_at, ar.check_out_at, ar.status, ar.working_hours, ar.created_at, ar.updated_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// CheckIn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CheckIn(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return attendance.Record{}, err
	}

	status := rec.Status
	if status == "" {
		status = attendance.StatusPresent
	}

	// the conflict branch only fires while check_in is still unset
	query := `
		INSERT INTO attendance_records AS ar (
			id, account_id, employee_identifier, date, check_in, check_in_at, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (account_id, date) DO UPDATE
		SET check_in = EXCLUDED.check_in,
			check_in_at = EXCLUDED.check_in_at,
			status = EXCLUDED.status,
			updated_at = NOW()
		WHERE ar.check_in IS NULL
		RETURNING` + attendanceColumns

	row := q.QueryRow(ctx, query,
		uuid.NewString(), rec.AccountID, rec.EmployeeIdentifier, rec.Date, rec.CheckIn, rec.CheckInAt, string(status),
	)
	created, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, translateError(err)
	}
	return created, nil
}

// CheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CheckOut(ctx context.Context, accountID string, date time.Time, checkOut string, at time.Time) (attendance.Record, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return attendance.Record{}, attendance.ErrNotCheckedInYet
	}

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return attendance.Record{}, err
	}

	query := `
		UPDATE attendance_records AS ar
		SET check_out = $3,
			check_out_at = $4::timestamptz,
			working_hours = COALESCE(
				ROUND(GREATEST(EXTRACT(EPOCH FROM ($4::timestamptz - ar.check_in_at)), 0)::numeric / 3600, 2),
				0
			)::double precision,
			updated_at = NOW()
		WHERE ar.account_id = $1
		  AND ar.date = $2
		  AND ar.check_in IS NOT NULL
		  AND ar.check_out IS NULL
		RETURNING` + attendanceColumns

	rec, err := scanAttendance(q.QueryRow(ctx, query, accountID, date, checkOut, at))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, err
	}

	// nothing updated; report which guard failed
	current, err := r.GetByAccountAndDate(ctx, accountID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Record{}, attendance.ErrNotCheckedInYet
		}
		return attendance.Record{}, err
	}
	if current.State() == attendance.StateNotMarked {
		return attendance.Record{}, attendance.ErrNotCheckedInYet
	}
	return attendance.Record{}, attendance.ErrAlreadyCheckedOut
}

// GetByAccountAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByAccountAndDate(ctx context.Context, accountID string, date time.Time) (attendance.Record, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return attendance.Record{}, err
	}

	query := `SELECT` + attendanceColumns + `
		FROM attendance_records ar
		WHERE ar.account_id = $1 AND ar.date = $2`
	rec, err := scanAttendance(q.QueryRow(ctx, query, accountID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

// ListByAccount implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByAccount(ctx context.Context, accountID string, limit int) ([]attendance.Record, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return []attendance.Record{}, nil
	}

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `SELECT` + attendanceColumns + `
		FROM attendance_records ar
		WHERE ar.account_id = $1
		ORDER BY ar.date DESC
		LIMIT $2`
	rows, err := q.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `SELECT` + attendanceColumns + `,
			TRIM(CONCAT(a.first_name, ' ', a.last_name))
		FROM attendance_records ar
		INNER JOIN accounts a ON a.id = ar.account_id
		WHERE ar.date = $1
		ORDER BY ar.employee_identifier`
	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var rec attendance.Record
		var status string
		err := rows.Scan(
			&rec.ID,
			&rec.AccountID,
			&rec.EmployeeIdentifier,
			&rec.Date,
			&rec.CheckIn,
			&rec.CheckOut,
			&rec.CheckInAt,
			&rec.CheckOutAt,
			&status,
			&rec.WorkingHours,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		rec.Status = attendance.Status(status)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var status string
	err := row.Scan(
		&rec.ID,
		&rec.AccountID,
		&rec.EmployeeIdentifier,
		&rec.Date,
		&rec.CheckIn,
		&rec.CheckOut,
		&rec.CheckInAt,
		&rec.CheckOutAt,
		&status,
		&rec.WorkingHours,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	rec.Status = attendance.Status(status)
	return rec, nil
}
