package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leaveColumns = `
	lr.id, lr.account_id, lr.employee_identifier, lr.type, lr.start_date, lr.end_date,
	lr.days, lr.reason, lr.status, lr.approver_id, lr.approved_at, lr.comments,
	lr.created_at, lr.updated_at`

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return leave.Request{}, err
	}

	status := req.Status
	if status == "" {
		status = leave.StatusPending
	}

	query := `
		INSERT INTO leave_requests AS lr (
			id, account_id, employee_identifier, type, start_date, end_date, days, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING` + leaveColumns

	row := q.QueryRow(ctx, query,
		uuid.NewString(), req.AccountID, req.EmployeeIdentifier, string(req.Type),
		req.StartDate, req.EndDate, req.Days, req.Reason, string(status),
	)
	return scanLeave(row)
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	if _, err := uuid.Parse(id); err != nil {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return leave.Request{}, err
	}

	req, err := scanLeave(q.QueryRow(ctx, `SELECT`+leaveColumns+` FROM leave_requests lr WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, err
	}
	return req, nil
}

// Decide implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Decide(ctx context.Context, id string, d leave.Decision) (leave.Request, error) {
	if _, err := uuid.Parse(id); err != nil {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return leave.Request{}, err
	}

	query := `
		UPDATE leave_requests AS lr
		SET status = $2, approver_id = $3, approved_at = $4, comments = $5, updated_at = NOW()
		WHERE lr.id = $1 AND lr.status = 'Pending'
		RETURNING` + leaveColumns

	decided, err := scanLeave(q.QueryRow(ctx, query, id, string(d.Status), d.ApproverID, d.DecidedAt, d.Comments))
	if err == nil {
		return decided, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.Request{}, err
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return leave.Request{}, err
	}
	return leave.Request{}, leave.ErrAlreadyDecided
}

// ListByAccount implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByAccount(ctx context.Context, accountID string) ([]leave.Request, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return []leave.Request{}, nil
	}

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `SELECT`+leaveColumns+`
		FROM leave_requests lr
		WHERE lr.account_id = $1
		ORDER BY lr.created_at DESC, lr.id DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.Request, 0)
	for rows.Next() {
		req, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// ListAll implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListAll(ctx context.Context) ([]leave.Request, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `SELECT`+leaveColumns+`,
			TRIM(CONCAT(a.first_name, ' ', a.last_name)), a.email
		FROM leave_requests lr
		INNER JOIN accounts a ON a.id = lr.account_id
		ORDER BY lr.created_at DESC, lr.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.Request, 0)
	for rows.Next() {
		var (
			req         leave.Request
			typ, status string
			name, email string
		)
		err := rows.Scan(
			&req.ID,
			&req.AccountID,
			&req.EmployeeIdentifier,
			&typ,
			&req.StartDate,
			&req.EndDate,
			&req.Days,
			&req.Reason,
			&status,
			&req.ApproverID,
			&req.ApprovedAt,
			&req.Comments,
			&req.CreatedAt,
			&req.UpdatedAt,
			&name,
			&email,
		)
		if err != nil {
			return nil, err
		}
		req.Type = leave.Type(typ)
		req.Status = leave.Status(status)
		req.EmployeeName = &name
		req.EmployeeEmail = &email
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func scanLeave(row pgx.Row) (leave.Request, error) {
	var (
		req         leave.Request
		typ, status string
	)
	err := row.Scan(
		&req.ID,
		&req.AccountID,
		&req.EmployeeIdentifier,
		&typ,
		&req.StartDate,
		&req.EndDate,
		&req.Days,
		&req.Reason,
		&status,
		&req.ApproverID,
		&req.ApprovedAt,
		&req.Comments,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, err
	}
	req.Type = leave.Type(typ)
	req.Status = leave.Status(status)
	return req, nil
}
