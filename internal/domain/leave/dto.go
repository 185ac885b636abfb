package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type ApplyLeaveRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`

	start time.Time
	end   time.Time
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Type(r.Type).IsValid() {
		errs.Add("type", "type must be one of: Paid Leave, Sick Leave, Unpaid Leave")
	}

	if t, ok := validator.IsValidDate(r.StartDate); ok {
		r.start = t
	} else {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}

	if t, ok := validator.IsValidDate(r.EndDate); ok {
		r.end = t
	} else {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}

	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		errs.Add("reason", "reason is required")
	} else if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must be at most 1000 characters")
	}

	return errs.Err()
}

// Dates returns the parsed start and end dates. Validate must run first.
func (r *ApplyLeaveRequest) Dates() (time.Time, time.Time) {
	return r.start, r.end
}

type DecideLeaveRequest struct {
	Status   string  `json:"status"`
	Comments *string `json:"comments,omitempty"`
}

func (r *DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Status(r.Status).IsDecision() {
		errs.Add("status", "status must be one of: Approved, Rejected")
	}
	if r.Comments != nil {
		c := strings.TrimSpace(*r.Comments)
		if c == "" {
			r.Comments = nil
		} else if len(c) > 1000 {
			errs.Add("comments", "comments must be at most 1000 characters")
		} else {
			r.Comments = &c
		}
	}

	return errs.Err()
}

type LeaveResponse struct {
	ID            string     `json:"id"`
	AccountID     string     `json:"account_id"`
	EmployeeID    string     `json:"employee_id"`
	EmployeeName  *string    `json:"employee_name,omitempty"`
	EmployeeEmail *string    `json:"employee_email,omitempty"`
	Type          Type       `json:"type"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	Days          int        `json:"days"`
	Reason        string     `json:"reason"`
	Status        Status     `json:"status"`
	ApproverID    *string    `json:"approver_id"`
	ApprovedAt    *time.Time `json:"approved_at"`
	Comments      *string    `json:"comments"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewLeaveResponse(r Request) LeaveResponse {
	return LeaveResponse{
		ID:            r.ID,
		AccountID:     r.AccountID,
		EmployeeID:    r.EmployeeIdentifier,
		EmployeeName:  r.EmployeeName,
		EmployeeEmail: r.EmployeeEmail,
		Type:          r.Type,
		StartDate:     r.StartDate.Format(dateLayout),
		EndDate:       r.EndDate.Format(dateLayout),
		Days:          r.Days,
		Reason:        r.Reason,
		Status:        r.Status,
		ApproverID:    r.ApproverID,
		ApprovedAt:    r.ApprovedAt,
		Comments:      r.Comments,
		CreatedAt:     r.CreatedAt,
	}
}

func NewLeaveResponses(rs []Request) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewLeaveResponse(r))
	}
	return out
}
