package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// advisory lock namespace for identifier issuance, "OI"
const identifierLockClass = 0x4f49

const accountColumns = `
	id, employee_identifier, email, password_hash, first_name, last_name, role,
	must_change_password, joining_date, photo, phone, address, city, date_of_birth,
	gender, emergency_contact, job_details, salary_details, documents,
	created_by, created_at, updated_at`

type accountRepositoryImpl struct {
	db *database.DB
}

func NewAccountRepository(db *database.DB) account.AccountRepository {
	return &accountRepositoryImpl{db: db}
}

// Create implements account.AccountRepository.
func (r *accountRepositoryImpl) Create(ctx context.Context, a account.Account) (account.Account, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return account.Account{}, err
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	docs, err := json.Marshal(nonNilDocuments(a.Documents))
	if err != nil {
		return account.Account{}, fmt.Errorf("encode documents: %w", err)
	}
	jsonCols, err := marshalProfile(a)
	if err != nil {
		return account.Account{}, err
	}

	query := `
		INSERT INTO accounts (
			id, employee_identifier, email, password_hash, first_name, last_name, role,
			must_change_password, joining_date, photo, phone, address, city, date_of_birth,
			gender, emergency_contact, job_details, salary_details, documents, created_by
		) VALUES (
			$1, $2, LOWER($3), $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20
		)
		RETURNING` + accountColumns

	row := q.QueryRow(ctx, query,
		a.ID, a.EmployeeIdentifier, a.Email, a.PasswordHash, a.FirstName, a.LastName, string(a.Role),
		a.MustChangePassword, a.JoiningDate, a.Photo, a.Phone, a.Address, a.City, a.DateOfBirth,
		a.Gender, jsonCols.emergency, jsonCols.job, jsonCols.salary, docs, a.CreatedBy,
	)
	created, err := scanAccount(row)
	if err != nil {
		return account.Account{}, translateError(err)
	}
	return created, nil
}

// GetByID implements account.AccountRepository.
func (r *accountRepositoryImpl) GetByID(ctx context.Context, id string) (account.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return account.Account{}, account.ErrAccountNotFound
	}

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return account.Account{}, err
	}

	query := `SELECT` + accountColumns + ` FROM accounts WHERE id = $1`
	a, err := scanAccount(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrAccountNotFound
		}
		return account.Account{}, err
	}
	return a, nil
}

// GetByLogin implements account.AccountRepository.
func (r *accountRepositoryImpl) GetByLogin(ctx context.Context, identifierOrEmail string) (account.Account, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return account.Account{}, err
	}

	query := `SELECT` + accountColumns + `
		FROM accounts
		WHERE employee_identifier = $1 OR LOWER(email) = LOWER(TRIM($1))
		ORDER BY (employee_identifier = $1) DESC
		LIMIT 1`
	a, err := scanAccount(q.QueryRow(ctx, query, identifierOrEmail))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrAccountNotFound
		}
		return account.Account{}, err
	}
	return a, nil
}

// List implements account.AccountRepository.
func (r *accountRepositoryImpl) List(ctx context.Context) ([]account.Account, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `SELECT`+accountColumns+` FROM accounts ORDER BY employee_identifier`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]account.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// Update implements account.AccountRepository.
func (r *accountRepositoryImpl) Update(ctx context.Context, a account.Account) (account.Account, error) {
	if _, err := uuid.Parse(a.ID); err != nil {
		return account.Account{}, account.ErrAccountNotFound
	}

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return account.Account{}, err
	}
	jsonCols, err := marshalProfile(a)
	if err != nil {
		return account.Account{}, err
	}

	query := `
		UPDATE accounts SET
			email = LOWER($2),
			first_name = $3,
			last_name = $4,
			role = $5,
			joining_date = $6,
			photo = $7,
			phone = $8,
			address = $9,
			city = $10,
			date_of_birth = $11,
			gender = $12,
			emergency_contact = $13,
			job_details = $14,
			salary_details = $15,
			updated_at = NOW()
		WHERE id = $1
		RETURNING` + accountColumns

	row := q.QueryRow(ctx, query,
		a.ID, a.Email, a.FirstName, a.LastName, string(a.Role),
		a.JoiningDate, a.Photo, a.Phone, a.Address, a.City,
		a.DateOfBirth, a.Gender, jsonCols.emergency, jsonCols.job, jsonCols.salary,
	)
	updated, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrAccountNotFound
		}
		return account.Account{}, translateError(err)
	}
	return updated, nil
}

// UpdatePassword implements account.AccountRepository.
func (r *accountRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string, mustChangePassword bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return account.ErrAccountNotFound
	}

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, `
		UPDATE accounts
		SET password_hash = $2, must_change_password = $3, updated_at = NOW()
		WHERE id = $1`, id, passwordHash, mustChangePassword)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return account.ErrAccountNotFound
	}
	return nil
}

// CountJoinedInYear implements account.AccountRepository.
func (r *accountRepositoryImpl) CountJoinedInYear(ctx context.Context, year int) (int, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int
	err = q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM accounts
		WHERE joining_date >= make_date($1::int, 1, 1)
		  AND joining_date < make_date($1::int + 1, 1, 1)`, year).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MaxSerialInYear implements account.AccountRepository.
func (r *accountRepositoryImpl) MaxSerialInYear(ctx context.Context, year int) (int, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var serial int
	err = q.QueryRow(ctx, `
		SELECT COALESCE(MAX(SUBSTRING(employee_identifier FROM 11 FOR 4)::int), 0)
		FROM accounts
		WHERE employee_identifier ~ '^OI[A-Z]{4}[0-9]{8}$'
		  AND SUBSTRING(employee_identifier FROM 7 FOR 4) = $1`, fmt.Sprintf("%04d", year)).Scan(&serial)
	if err != nil {
		return 0, err
	}
	return serial, nil
}

// LockJoiningYear implements account.AccountRepository. It only makes sense
// inside a transaction, where the lock is held until commit or rollback.
func (r *accountRepositoryImpl) LockJoiningYear(ctx context.Context, year int) error {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return errors.New("lock joining year: no transaction in context")
	}
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1::int, $2::int)`, identifierLockClass, year)
	return err
}

// ExistsByRole implements account.AccountRepository.
func (r *accountRepositoryImpl) ExistsByRole(ctx context.Context, role account.Role) (bool, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return false, err
	}

	var exists bool
	err = q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE role = $1)`, string(role)).Scan(&exists)
	return exists, err
}

// AddDocument implements account.AccountRepository.
func (r *accountRepositoryImpl) AddDocument(ctx context.Context, accountID string, doc account.Document) (account.Account, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return account.Account{}, account.ErrAccountNotFound
	}

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return account.Account{}, err
	}
	payload, err := json.Marshal([]account.Document{doc})
	if err != nil {
		return account.Account{}, fmt.Errorf("encode document: %w", err)
	}

	query := `
		UPDATE accounts
		SET documents = documents || $2::jsonb, updated_at = NOW()
		WHERE id = $1
		RETURNING` + accountColumns
	a, err := scanAccount(q.QueryRow(ctx, query, accountID, payload))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrAccountNotFound
		}
		return account.Account{}, err
	}
	return a, nil
}

// RemoveDocument implements account.AccountRepository.
func (r *accountRepositoryImpl) RemoveDocument(ctx context.Context, accountID string, documentID string) (account.Account, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return account.Account{}, account.ErrAccountNotFound
	}

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return account.Account{}, err
	}

	query := `
		UPDATE accounts
		SET documents = (
				SELECT COALESCE(jsonb_agg(d.value ORDER BY d.ord), '[]'::jsonb)
				FROM jsonb_array_elements(documents) WITH ORDINALITY AS d(value, ord)
				WHERE d.value->>'id' <> $2
			),
			updated_at = NOW()
		WHERE id = $1
		  AND documents @> jsonb_build_array(jsonb_build_object('id', $2::text))
		RETURNING` + accountColumns
	a, err := scanAccount(q.QueryRow(ctx, query, accountID, documentID))
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return account.Account{}, err
	}

	// nothing matched: either the account or the document is missing
	if _, err := r.GetByID(ctx, accountID); err != nil {
		return account.Account{}, err
	}
	return account.Account{}, account.ErrDocumentNotFound
}

type profileJSON struct {
	emergency []byte
	job       []byte
	salary    []byte
}

func marshalProfile(a account.Account) (profileJSON, error) {
	var (
		out profileJSON
		err error
	)
	if out.emergency, err = json.Marshal(a.EmergencyContact); err != nil {
		return out, fmt.Errorf("encode emergency contact: %w", err)
	}
	if out.job, err = json.Marshal(a.JobDetails); err != nil {
		return out, fmt.Errorf("encode job details: %w", err)
	}
	if out.salary, err = json.Marshal(a.SalaryDetails); err != nil {
		return out, fmt.Errorf("encode salary details: %w", err)
	}
	return out, nil
}

func scanAccount(row pgx.Row) (account.Account, error) {
	var (
		a                          account.Account
		role                       string
		emergency, job, salary, ds []byte
	)
	err := row.Scan(
		&a.ID,
		&a.EmployeeIdentifier,
		&a.Email,
		&a.PasswordHash,
		&a.FirstName,
		&a.LastName,
		&role,
		&a.MustChangePassword,
		&a.JoiningDate,
		&a.Photo,
		&a.Phone,
		&a.Address,
		&a.City,
		&a.DateOfBirth,
		&a.Gender,
		&emergency,
		&job,
		&salary,
		&ds,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return account.Account{}, err
	}
	a.Role = account.Role(role)

	if err := json.Unmarshal(emergency, &a.EmergencyContact); err != nil {
		return account.Account{}, fmt.Errorf("decode emergency contact: %w", err)
	}
	if err := json.Unmarshal(job, &a.JobDetails); err != nil {
		return account.Account{}, fmt.Errorf("decode job details: %w", err)
	}
	if err := json.Unmarshal(salary, &a.SalaryDetails); err != nil {
		return account.Account{}, fmt.Errorf("decode salary details: %w", err)
	}
	if err := json.Unmarshal(ds, &a.Documents); err != nil {
		return account.Account{}, fmt.Errorf("decode documents: %w", err)
	}
	return a, nil
}

func nonNilDocuments(docs []account.Document) []account.Document {
	if docs == nil {
		return []account.Document{}
	}
	return docs
}
