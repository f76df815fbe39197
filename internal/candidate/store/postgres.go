package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"saku/internal/candidate/models"
	"saku/internal/eligibility"
	"saku/pkg/platform/sentinel"
	"saku/pkg/platform/tx"
)

const recordColumns = `id, student_id, full_name, user_type, council_position, department, course,
	year_of_study, gender, is_qualified, vetting_status, eligibility, created_at, vetted_at`

const insertRecordQuery = `
	INSERT INTO delegates (` + recordColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

const updateVettingQuery = `
	UPDATE delegates
	SET eligibility = $2, is_qualified = $3, vetting_status = $4, vetted_at = $5
	WHERE id = $1
`

const (
	selectRecordQuery     = `SELECT ` + recordColumns + ` FROM delegates WHERE id = $1`
	selectByStatusQuery   = `SELECT ` + recordColumns + ` FROM delegates WHERE vetting_status = ANY($1) ORDER BY created_at, id`
	selectAllRecordsQuery = `SELECT ` + recordColumns + ` FROM delegates ORDER BY created_at, id`

	uniqueViolation = "23505"
)

// Postgres persists candidate records in the delegates table. Statements
// join a transaction carried by the context.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed candidate store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, rec *models.Record) error {
	verdict, err := encodeVerdict(rec.Eligibility)
	if err != nil {
		return err
	}
	_, err = tx.Executor(ctx, s.db).ExecContext(ctx, insertRecordQuery,
		rec.ID, rec.StudentID, rec.FullName, string(rec.UserType), nullString(string(rec.CouncilPosition)),
		rec.Department, rec.Course, rec.YearOfStudy, string(rec.Gender),
		rec.IsQualified, string(rec.VettingStatus), verdict, rec.CreatedAt, rec.VettedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("candidate %s: %w", rec.StudentID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Record, error) {
	rec, err := scanRecord(tx.Executor(ctx, s.db).QueryRowContext(ctx, selectRecordQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find candidate: %w", err)
	}
	return rec, nil
}

func (s *Postgres) ListByStatus(ctx context.Context, statuses ...models.VettingStatus) ([]*models.Record, error) {
	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = string(st)
	}
	return s.list(ctx, selectByStatusQuery, pq.Array(names))
}

func (s *Postgres) ListAll(ctx context.Context) ([]*models.Record, error) {
	return s.list(ctx, selectAllRecordsQuery)
}

// SaveVetting updates the verdict, qualification and status in one statement.
func (s *Postgres) SaveVetting(ctx context.Context, rec *models.Record) error {
	verdict, err := encodeVerdict(rec.Eligibility)
	if err != nil {
		return err
	}
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx, updateVettingQuery,
		rec.ID, verdict, rec.IsQualified, string(rec.VettingStatus), rec.VettedAt,
	)
	if err != nil {
		return fmt.Errorf("save vetting: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save vetting: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) list(ctx context.Context, query string, args ...any) ([]*models.Record, error) {
	rows, err := tx.Executor(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	out := []*models.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.Record, error) {
	var (
		rec       models.Record
		userType  string
		position  sql.NullString
		gender    string
		status    string
		verdict   []byte
		vettedAt  sql.NullTime
		createdAt time.Time
	)
	if err := row.Scan(
		&rec.ID, &rec.StudentID, &rec.FullName, &userType, &position, &rec.Department, &rec.Course,
		&rec.YearOfStudy, &gender, &rec.IsQualified, &status, &verdict, &createdAt, &vettedAt,
	); err != nil {
		return nil, err
	}
	rec.UserType = models.UserType(userType)
	rec.CouncilPosition = models.CouncilPosition(position.String)
	rec.Gender = models.Gender(gender)
	rec.VettingStatus = models.VettingStatus(status)
	rec.CreatedAt = createdAt
	if vettedAt.Valid {
		t := vettedAt.Time
		rec.VettedAt = &t
	}
	if len(verdict) > 0 {
		var v eligibility.Verdict
		if err := json.Unmarshal(verdict, &v); err != nil {
			return nil, fmt.Errorf("decode eligibility: %w", err)
		}
		rec.Eligibility = &v
	}
	return &rec, nil
}

// encodeVerdict returns a nil interface for a nil verdict so the column is
// written as NULL.
func encodeVerdict(v *eligibility.Verdict) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode eligibility: %w", err)
	}
	return data, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
