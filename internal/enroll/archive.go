package enroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SubmissionRecord is one archived enrollment outcome. The archive is an
// audit log of finished conversations; live session state is never persisted.
type SubmissionRecord struct {
	ID        string    `db:"id"`
	UserID    int64     `db:"user_id"`
	Outcome   string    `db:"outcome"`
	Language  string    `db:"language"`
	Name      string    `db:"name"`
	Course    string    `db:"course"`
	Subcourse string    `db:"subcourse"`
	Day       string    `db:"day"`
	TimeSlot  string    `db:"time_slot"`
	Phone     string    `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
}

// Archive stores finished submissions in Postgres.
type Archive struct {
	db *sqlx.DB
}

// NewArchive wraps an open database handle.
func NewArchive(db *sqlx.DB) *Archive {
	return &Archive{db: db}
}

const insertSubmission = `
INSERT INTO submissions (id, user_id, outcome, language, name, course, subcourse, day, time_slot, phone, created_at)
VALUES (:id, :user_id, :outcome, :language, :name, :course, :subcourse, :day, :time_slot, :phone, :created_at)`

// Record inserts one outcome row built from a session snapshot.
func (a *Archive) Record(ctx context.Context, userID int64, outcome string, s Session) (string, error) {
	rec := SubmissionRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Outcome:   outcome,
		Language:  string(s.Lang()),
		Name:      s.Name,
		Course:    s.Course,
		Subcourse: s.Subcourse,
		Day:       s.Day,
		TimeSlot:  s.Time,
		Phone:     s.Phone,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := a.db.NamedExecContext(ctx, insertSubmission, rec); err != nil {
		return "", fmt.Errorf("archive: insert submission: %w", err)
	}
	return rec.ID, nil
}

// Count returns the number of archived submissions.
func (a *Archive) Count(ctx context.Context) (int, error) {
	var n int
	if err := a.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM submissions`); err != nil {
		return 0, fmt.Errorf("archive: count submissions: %w", err)
	}
	return n, nil
}
