package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"linkboard/internal/models"
)

// submissionColumns is the standard column list for submission queries.
const submissionColumns = `id, submitted_at, url, link_text, user_name, user_email,
	category_id, published_link_id, banned_host, status`

// sortColumns is the allow-list of ORDER BY targets. Anything else falls
// back to the default sort key so request parameters can never inject
// arbitrary expressions into the ordering clause.
var sortColumns = map[string]string{
	"submitted_at": "submitted_at",
	"link_text":    "link_text",
	"user_name":    "user_name",
	"category_id":  "category_id",
	"status":       "status",
}

// ListFilter narrows and orders a submission listing.
type ListFilter struct {
	Status     string // empty = all statuses
	CategoryID int64  // 0 = all categories
	OrderBy    string // defaults to submitted_at
	Order      string // "asc" or "desc", defaults to desc
}

// scanSubmission scans a row into a Submission struct.
func scanSubmission(row pgx.Row) (*models.Submission, error) {
	var sub models.Submission
	err := row.Scan(
		&sub.ID,
		&sub.SubmittedAt,
		&sub.URL,
		&sub.LinkText,
		&sub.UserName,
		&sub.UserEmail,
		&sub.CategoryID,
		&sub.PublishedID,
		&sub.BannedHost,
		&sub.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// scanSubmissions scans multiple rows into a slice of Submissions.
func scanSubmissions(rows pgx.Rows) ([]models.Submission, error) {
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(
			&sub.ID,
			&sub.SubmittedAt,
			&sub.URL,
			&sub.LinkText,
			&sub.UserName,
			&sub.UserEmail,
			&sub.CategoryID,
			&sub.PublishedID,
			&sub.BannedHost,
			&sub.Status,
		); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

// InsertSubmission creates a new submission. The initial status is always
// pending regardless of what the caller set on the struct.
func (d *DB) InsertSubmission(ctx context.Context, sub *models.Submission) error {
	query := `
		INSERT INTO submissions (url, link_text, user_name, user_email, category_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, submitted_at
	`

	err := d.Pool.QueryRow(ctx, query,
		sub.URL,
		sub.LinkText,
		sub.UserName,
		sub.UserEmail,
		sub.CategoryID,
		models.StatusPending,
	).Scan(&sub.ID, &sub.SubmittedAt)
	if err != nil {
		return err
	}

	sub.Status = models.StatusPending
	sub.PublishedID = 0
	sub.BannedHost = ""
	return nil
}

// GetSubmission retrieves a submission by its ID.
func (d *DB) GetSubmission(ctx context.Context, id int64) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	return scanSubmission(d.Pool.QueryRow(ctx, query, id))
}

// GetSubmissionsByID retrieves all submissions matching the given IDs.
// Missing IDs are silently skipped; the caller compares lengths if it cares.
func (d *DB) GetSubmissionsByID(ctx context.Context, ids []int64) ([]models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = ANY($1) ORDER BY id`
	rows, err := d.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return scanSubmissions(rows)
}

// ListSubmissions retrieves submissions matching the filter, ordered by an
// allow-listed sort column.
func (d *DB) ListSubmissions(ctx context.Context, filter ListFilter) ([]models.Submission, error) {
	sql := `SELECT ` + submissionColumns + ` FROM submissions`
	var clauses []string
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, "status = $1")
	}
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		if len(args) == 2 {
			clauses = append(clauses, "category_id = $2")
		} else {
			clauses = append(clauses, "category_id = $1")
		}
	}
	if len(clauses) > 0 {
		sql += " WHERE " + strings.Join(clauses, " AND ")
	}

	orderBy, ok := sortColumns[filter.OrderBy]
	if !ok {
		orderBy = "submitted_at"
	}
	dir := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		dir = "ASC"
	}
	sql += " ORDER BY " + orderBy + " " + dir

	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return scanSubmissions(rows)
}

// UpdateSubmissionStatus sets the status and banned_host for a batch of
// submissions in one atomic statement and returns the number of rows that
// actually changed. banned_host must be empty for every status except banned.
func (d *DB) UpdateSubmissionStatus(ctx context.Context, ids []int64, status, bannedHost string) (int64, error) {
	query := `UPDATE submissions SET status = $1, banned_host = $2 WHERE id = ANY($3)`
	result, err := d.Pool.Exec(ctx, query, status, bannedHost, ids)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// ResetToPending reverts submissions to pending, clearing the published
// back-reference and any banned host.
func (d *DB) ResetToPending(ctx context.Context, ids []int64) (int64, error) {
	query := `
		UPDATE submissions
		SET status = $1, published_link_id = 0, banned_host = ''
		WHERE id = ANY($2)
	`
	result, err := d.Pool.Exec(ctx, query, models.StatusPending, ids)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// SetPublishedRef records the published-link record mirrored from a submission.
func (d *DB) SetPublishedRef(ctx context.Context, id, publishedID int64) error {
	query := `UPDATE submissions SET published_link_id = $1 WHERE id = $2`
	result, err := d.Pool.Exec(ctx, query, publishedID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// DeleteSubmissions removes submissions permanently and returns the number of
// rows deleted. Published mirrors and ban entries are deliberately left alone.
func (d *DB) DeleteSubmissions(ctx context.Context, ids []int64) (int64, error) {
	query := `DELETE FROM submissions WHERE id = ANY($1)`
	result, err := d.Pool.Exec(ctx, query, ids)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// CountByStatus returns the number of submissions per status in a single
// aggregate query. Statuses with no rows are present with a zero count.
func (d *DB) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{
		models.StatusPending:  0,
		models.StatusApproved: 0,
		models.StatusDenied:   0,
		models.StatusBanned:   0,
	}

	rows, err := d.Pool.Query(ctx, `SELECT status, COUNT(id) FROM submissions GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		if _, ok := counts[status]; ok {
			counts[status] = count
		}
	}

	return counts, rows.Err()
}
