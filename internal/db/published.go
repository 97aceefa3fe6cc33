package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"linkboard/internal/models"
)

// CreatePublishedLink inserts a new published directory entry.
func (d *DB) CreatePublishedLink(ctx context.Context, link *models.PublishedLink) error {
	query := `
		INSERT INTO published_links (url, link_text, category_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return d.Pool.QueryRow(ctx, query, link.URL, link.LinkText, link.CategoryID).
		Scan(&link.ID, &link.CreatedAt)
}

// GetPublishedLink retrieves a published link by ID.
func (d *DB) GetPublishedLink(ctx context.Context, id int64) (*models.PublishedLink, error) {
	query := `SELECT id, url, link_text, category_id, created_at FROM published_links WHERE id = $1`

	var link models.PublishedLink
	err := d.Pool.QueryRow(ctx, query, id).Scan(
		&link.ID,
		&link.URL,
		&link.LinkText,
		&link.CategoryID,
		&link.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPublishedLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// FindPublishedLink looks up an existing published record for the same URL
// and category. The first matching record wins; no further disambiguation.
func (d *DB) FindPublishedLink(ctx context.Context, url string, categoryID int64) (*models.PublishedLink, error) {
	query := `
		SELECT id, url, link_text, category_id, created_at
		FROM published_links
		WHERE url = $1 AND category_id = $2
		ORDER BY id
		LIMIT 1
	`

	var link models.PublishedLink
	err := d.Pool.QueryRow(ctx, query, url, categoryID).Scan(
		&link.ID,
		&link.URL,
		&link.LinkText,
		&link.CategoryID,
		&link.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPublishedLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// DeletePublishedLink removes a published record. Deleting an absent record
// is not an error, so unpublish stays idempotent.
func (d *DB) DeletePublishedLink(ctx context.Context, id int64) error {
	_, err := d.Pool.Exec(ctx, `DELETE FROM published_links WHERE id = $1`, id)
	return err
}

// ListPublishedLinks returns the published directory, newest first.
func (d *DB) ListPublishedLinks(ctx context.Context) ([]models.PublishedLink, error) {
	query := `SELECT id, url, link_text, category_id, created_at FROM published_links ORDER BY created_at DESC, id DESC`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []models.PublishedLink
	for rows.Next() {
		var link models.PublishedLink
		if err := rows.Scan(&link.ID, &link.URL, &link.LinkText, &link.CategoryID, &link.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}
