// Package publish mirrors approved submissions into the published-links
// directory and keeps the two collections in sync.
package publish

import (
	"context"
	"errors"
	"fmt"

	"linkboard/internal/db"
	"linkboard/internal/models"
)

// Store is the subset of persistence the syncer needs.
type Store interface {
	GetPublishedLink(ctx context.Context, id int64) (*models.PublishedLink, error)
	FindPublishedLink(ctx context.Context, url string, categoryID int64) (*models.PublishedLink, error)
	CreatePublishedLink(ctx context.Context, link *models.PublishedLink) error
	DeletePublishedLink(ctx context.Context, id int64) error
}

// Syncer idempotently publishes and unpublishes directory entries.
type Syncer struct {
	store Store
}

// NewSyncer creates a publication syncer.
func NewSyncer(store Store) *Syncer {
	return &Syncer{store: store}
}

// Publish mirrors a submission into the published-links collection and
// returns the published record's ID. It never creates a duplicate:
// a live back-reference wins, then the first existing record with the same
// URL and category, and only then is a new record created.
func (s *Syncer) Publish(ctx context.Context, sub *models.Submission) (int64, error) {
	if sub.PublishedID > 0 {
		_, err := s.store.GetPublishedLink(ctx, sub.PublishedID)
		if err == nil {
			return sub.PublishedID, nil
		}
		if !errors.Is(err, db.ErrPublishedLinkNotFound) {
			return 0, fmt.Errorf("check existing published link: %w", err)
		}
		// Back-reference is stale; fall through and republish.
	}

	existing, err := s.store.FindPublishedLink(ctx, sub.URL, sub.CategoryID)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, db.ErrPublishedLinkNotFound) {
		return 0, fmt.Errorf("find published link: %w", err)
	}

	link := &models.PublishedLink{
		URL:        sub.URL,
		LinkText:   sub.LinkText,
		CategoryID: sub.CategoryID,
	}
	if err := s.store.CreatePublishedLink(ctx, link); err != nil {
		return 0, fmt.Errorf("create published link: %w", err)
	}
	return link.ID, nil
}

// Unpublish removes a published record. Unpublishing an absent or zero
// reference is a no-op.
func (s *Syncer) Unpublish(ctx context.Context, publishedID int64) error {
	if publishedID <= 0 {
		return nil
	}
	return s.store.DeletePublishedLink(ctx, publishedID)
}
