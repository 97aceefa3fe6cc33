// Package moderation implements the submission status state machine and
// the side effects each transition triggers.
package moderation

import (
	"context"
	"errors"
	"log/slog"

	"linkboard/internal/models"
	"linkboard/internal/validation"
)

var (
	// ErrForbidden is returned when the caller lacks moderation rights.
	ErrForbidden = errors.New("moderation requires admin access")
	// ErrNotFound is returned by single-record transitions on a missing id.
	ErrNotFound = errors.New("submission not found")
)

// SubmissionStore is the persistence the engine mutates.
type SubmissionStore interface {
	GetSubmissionsByID(ctx context.Context, ids []int64) ([]models.Submission, error)
	UpdateSubmissionStatus(ctx context.Context, ids []int64, status, bannedHost string) (int64, error)
	ResetToPending(ctx context.Context, ids []int64) (int64, error)
	SetPublishedRef(ctx context.Context, id, publishedID int64) error
	DeleteSubmissions(ctx context.Context, ids []int64) (int64, error)
}

// BanRegistry records and releases domain bans.
type BanRegistry interface {
	BanHost(ctx context.Context, host string) error
	UnbanHostIfUnused(ctx context.Context, host string, excludeIDs []int64) error
}

// Publisher mirrors submissions into the published-links collection.
type Publisher interface {
	Publish(ctx context.Context, sub *models.Submission) (int64, error)
	Unpublish(ctx context.Context, publishedID int64) error
}

// Notifier is told about status changes. Delivery is best-effort and must
// never block or fail a transition.
type Notifier interface {
	NotifySubmitterStatus(ctx context.Context, sub *models.Submission, status string)
}

// Engine applies moderation actions to submissions. It is stateless between
// calls; every invocation reads the current persisted state.
type Engine struct {
	store     SubmissionStore
	bans      BanRegistry
	publisher Publisher
	notifier  Notifier
}

// NewEngine constructs an engine with its collaborators.
func NewEngine(store SubmissionStore, bans BanRegistry, publisher Publisher, notifier Notifier) *Engine {
	return &Engine{store: store, bans: bans, publisher: publisher, notifier: notifier}
}

// Apply performs a bulk action over the given ids and returns the number of
// rows actually changed. Missing ids are skipped, not errors. Per-record side
// effects (publish, unpublish, ban bookkeeping, notification) run
// independently; one record's failure never aborts the rest.
func (e *Engine) Apply(ctx context.Context, action models.Action, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	switch action {
	case models.ActionApprove:
		return e.approve(ctx, ids)
	case models.ActionUnapprove:
		return e.unapprove(ctx, ids)
	case models.ActionDeny:
		return e.deny(ctx, ids)
	case models.ActionBan:
		return e.ban(ctx, ids)
	case models.ActionDelete:
		// Deliberately does not unpublish mirrors and does not release bans:
		// published content and domain bans outlive the moderation trail.
		// Flagged for product confirmation; do not "fix" silently.
		return e.store.DeleteSubmissions(ctx, ids)
	}
	return 0, errors.New("invalid action")
}

// Transition applies an action to exactly one submission on behalf of an
// actor. The caller's transport is expected to have authenticated the actor;
// the engine still asserts the capability before mutating anything.
func (e *Engine) Transition(ctx context.Context, id int64, action models.Action, actor *models.User) error {
	if actor == nil || !actor.IsAdmin() {
		return ErrForbidden
	}

	changed, err := e.Apply(ctx, action, []int64{id})
	if err != nil {
		return err
	}
	if changed == 0 {
		return ErrNotFound
	}
	return nil
}

func (e *Engine) approve(ctx context.Context, ids []int64) (int64, error) {
	subs, err := e.store.GetSubmissionsByID(ctx, ids)
	if err != nil {
		return 0, err
	}

	changed, err := e.store.UpdateSubmissionStatus(ctx, ids, models.StatusApproved, "")
	if err != nil {
		return 0, err
	}
	if changed == 0 {
		return 0, nil
	}

	for i := range subs {
		sub := &subs[i]
		if sub.BannedHost != "" {
			if err := e.bans.UnbanHostIfUnused(ctx, sub.BannedHost, ids); err != nil {
				slog.Error("failed to release ban", "host", sub.BannedHost, "error", err)
			}
		}
		sub.Status = models.StatusApproved
		sub.BannedHost = ""

		publishedID, err := e.publisher.Publish(ctx, sub)
		if err != nil {
			slog.Error("failed to publish approved submission", "id", sub.ID, "error", err)
		} else {
			if publishedID != sub.PublishedID {
				if err := e.store.SetPublishedRef(ctx, sub.ID, publishedID); err != nil {
					slog.Error("failed to record published ref", "id", sub.ID, "error", err)
				}
			}
			sub.PublishedID = publishedID
		}

		e.notify(ctx, sub, models.StatusApproved)
	}

	return changed, nil
}

func (e *Engine) unapprove(ctx context.Context, ids []int64) (int64, error) {
	subs, err := e.store.GetSubmissionsByID(ctx, ids)
	if err != nil {
		return 0, err
	}

	// Remove mirrors before reverting so a crash leaves no published entry
	// pointing at a pending submission.
	for i := range subs {
		if subs[i].PublishedID > 0 {
			if err := e.publisher.Unpublish(ctx, subs[i].PublishedID); err != nil {
				slog.Error("failed to unpublish", "id", subs[i].ID, "published_id", subs[i].PublishedID, "error", err)
			}
		}
	}

	changed, err := e.store.ResetToPending(ctx, ids)
	if err != nil {
		return 0, err
	}

	for i := range subs {
		if subs[i].BannedHost != "" {
			if err := e.bans.UnbanHostIfUnused(ctx, subs[i].BannedHost, ids); err != nil {
				slog.Error("failed to release ban", "host", subs[i].BannedHost, "error", err)
			}
		}
	}

	// Reverting to pending sends no notification.
	return changed, nil
}

func (e *Engine) deny(ctx context.Context, ids []int64) (int64, error) {
	subs, err := e.store.GetSubmissionsByID(ctx, ids)
	if err != nil {
		return 0, err
	}

	changed, err := e.store.UpdateSubmissionStatus(ctx, ids, models.StatusDenied, "")
	if err != nil {
		return 0, err
	}
	if changed == 0 {
		return 0, nil
	}

	for i := range subs {
		sub := &subs[i]
		if sub.BannedHost != "" {
			if err := e.bans.UnbanHostIfUnused(ctx, sub.BannedHost, ids); err != nil {
				slog.Error("failed to release ban", "host", sub.BannedHost, "error", err)
			}
		}
		sub.Status = models.StatusDenied
		sub.BannedHost = ""
		e.notify(ctx, sub, models.StatusDenied)
	}

	return changed, nil
}

func (e *Engine) ban(ctx context.Context, ids []int64) (int64, error) {
	subs, err := e.store.GetSubmissionsByID(ctx, ids)
	if err != nil {
		return 0, err
	}

	var changed int64
	for i := range subs {
		sub := &subs[i]
		// A URL without a parseable host still transitions to banned; the
		// record just contributes nothing to the ban registry.
		host := validation.NormalizeHost(sub.URL)

		rows, err := e.store.UpdateSubmissionStatus(ctx, []int64{sub.ID}, models.StatusBanned, host)
		if err != nil {
			slog.Error("failed to ban submission", "id", sub.ID, "error", err)
			continue
		}
		if rows == 0 {
			continue
		}
		changed += rows

		if host != "" {
			if err := e.bans.BanHost(ctx, host); err != nil {
				slog.Error("failed to register banned host", "host", host, "error", err)
			}
		}

		sub.Status = models.StatusBanned
		sub.BannedHost = host
		e.notify(ctx, sub, models.StatusBanned)
	}

	return changed, nil
}

func (e *Engine) notify(ctx context.Context, sub *models.Submission, status string) {
	if e.notifier == nil {
		return
	}
	e.notifier.NotifySubmitterStatus(ctx, sub, status)
}
