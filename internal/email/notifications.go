package email

import (
	"context"
	"fmt"

	"linkboard/internal/config"
	"linkboard/internal/models"
)

// Notifier sends email notifications for submission events. All delivery is
// fire-and-forget; a failed or disabled notifier never affects the caller.
type Notifier struct {
	service *Service
	cfg     *config.Config
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{
		service: NewService(cfg),
		cfg:     cfg,
	}
}

// NotifySubmitterStatus tells the submitter their link was approved, denied,
// or banned. Other statuses send nothing.
func (n *Notifier) NotifySubmitterStatus(_ context.Context, sub *models.Submission, status string) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifySubmitter {
		return
	}
	if sub.UserEmail == "" {
		return
	}

	subject, body := submitterMessage(sub, status, n.cfg.SiteName)
	if subject == "" {
		return
	}
	n.service.SendAsync([]string{sub.UserEmail}, subject, body)
}

// NotifyAdminNewSubmission tells the administrator a new link needs review.
func (n *Notifier) NotifyAdminNewSubmission(_ context.Context, sub *models.Submission) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyAdmin {
		return
	}
	if n.cfg.AdminEmail == "" {
		return
	}

	subject := fmt.Sprintf("New Link Submission on %s", n.cfg.SiteName)
	body := fmt.Sprintf(
		"A new link has been submitted for review.\n\nURL: %s\nLink Text: %s\nSubmitted by: %s\n\nYou can review this submission here:\n%s/admin/submissions",
		sub.URL,
		sub.LinkText,
		sub.UserName,
		n.cfg.BaseURL,
	)
	n.service.SendAsync([]string{n.cfg.AdminEmail}, subject, body)
}

// submitterMessage builds the subject and body for a status notification.
// Returns an empty subject for statuses that send no email.
func submitterMessage(sub *models.Submission, status, siteName string) (subject, body string) {
	switch status {
	case models.StatusApproved:
		subject = fmt.Sprintf("Your link submission to %s has been approved!", siteName)
		body = fmt.Sprintf(
			"Hi %s,\n\nGreat news! Your recent link submission has been approved and is now live:\n\nLink: %s\n\nThank you for your contribution to %s!",
			sub.UserName, sub.URL, siteName,
		)
	case models.StatusDenied:
		subject = fmt.Sprintf("Regarding your link submission to %s", siteName)
		body = fmt.Sprintf(
			"Hi %s,\n\nThank you for your recent link submission for %q.\n\nUnfortunately, we were not able to approve it at this time. We appreciate your interest.\n\nRegards,\nThe %s Team",
			sub.UserName, sub.LinkText, siteName,
		)
	case models.StatusBanned:
		subject = fmt.Sprintf("Regarding your link submission to %s", siteName)
		body = fmt.Sprintf(
			"Hi %s,\n\nThis is a notification that your recent submission for the URL %s has been denied and its domain has been banned from future submissions.\n\nRegards,\nThe %s Team",
			sub.UserName, sub.URL, siteName,
		)
	}
	return subject, body
}
