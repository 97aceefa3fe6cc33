package email

import (
	"context"
	"strings"
	"testing"

	"linkboard/internal/config"
	"linkboard/internal/models"
)

func testSubmission() *models.Submission {
	return &models.Submission{
		ID:        1,
		URL:       "http://example.com",
		LinkText:  "Example",
		UserName:  "Ann",
		UserEmail: "ann@x.com",
	}
}

func TestSubmitterMessageApproved(t *testing.T) {
	subject, body := submitterMessage(testSubmission(), models.StatusApproved, "Linkboard")

	if !strings.Contains(subject, "approved") {
		t.Errorf("subject = %q, want approval wording", subject)
	}
	if !strings.Contains(body, "Hi Ann,") {
		t.Errorf("body does not greet the submitter: %q", body)
	}
	if !strings.Contains(body, "http://example.com") {
		t.Errorf("body does not include the URL: %q", body)
	}
}

func TestSubmitterMessageDenied(t *testing.T) {
	subject, body := submitterMessage(testSubmission(), models.StatusDenied, "Linkboard")

	if !strings.Contains(subject, "Regarding your link submission") {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(body, `"Example"`) {
		t.Errorf("body does not reference the link text: %q", body)
	}
	if !strings.Contains(body, "not able to approve") {
		t.Errorf("body missing denial wording: %q", body)
	}
}

func TestSubmitterMessageBanned(t *testing.T) {
	_, body := submitterMessage(testSubmission(), models.StatusBanned, "Linkboard")

	if !strings.Contains(body, "banned from future submissions") {
		t.Errorf("body missing ban wording: %q", body)
	}
	if !strings.Contains(body, "http://example.com") {
		t.Errorf("body does not include the URL: %q", body)
	}
}

func TestSubmitterMessageOtherStatusesSendNothing(t *testing.T) {
	for _, status := range []string{models.StatusPending, "bogus"} {
		subject, _ := submitterMessage(testSubmission(), status, "Linkboard")
		if subject != "" {
			t.Errorf("status %q produced subject %q, want none", status, subject)
		}
	}
}

func TestDisabledServiceIsNoOp(t *testing.T) {
	// No SMTP host configured: every entry point must return without
	// touching the network.
	notifier := NewNotifier(&config.Config{EmailNotifyAdmin: true, EmailNotifySubmitter: true})

	if notifier.service.IsEnabled() {
		t.Fatal("service reports enabled without SMTP configuration")
	}
	if err := notifier.service.SendEmail([]string{"a@b.com"}, "subject", "body"); err != nil {
		t.Errorf("SendEmail() on disabled service error = %v, want nil", err)
	}

	ctx := context.Background()
	notifier.NotifySubmitterStatus(ctx, testSubmission(), models.StatusApproved)
	notifier.NotifyAdminNewSubmission(ctx, testSubmission())
}
