package db_test

import (
	"context"
	"testing"

	"linkboard/internal/models"
	"linkboard/internal/testutil"
)

func TestBanHostAndLookup(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := database.BanHost(ctx, "spam.example.com"); err != nil {
		t.Fatalf("BanHost() error = %v", err)
	}
	// Re-banning is a no-op, not a conflict.
	if err := database.BanHost(ctx, "spam.example.com"); err != nil {
		t.Fatalf("BanHost() repeat error = %v", err)
	}

	banned, err := database.IsHostBanned(ctx, "spam.example.com")
	if err != nil {
		t.Fatalf("IsHostBanned() error = %v", err)
	}
	if !banned {
		t.Error("IsHostBanned() = false, want true")
	}

	other, err := database.IsHostBanned(ctx, "clean.example.com")
	if err != nil {
		t.Fatalf("IsHostBanned() error = %v", err)
	}
	if other {
		t.Error("IsHostBanned(clean host) = true, want false")
	}
}

func TestEmptyHostNeverBanned(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := database.BanHost(ctx, ""); err != nil {
		t.Fatalf("BanHost(empty) error = %v", err)
	}
	banned, err := database.IsHostBanned(ctx, "")
	if err != nil {
		t.Fatalf("IsHostBanned(empty) error = %v", err)
	}
	if banned {
		t.Error("IsHostBanned(empty) = true, want false")
	}
}

func TestBanSurvivesSubmissionDeletion(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()

	sub := testutil.CreateTestSubmission(t, database, "Doomed", 0)
	if _, err := database.UpdateSubmissionStatus(ctx, []int64{sub.ID}, models.StatusBanned, "doomed.example.com"); err != nil {
		t.Fatalf("UpdateSubmissionStatus() error = %v", err)
	}
	if err := database.BanHost(ctx, "doomed.example.com"); err != nil {
		t.Fatalf("BanHost() error = %v", err)
	}

	if _, err := database.DeleteSubmissions(ctx, []int64{sub.ID}); err != nil {
		t.Fatalf("DeleteSubmissions() error = %v", err)
	}

	banned, err := database.IsHostBanned(ctx, "doomed.example.com")
	if err != nil {
		t.Fatalf("IsHostBanned() error = %v", err)
	}
	if !banned {
		t.Error("ban did not survive deletion of the banned submission")
	}
}

func TestUnbanHostIfUnused(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()

	first := testutil.CreateTestSubmission(t, database, "First", 0)
	second := testutil.CreateTestSubmission(t, database, "Second", 0)

	for _, id := range []int64{first.ID, second.ID} {
		if _, err := database.UpdateSubmissionStatus(ctx, []int64{id}, models.StatusBanned, "shared.example.com"); err != nil {
			t.Fatalf("UpdateSubmissionStatus() error = %v", err)
		}
	}
	if err := database.BanHost(ctx, "shared.example.com"); err != nil {
		t.Fatalf("BanHost() error = %v", err)
	}

	// Releasing one record keeps the ban while the other still holds it.
	if err := database.UnbanHostIfUnused(ctx, "shared.example.com", []int64{first.ID}); err != nil {
		t.Fatalf("UnbanHostIfUnused() error = %v", err)
	}
	banned, err := database.IsHostBanned(ctx, "shared.example.com")
	if err != nil {
		t.Fatalf("IsHostBanned() error = %v", err)
	}
	if !banned {
		t.Error("ban released while another submission still holds the host")
	}

	// Releasing both lifts the ban.
	if err := database.UnbanHostIfUnused(ctx, "shared.example.com", []int64{first.ID, second.ID}); err != nil {
		t.Fatalf("UnbanHostIfUnused() error = %v", err)
	}
	banned, err = database.IsHostBanned(ctx, "shared.example.com")
	if err != nil {
		t.Fatalf("IsHostBanned() error = %v", err)
	}
	if banned {
		t.Error("ban not released once no submission holds the host")
	}
}
