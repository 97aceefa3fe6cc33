package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"linkboard/internal/config"
	"linkboard/internal/db"
	"linkboard/internal/email"
	"linkboard/internal/models"
	"linkboard/internal/validation"
)

// SubmissionHandler handles public link submission and the published directory.
type SubmissionHandler struct {
	db       *db.DB
	cfg      *config.Config
	notifier *email.Notifier
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(database *db.DB, cfg *config.Config, notifier *email.Notifier) *SubmissionHandler {
	return &SubmissionHandler{db: database, cfg: cfg, notifier: notifier}
}

type submitRequest struct {
	URL        string `json:"url" form:"url"`
	LinkText   string `json:"link_text" form:"link_text"`
	UserName   string `json:"user_name" form:"user_name"`
	UserEmail  string `json:"user_email" form:"user_email"`
	CategoryID int64  `json:"category_id" form:"category_id"`
	// Honeypot: invisible to humans, filled by bots. Must stay empty.
	Website string `json:"website" form:"website"`
}

// validateDraft collects all field-level validation messages for a draft.
// It deliberately does not fail fast; the submitter sees every problem at once.
func validateDraft(req *submitRequest) []string {
	var errs []string

	if valid, _ := validation.ValidateURL(req.URL); !valid {
		errs = append(errs, "Please enter a valid URL.")
	}
	if req.LinkText == "" {
		errs = append(errs, "Please enter link text.")
	}
	if req.UserName == "" {
		errs = append(errs, "Please enter your name.")
	}
	if !validation.ValidateEmail(req.UserEmail) {
		errs = append(errs, "Please enter a valid email address.")
	}

	return errs
}

// Create accepts a public link submission. The record always starts pending.
func (h *SubmissionHandler) Create(c fiber.Ctx) error {
	var req submitRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	// Honeypot check for bots. No detail about what tripped.
	if req.Website != "" {
		return jsonError(c, fiber.StatusBadRequest, "Spam detected.")
	}

	errs := validateDraft(&req)

	// The ban check short-circuits with a distinct forbidden outcome, but only
	// for URLs that validated; invalid URLs are already rejected above it.
	if valid, _ := validation.ValidateURL(req.URL); valid {
		host := validation.NormalizeHost(req.URL)
		banned, err := h.db.IsHostBanned(c.Context(), host)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "Could not save submission. Please try again.")
		}
		if banned {
			return jsonError(c, fiber.StatusForbidden, "This domain has been banned from submission.")
		}
	}

	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"error":   "validation failed",
			"details": errs,
		})
	}

	sub := &models.Submission{
		URL:        req.URL,
		LinkText:   req.LinkText,
		UserName:   req.UserName,
		UserEmail:  req.UserEmail,
		CategoryID: req.CategoryID,
	}
	if err := h.db.InsertSubmission(c.Context(), sub); err != nil {
		log.Printf("Failed to insert submission: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "Could not save submission. Please try again.")
	}

	if h.notifier != nil {
		h.notifier.NotifyAdminNewSubmission(c.Context(), sub)
	}

	return jsonSuccess(c, fiber.Map{
		"message": "Thank you! Your link has been submitted for review.",
		"id":      sub.ID,
	})
}

// ListPublished returns the public published-link directory.
func (h *SubmissionHandler) ListPublished(c fiber.Ctx) error {
	links, err := h.db.ListPublishedLinks(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch links")
	}
	if links == nil {
		links = []models.PublishedLink{}
	}
	return jsonSuccess(c, fiber.Map{"links": links})
}
