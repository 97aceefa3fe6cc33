package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"linkboard/internal/db"
	"linkboard/internal/metrics"
	"linkboard/internal/models"
	"linkboard/internal/moderation"
)

// ModerationHandler exposes the moderation dashboard data and transitions.
// All routes are behind the admin middleware; the engine still re-checks the
// actor on single-record transitions.
type ModerationHandler struct {
	db     *db.DB
	engine *moderation.Engine
}

// NewModerationHandler creates a new moderation handler.
func NewModerationHandler(database *db.DB, engine *moderation.Engine) *ModerationHandler {
	return &ModerationHandler{db: database, engine: engine}
}

// List returns submissions filtered by status/category and sorted by an
// allow-listed column.
func (h *ModerationHandler) List(c fiber.Ctx) error {
	filter := db.ListFilter{
		OrderBy: c.Query("orderby", "submitted_at"),
		Order:   c.Query("order", "desc"),
	}

	if status := c.Query("status"); models.ValidStatus(status) {
		filter.Status = status
	}
	if categoryID, err := strconv.ParseInt(c.Query("category_id", "0"), 10, 64); err == nil {
		filter.CategoryID = categoryID
	}

	subs, err := h.db.ListSubmissions(c.Context(), filter)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch submissions")
	}
	if subs == nil {
		subs = []models.Submission{}
	}

	return jsonSuccess(c, fiber.Map{"submissions": subs})
}

// Counts returns the status -> count mapping for dashboard counters,
// straight from the store so it always reflects the latest committed state.
func (h *ModerationHandler) Counts(c fiber.Ctx) error {
	counts, err := h.db.CountByStatus(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to count submissions")
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return jsonSuccess(c, fiber.Map{
		"counts": counts,
		"total":  total,
	})
}

// Transition applies a single-record action. The interactive per-row surface
// only offers approve, deny, and ban; reversal and deletion go through bulk.
func (h *ModerationHandler) Transition(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid submission id")
	}

	action, err := models.ParseAction(c.Params("action"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid action")
	}
	switch action {
	case models.ActionApprove, models.ActionDeny, models.ActionBan:
	default:
		return jsonError(c, fiber.StatusBadRequest, "invalid action")
	}

	if err := h.engine.Transition(c.Context(), id, action, user); err != nil {
		switch {
		case errors.Is(err, moderation.ErrForbidden):
			return jsonError(c, fiber.StatusForbidden, "you do not have permission to moderate submissions")
		case errors.Is(err, moderation.ErrNotFound):
			return jsonError(c, fiber.StatusNotFound, "submission not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update submission")
	}

	metrics.RecordModerationAction(action.String(), 1)

	return jsonSuccess(c, fiber.Map{
		"message": "status updated",
		"id":      id,
	})
}

type bulkRequest struct {
	Action string  `json:"action" form:"action"`
	IDs    []int64 `json:"ids" form:"ids"`
}

// Bulk applies one action uniformly to a set of submissions and reports how
// many rows actually changed. Missing ids lower the count, they are not errors.
func (h *ModerationHandler) Bulk(c fiber.Ctx) error {
	var req bulkRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	action, err := models.ParseAction(req.Action)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid action")
	}
	if len(req.IDs) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "no submissions selected")
	}

	changed, err := h.engine.Apply(c.Context(), action, req.IDs)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to apply action")
	}

	metrics.RecordModerationAction(action.String(), changed)

	resp := fiber.Map{"changed": changed}
	if changed > 0 {
		resp["message"] = bulkMessage(action, changed)
	}
	return jsonSuccess(c, resp)
}

// bulkMessage builds the confirmation text shown after a bulk action.
func bulkMessage(action models.Action, changed int64) string {
	plural := "submissions"
	if changed == 1 {
		plural = "submission"
	}
	count := strconv.FormatInt(changed, 10)

	switch action {
	case models.ActionApprove:
		return count + " " + plural + " approved."
	case models.ActionUnapprove:
		return count + " " + plural + " unapproved and removed from the directory."
	case models.ActionDeny:
		return count + " " + plural + " denied."
	case models.ActionBan:
		return count + " " + plural + " banned. The associated domains are now blocked."
	case models.ActionDelete:
		return count + " " + plural + " deleted."
	}
	return count + " " + plural + " updated."
}
