package models

import (
	"fmt"
	"time"
)

// Submission statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
	StatusBanned   = "banned"
)

// ValidStatus reports whether s is one of the known submission statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied, StatusBanned:
		return true
	}
	return false
}

// Submission represents a proposed link awaiting or past moderation.
type Submission struct {
	ID          int64     `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
	URL         string    `json:"url"`
	LinkText    string    `json:"link_text"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	CategoryID  int64     `json:"category_id"`        // 0 = no category
	PublishedID int64     `json:"published_link_id"`  // 0 = not mirrored to published_links
	BannedHost  string    `json:"banned_host"`        // non-empty only while status is banned
	Status      string    `json:"status"`
}

// Action is a moderation action applied to one or more submissions.
type Action int

const (
	ActionApprove Action = iota
	ActionUnapprove
	ActionDeny
	ActionBan
	ActionDelete
)

// ParseAction maps an action name from the wire to an Action.
// Unknown names are rejected here so the engine only ever sees valid actions.
func ParseAction(s string) (Action, error) {
	switch s {
	case "approve":
		return ActionApprove, nil
	case "unapprove":
		return ActionUnapprove, nil
	case "deny":
		return ActionDeny, nil
	case "ban":
		return ActionBan, nil
	case "delete":
		return ActionDelete, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case ActionApprove:
		return "approve"
	case ActionUnapprove:
		return "unapprove"
	case ActionDeny:
		return "deny"
	case ActionBan:
		return "ban"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}
