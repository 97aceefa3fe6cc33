package models

import "time"

// PublishedLink is the denormalized directory entry created when a
// submission is approved. It lives independently of the submission that
// produced it.
type PublishedLink struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	LinkText   string    `json:"link_text"`
	CategoryID int64     `json:"category_id"` // 0 = no category
	CreatedAt  time.Time `json:"created_at"`
}
