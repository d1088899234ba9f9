package models

import "time"

// Content type values accepted by the catalog.
const (
	ContentTypePastPaper = "past_paper"
	ContentTypeNotes     = "notes"
	ContentTypeBook      = "book"
	ContentTypeFQE       = "fqe"
)

// ContentItem is the persisted catalog record. The raw URL and the
// password never leave the server through listing endpoints; see Redact.
type ContentItem struct {
	ID          int       `db:"id" json:"id"`
	ClassID     int       `db:"class_id" json:"classId"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	Type        string    `db:"type" json:"type"`
	URL         string    `db:"url" json:"url"`
	IsLocked    bool      `db:"is_locked" json:"isLocked"`
	Password    *string   `db:"password" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// ContentResponse is the redacted wire form of a ContentItem: the
// password field is always absent and the URL is withheld while locked.
type ContentResponse struct {
	ID          int       `json:"id"`
	ClassID     int       `json:"classId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Type        string    `json:"type"`
	URL         string    `json:"url,omitempty"`
	IsLocked    bool      `json:"isLocked"`
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Redact strips the password and, for locked items, the URL.
func (c ContentItem) Redact() ContentResponse {
	resp := ContentResponse{
		ID:          c.ID,
		ClassID:     c.ClassID,
		Title:       c.Title,
		Description: c.Description,
		Type:        c.Type,
		IsLocked:    c.IsLocked,
		HasPassword: c.Password != nil && *c.Password != "",
		CreatedAt:   c.CreatedAt,
	}
	if !c.IsLocked {
		resp.URL = c.URL
	}
	return resp
}

// ContentFilter narrows content listings.
type ContentFilter struct {
	ClassID  int
	Page     int
	PageSize int
}
