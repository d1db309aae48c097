package models

import "time"

// Admin action tags written to the moderation log.
const (
	ActionDeleteUser         = "delete_user"
	ActionDeletePost         = "delete_post"
	ActionDeleteComment      = "delete_comment"
	ActionHidePost           = "hide_post"
	ActionShowPost           = "show_post"
	ActionReportPost         = "report_post"
	ActionHideComment        = "hide_comment"
	ActionShowComment        = "show_comment"
	ActionReportComment      = "report_comment"
	ActionBulkDeletePosts    = "bulk_delete_posts"
	ActionBulkHidePosts      = "bulk_hide_posts"
	ActionBulkShowPosts      = "bulk_show_posts"
	ActionBulkDeleteComments = "bulk_delete_comments"
	ActionBulkHideComments   = "bulk_hide_comments"
	ActionBulkShowComments   = "bulk_show_comments"
)

// Target types referenced by log entries.
const (
	TargetPost    = "post"
	TargetComment = "comment"
	TargetUser    = "user"
)

// AdminActionLog is an append-only moderation audit record kept in
// PostgreSQL. The core only ever inserts rows; nothing updates or deletes
// them.
type AdminActionLog struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	AdminID        string    `json:"admin_id" gorm:"size:24;index"`
	Action         string    `json:"action" gorm:"size:40;index"`
	TargetType     string    `json:"target_type" gorm:"size:10"`
	TargetID       string    `json:"target_id" gorm:"size:24"`
	TargetUsername string    `json:"target_username,omitempty"`
	TargetTitle    string    `json:"target_title,omitempty"`
	Details        string    `json:"details"`
	IPAddress      string    `json:"ip_address,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}

// BulkActionRequest defines the request body for bulk moderation
type BulkActionRequest struct {
	Action string   `json:"action" validate:"required,oneof=delete hide show"`
	IDs    []string `json:"ids" validate:"required,min=1"`
}

// SetStatusRequest defines the request body for a single status transition
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
