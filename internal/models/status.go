package models

import "github.com/AbdellahRAISSOUNI/rjilat/internal/apperr"

// Status is the moderation state shared by posts and comments. Hidden content
// is filtered from public listings; reported content stays visible until a
// moderator acts on it.
type Status string

const (
	StatusActive   Status = "active"
	StatusHidden   Status = "hidden"
	StatusReported Status = "reported"
)

// ParseStatus validates a client-supplied status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusHidden, StatusReported:
		return Status(s), nil
	}
	return "", apperr.Validation("invalid status %q", s)
}
