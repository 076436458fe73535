package domain

import "strings"

// Defaults applied to anonymous comments
const (
	AnonymousName  = "Anonymous"
	AnonymousEmail = "anonymous@example.com"
)

// CommentInput is a reader comment forwarded to WordPress
type CommentInput struct {
	PostID  int
	Name    string
	Email   string
	Content string
}

// WithDefaults fills in the anonymous author fields
func (c CommentInput) WithDefaults() CommentInput {
	if strings.TrimSpace(c.Name) == "" {
		c.Name = AnonymousName
	}
	if strings.TrimSpace(c.Email) == "" {
		c.Email = AnonymousEmail
	}
	return c
}

// CommentResult reports whether WordPress accepted the comment
type CommentResult struct {
	Success bool `json:"success"`
}
