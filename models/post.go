package models

import "time"

// Post represents a single blog entry owned by a user.
type Post struct {
	// PostID is the internal unique identifier of the post.
	PostID int64 `json:"-"`

	// Title is the headline of the post. Limited to 100 characters.
	Title string `json:"title"`

	// Content is the body of the post.
	Content string `json:"content"`

	// CreatedAt is the timestamp when the post was published. Feeds are
	// ordered by this field descending, ties broken by PostID descending.
	CreatedAt time.Time `json:"created_at"`

	// UserID references the owning user. Immutable after creation; only
	// the owner may update or delete the post.
	UserID int64 `json:"-"`

	// AuthorName is the username of the owning user, joined in by list
	// queries for rendering. Not a column of the posts table.
	AuthorName string `json:"author"`

	// AuthorImage is the owner's profile picture file name, joined in by
	// list queries for rendering. Not a column of the posts table.
	AuthorImage string `json:"-"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}

// Preview returns the first max characters of the content, appending an
// ellipsis when the content was truncated. Used by the latest-posts page.
func (p Post) Preview(max int) string {
	if max <= 0 {
		return p.Content
	}
	runes := []rune(p.Content)
	if len(runes) <= max {
		return p.Content
	}
	return string(runes[:max]) + "..."
}
