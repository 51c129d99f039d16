package models

import "time"

// User represents a registered account of the blog.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Username is the unique, displayable name of the user.
	Username string `json:"username"`

	// Email is the unique address the user registers and logs in with.
	// It is also the recipient of password-reset messages.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext. It is never serialized.
	PasswordHash string `json:"-"`

	// ImageFile is the file name of the user's profile picture inside the
	// static profile-pics directory. Defaults to "default.jpg".
	ImageFile string `json:"image_file"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// PasswordUpdatedAt is bumped every time the password changes.
	// Reset tokens issued before this moment are rejected, which makes a
	// token unusable after it has been spent.
	PasswordUpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate describes a partial update of a user record. Nil fields are
// left untouched by the update.
type UserUpdate struct {
	// UserID identifies the record to update.
	UserID int64

	// Username replaces the stored username when non-nil.
	Username *string

	// Email replaces the stored email when non-nil.
	Email *string

	// ImageFile replaces the stored profile picture reference when non-nil.
	ImageFile *string
}
