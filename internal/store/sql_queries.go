package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/avoronin/go-blog/models"
)

// Column lists shared by the query builders below. Keeping them in one place
// guards the builders and the row scanners against drifting apart.
var (
	userColumns = []string{"user_id", "username", "email", "password_hash", "image_file", "created_at", "password_updated_at"}

	postColumns = []string{
		"p.post_id", "p.title", "p.content", "p.created_at", "p.user_id",
		"u.username", "u.image_file",
	}
)

// placeholder returns the squirrel placeholder format matching the driver
// the connection was opened with: $N for PostgreSQL, ? for SQLite.
func (db *DB) placeholder() sq.PlaceholderFormat {
	if db.driver == "pgx" {
		return sq.Dollar
	}

	return sq.Question
}

func buildInsertUser(pf sq.PlaceholderFormat, user models.User) (string, []any, error) {
	return sq.Insert(user.TableName()).
		Columns("username", "email", "password_hash", "image_file").
		Values(user.Username, user.Email, user.PasswordHash, user.ImageFile).
		Suffix("RETURNING " + joinColumns(userColumns)).
		PlaceholderFormat(pf).
		ToSql()
}

func buildSelectUser(pf sq.PlaceholderFormat, pred any, args ...any) (string, []any, error) {
	return sq.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(pred, args...).
		PlaceholderFormat(pf).
		ToSql()
}

// buildUpdateUser dynamically builds an UPDATE with one SET clause per
// non-nil field of the given update.
func buildUpdateUser(pf sq.PlaceholderFormat, update models.UserUpdate) (string, []any, error) {
	builder := sq.Update(models.User{}.TableName())

	if update.Username != nil {
		builder = builder.Set("username", *update.Username)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.ImageFile != nil {
		builder = builder.Set("image_file", *update.ImageFile)
	}

	return builder.
		Where(sq.Eq{"user_id": update.UserID}).
		Suffix("RETURNING " + joinColumns(userColumns)).
		PlaceholderFormat(pf).
		ToSql()
}

func buildUpdatePassword(pf sq.PlaceholderFormat, userID int64, passwordHash string) (string, []any, error) {
	return sq.Update(models.User{}.TableName()).
		Set("password_hash", passwordHash).
		Set("password_updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(pf).
		ToSql()
}

func buildInsertPost(pf sq.PlaceholderFormat, post models.Post) (string, []any, error) {
	return sq.Insert(post.TableName()).
		Columns("title", "content", "user_id").
		Values(post.Title, post.Content, post.UserID).
		Suffix("RETURNING post_id, title, content, created_at, user_id").
		PlaceholderFormat(pf).
		ToSql()
}

func buildSelectPost(pf sq.PlaceholderFormat, postID int64) (string, []any, error) {
	return sq.Select(postColumns...).
		From("posts p").
		Join("users u ON u.user_id = p.user_id").
		Where(sq.Eq{"p.post_id": postID}).
		PlaceholderFormat(pf).
		ToSql()
}

// buildListPosts builds the paginated feed query: newest first, ties broken
// by post id descending so the ordering is total and pages never overlap.
// A non-zero authorID narrows the feed to a single author.
func buildListPosts(pf sq.PlaceholderFormat, authorID int64, limit, offset int) (string, []any, error) {
	builder := sq.Select(postColumns...).
		From("posts p").
		Join("users u ON u.user_id = p.user_id")

	if authorID != 0 {
		builder = builder.Where(sq.Eq{"p.user_id": authorID})
	}

	return builder.
		OrderBy("p.created_at DESC", "p.post_id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(pf).
		ToSql()
}

func buildCountPosts(pf sq.PlaceholderFormat, authorID int64) (string, []any, error) {
	builder := sq.Select("COUNT(*)").From("posts")

	if authorID != 0 {
		builder = builder.Where(sq.Eq{"user_id": authorID})
	}

	return builder.PlaceholderFormat(pf).ToSql()
}

func buildLatestPosts(pf sq.PlaceholderFormat, n int) (string, []any, error) {
	return sq.Select(postColumns...).
		From("posts p").
		Join("users u ON u.user_id = p.user_id").
		OrderBy("p.created_at DESC", "p.post_id DESC").
		Limit(uint64(n)).
		PlaceholderFormat(pf).
		ToSql()
}

func buildUpdatePost(pf sq.PlaceholderFormat, postID int64, title, content string) (string, []any, error) {
	return sq.Update(models.Post{}.TableName()).
		Set("title", title).
		Set("content", content).
		Where(sq.Eq{"post_id": postID}).
		PlaceholderFormat(pf).
		ToSql()
}

func buildDeletePost(pf sq.PlaceholderFormat, postID int64) (string, []any, error) {
	return sq.Delete(models.Post{}.TableName()).
		Where(sq.Eq{"post_id": postID}).
		PlaceholderFormat(pf).
		ToSql()
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
