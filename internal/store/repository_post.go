package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/models"
)

// postRepository is the SQL-backed implementation of [PostRepository].
// Read queries join the users table so that listings carry the author's
// username and profile picture without extra round trips.
type postRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPostRepository constructs a [PostRepository] backed by the provided
// database connection and logger.
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePost persists a new post and returns it with server-assigned fields
// (PostID, CreatedAt) populated via a RETURNING clause.
//
// Error handling:
//   - Foreign-key violation on user_id → [ErrAuthorNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *postRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertPost(r.db.placeholder(), post)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.CreatePost").Msg("error building insert query")
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.Post
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&created.PostID, &created.Title, &created.Content, &created.CreatedAt, &created.UserID); err != nil {
		if foreignKeyViolation(err) {
			log.Err(err).Str("func", "*postRepository.CreatePost").Msg("author does not exist")
			return models.Post{}, ErrAuthorNotFound
		}

		log.Err(err).Str("func", "*postRepository.CreatePost").Msg("error: scanning error")
		return models.Post{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetPost retrieves a post (author fields joined in) by identifier.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoPostWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *postRepository) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectPost(r.db.placeholder(), postID)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.GetPost").Msg("error building select query")
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.Post
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanPost(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrNoPostWasFound
		}

		log.Err(err).Str("func", "*postRepository.GetPost").Msg("error: scanning error")
		return models.Post{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// ListPosts returns one page of posts newest first together with the total
// number of posts matching the listing. A non-zero authorID narrows the
// listing to a single author.
func (r *postRepository) ListPosts(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPosts(r.db.placeholder(), authorID, limit, offset)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error building list query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	posts, err := r.queryPosts(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error listing posts")
		return nil, 0, err
	}

	countQuery, countArgs, err := buildCountPosts(r.db.placeholder(), authorID)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error building count query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error counting posts")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return posts, total, nil
}

// LatestPosts returns the n newest posts without pagination bookkeeping.
func (r *postRepository) LatestPosts(ctx context.Context, n int) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildLatestPosts(r.db.placeholder(), n)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.LatestPosts").Msg("error building latest query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryPosts(ctx, query, args)
}

// UpdatePost overwrites title and content of an existing post.
//
// Error handling:
//   - Zero affected rows → [ErrNoPostWasFound].
func (r *postRepository) UpdatePost(ctx context.Context, postID int64, title, content string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePost(r.db.placeholder(), postID, title, content)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.UpdatePost").Msg("error building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingRow(ctx, query, args)
}

// DeletePost removes a post permanently.
//
// Error handling:
//   - Zero affected rows → [ErrNoPostWasFound].
func (r *postRepository) DeletePost(ctx context.Context, postID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeletePost(r.db.placeholder(), postID)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.DeletePost").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingRow(ctx, query, args)
}

func (r *postRepository) queryPosts(ctx context.Context, query string, args []any) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		if err := scanPost(rows, &post); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return posts, nil
}

func (r *postRepository) execExpectingRow(ctx context.Context, query string, args []any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoPostWasFound
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan code.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner, post *models.Post) error {
	return row.Scan(
		&post.PostID, &post.Title, &post.Content, &post.CreatedAt, &post.UserID,
		&post.AuthorName, &post.AuthorImage,
	)
}
