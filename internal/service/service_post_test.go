package service

import (
	"context"
	"strings"
	"testing"

	"github.com/avoronin/go-blog/internal/config"
	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/internal/mock"
	"github.com/avoronin/go-blog/internal/store"
	"github.com/avoronin/go-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestPostSvc(t *testing.T, ctrl *gomock.Controller) (*postService, *mock.MockPostRepository, *mock.MockUserRepository) {
	t.Helper()
	mockPosts := mock.NewMockPostRepository(ctrl)
	mockUsers := mock.NewMockUserRepository(ctrl)

	svc := NewPostService(mockPosts, mockUsers, config.App{PageSize: 5}, logger.Nop()).(*postService)

	return svc, mockPosts, mockUsers
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestPostService_List_FirstPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockPosts, _ := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	posts := []models.Post{{PostID: 2}, {PostID: 1}}
	mockPosts.EXPECT().ListPosts(ctx, int64(0), 5, 0).Return(posts, int64(12), nil)

	page, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, posts, page.Posts)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 3, page.TotalPages())
}

func TestPostService_List_OffsetFollowsPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockPosts, _ := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	mockPosts.EXPECT().ListPosts(ctx, int64(0), 5, 10).Return(nil, int64(12), nil)

	page, err := svc.List(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Number)
}

func TestPostService_List_ClampsPageBelowOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockPosts, _ := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	mockPosts.EXPECT().ListPosts(ctx, int64(0), 5, 0).Return(nil, int64(0), nil)

	page, err := svc.List(ctx, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
}

// ── ListByUser ───────────────────────────────────────────────────────────────

func TestPostService_ListByUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockPosts, mockUsers := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	author := models.User{UserID: 3, Username: "alice"}
	posts := []models.Post{{PostID: 9, UserID: 3}}

	gomock.InOrder(
		mockUsers.EXPECT().FindUserByUsername(ctx, "alice").Return(author, nil),
		mockPosts.EXPECT().ListPosts(ctx, int64(3), 5, 0).Return(posts, int64(1), nil),
	)

	page, got, err := svc.ListByUser(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, author, got)
	assert.Equal(t, posts, page.Posts)
}

func TestPostService_ListByUser_UnknownAuthor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockUsers := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByUsername(ctx, "ghost").
		Return(models.User{}, store.ErrNoUserWasFound)

	_, _, err := svc.ListByUser(ctx, "ghost", 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ── Latest ───────────────────────────────────────────────────────────────────

func TestPostService_Latest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockPosts, _ := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	posts := []models.Post{{PostID: 5}, {PostID: 4}}
	mockPosts.EXPECT().LatestPosts(ctx, 5).Return(posts, nil)

	got, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, posts, got)
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestPostService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockPosts, _ := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	mockPosts.EXPECT().CreatePost(ctx, models.Post{Title: "Hi", Content: "Hello", UserID: 1}).
		Return(models.Post{PostID: 10, Title: "Hi", Content: "Hello", UserID: 1}, nil)

	created, err := svc.Create(ctx, 1, "Hi", "Hello")
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.PostID)
}

func TestPostService_Create_ValidationFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	tests := []struct {
		name    string
		title   string
		content string
	}{
		{"empty title", "", "content"},
		{"empty content", "title", ""},
		{"title too long", strings.Repeat("x", 101), "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, tt.title, tt.content)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

// ── Update / Delete ──────────────────────────────────────────────────────────

func TestPostService_Update_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockPosts, _ := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	existing := models.Post{PostID: 10, Title: "old", Content: "old", UserID: 1}
	refreshed := models.Post{PostID: 10, Title: "new", Content: "new", UserID: 1}

	gomock.InOrder(
		mockPosts.EXPECT().GetPost(ctx, int64(10)).Return(existing, nil),
		mockPosts.EXPECT().UpdatePost(ctx, int64(10), "new", "new").Return(nil),
		mockPosts.EXPECT().GetPost(ctx, int64(10)).Return(refreshed, nil),
	)

	updated, err := svc.Update(ctx, 10, 1, "new", "new")
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
}

func TestPostService_Update_Forbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockPosts, _ := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	mockPosts.EXPECT().GetPost(ctx, int64(10)).
		Return(models.Post{PostID: 10, UserID: 1}, nil)

	// caller 2 is not the author, nothing must be written
	_, err := svc.Update(ctx, 10, 2, "new", "new")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPostService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockPosts, _ := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	mockPosts.EXPECT().GetPost(ctx, int64(404)).
		Return(models.Post{}, store.ErrNoPostWasFound)

	_, err := svc.Update(ctx, 404, 1, "new", "new")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_Delete_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockPosts, _ := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockPosts.EXPECT().GetPost(ctx, int64(10)).Return(models.Post{PostID: 10, UserID: 1}, nil),
		mockPosts.EXPECT().DeletePost(ctx, int64(10)).Return(nil),
	)

	require.NoError(t, svc.Delete(ctx, 10, 1))
}

func TestPostService_Delete_Forbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockPosts, _ := newTestPostSvc(t, ctrl)
	ctx := context.Background()

	mockPosts.EXPECT().GetPost(ctx, int64(10)).
		Return(models.Post{PostID: 10, UserID: 1}, nil)

	err := svc.Delete(ctx, 10, 2)
	assert.ErrorIs(t, err, ErrForbidden)
}
