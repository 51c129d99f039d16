package store

import (
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/avoronin/go-blog/models"
)

func TestBuildInsertUser_Dollar(t *testing.T) {
	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h", ImageFile: "default.jpg"}

	query, args, err := buildInsertUser(sq.Dollar, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO users") {
		t.Errorf("unexpected query: %s", query)
	}
	if !strings.Contains(query, "RETURNING user_id, username, email") {
		t.Errorf("expected RETURNING clause, got: %s", query)
	}
	if !strings.Contains(query, "$4") {
		t.Errorf("expected dollar placeholders, got: %s", query)
	}
	if len(args) != 4 {
		t.Errorf("expected 4 args, got %d", len(args))
	}
}

func TestBuildUpdateUser_OnlyNonNilFields(t *testing.T) {
	email := "new@example.com"

	query, args, err := buildUpdateUser(sq.Dollar, models.UserUpdate{UserID: 7, Email: &email})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(query, "username") && strings.Contains(query, "SET username") {
		t.Errorf("username must not be updated: %s", query)
	}
	if !strings.Contains(query, "email = $1") {
		t.Errorf("expected email set clause, got: %s", query)
	}
	if len(args) != 2 { // email + user_id
		t.Errorf("expected 2 args, got %d: %v", len(args), args)
	}
}

func TestBuildListPosts_OrderingAndPaging(t *testing.T) {
	query, args, err := buildListPosts(sq.Dollar, 0, 5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "ORDER BY p.created_at DESC, p.post_id DESC") {
		t.Errorf("expected stable descending order, got: %s", query)
	}
	if !strings.Contains(query, "LIMIT 5") || !strings.Contains(query, "OFFSET 10") {
		t.Errorf("expected LIMIT/OFFSET, got: %s", query)
	}
	if len(args) != 0 {
		t.Errorf("expected no args for unfiltered list, got %v", args)
	}
}

func TestBuildListPosts_AuthorFilter(t *testing.T) {
	query, args, err := buildListPosts(sq.Dollar, 3, 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "p.user_id = $1") {
		t.Errorf("expected author filter, got: %s", query)
	}
	if len(args) != 1 || args[0] != int64(3) {
		t.Errorf("expected author arg, got %v", args)
	}
}

func TestBuildUpdatePassword_BumpsWatermark(t *testing.T) {
	query, _, err := buildUpdatePassword(sq.Question, 7, "hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "password_updated_at = CURRENT_TIMESTAMP") {
		t.Errorf("expected password_updated_at bump, got: %s", query)
	}
}

func TestPlaceholder_PerDriver(t *testing.T) {
	pg := &DB{driver: "pgx"}
	if pg.placeholder() != sq.Dollar {
		t.Error("expected dollar placeholders for pgx")
	}

	lite := &DB{driver: "sqlite3"}
	if lite.placeholder() != sq.Question {
		t.Error("expected question placeholders for sqlite3")
	}
}
