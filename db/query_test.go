package db

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestListQuerySQL(t *testing.T) {
	q := &listQuery{
		from:    "posts",
		columns: projection{"posts.id", "COUNT(DISTINCT likes.user_id) AS likes_count"},
		joins: []joinSpec{
			{table: "users", kind: joinInner, on: "users.id = posts.user_id"},
			{table: "likes AS viewer_likes", kind: joinLeft,
				on: "viewer_likes.post_id = posts.id AND viewer_likes.user_id = ?", args: []any{"viewer"}},
		},
		where:   "posts.user_id = ?",
		args:    []any{"author"},
		groupBy: "posts.id",
		orderBy: "posts.published DESC",
	}

	query, args := q.sql(25, 50)

	expected := "SELECT posts.id, COUNT(DISTINCT likes.user_id) AS likes_count FROM posts" +
		" INNER JOIN users ON users.id = posts.user_id" +
		" LEFT JOIN likes AS viewer_likes ON viewer_likes.post_id = posts.id AND viewer_likes.user_id = ?" +
		" WHERE posts.user_id = ?" +
		" GROUP BY posts.id" +
		" ORDER BY posts.published DESC" +
		" LIMIT ? OFFSET ?"
	if query != expected {
		t.Errorf("Unexpected SQL:\n got %s\nwant %s", query, expected)
	}

	// Join args precede where args, pagination comes last
	if len(args) != 4 {
		t.Fatalf("Expected 4 args, got %d", len(args))
	}
	if args[0] != "viewer" || args[1] != "author" || args[2] != 25 || args[3] != 50 {
		t.Errorf("Unexpected arg order: %v", args)
	}
}

func TestListQuerySQLWithoutOptionalClauses(t *testing.T) {
	q := &listQuery{
		from:    "likes",
		columns: projection{"likes.post_id"},
	}

	query, args := q.sql(10, 0)

	if strings.Contains(query, "WHERE") || strings.Contains(query, "GROUP BY") || strings.Contains(query, "ORDER BY") {
		t.Errorf("Expected no optional clauses, got: %s", query)
	}
	if query != "SELECT likes.post_id FROM likes LIMIT ? OFFSET ?" {
		t.Errorf("Unexpected SQL: %s", query)
	}
	if len(args) != 2 {
		t.Errorf("Expected 2 args, got %d", len(args))
	}
}

func TestHomeTimelineQueryShape(t *testing.T) {
	viewer := uuid.New()
	query, args := homeTimelineQuery(viewer).sql(25, 0)

	if !strings.Contains(query, "LEFT JOIN follows ON follows.target_id = posts.user_id") {
		t.Errorf("Expected follows join in home timeline, got: %s", query)
	}
	if !strings.Contains(query, "follows.accepted = 1") {
		t.Errorf("Expected accepted filter in home timeline, got: %s", query)
	}
	if !strings.Contains(query, "GROUP BY posts.id") {
		t.Errorf("Expected grouping by post id, got: %s", query)
	}

	// viewer like-flag join, the two where placeholders, limit, offset
	if len(args) != 5 {
		t.Fatalf("Expected 5 args, got %d", len(args))
	}
	if args[0] != viewer || args[1] != viewer || args[2] != viewer {
		t.Errorf("Expected viewer id for first three args, got %v", args)
	}
}
