package db

import (
	"testing"
	"time"

	"github.com/extopy/extopy-go/domain"
	"github.com/google/uuid"
)

func TestCreateLikeDuplicate(t *testing.T) {
	db := setupTestDB(t)
	defer db.db.Close()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	ctx := domain.UserContext{UserId: fan}

	post := createTestPost(t, db, author, "likeable", time.Now())

	err, like := db.CreateLike(post, ctx)
	if err != nil {
		t.Fatalf("CreateLike failed: %v", err)
	}
	if like == nil {
		t.Fatal("Expected like")
	}

	err, _ = db.CreateLike(post, ctx)
	if !IsConstraintViolation(err) {
		t.Errorf("Expected constraint violation for duplicate like, got %v", err)
	}

	// Still exactly one edge
	err, read := db.ReadPostById(post, ctx)
	if err != nil {
		t.Fatalf("ReadPostById failed: %v", err)
	}
	if read.LikesCount != 1 {
		t.Errorf("Expected LikesCount 1, got %d", read.LikesCount)
	}
}

func TestCreateLikeAnonymous(t *testing.T) {
	db := setupTestDB(t)
	defer db.db.Close()

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "likeable", time.Now())

	err, like := db.CreateLike(post, domain.Anonymous{})
	if err != nil {
		t.Fatalf("CreateLike failed: %v", err)
	}
	if like != nil {
		t.Error("Expected nil like for an anonymous caller")
	}
}

func TestDeleteLikeNonexistent(t *testing.T) {
	db := setupTestDB(t)
	defer db.db.Close()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")

	post := createTestPost(t, db, author, "never liked", time.Now())

	err, deleted := db.DeleteLike(post, fan)
	if err != nil {
		t.Fatalf("DeleteLike failed: %v", err)
	}
	if deleted {
		t.Error("Expected DeleteLike of missing edge to report false")
	}

	_, _ = db.CreateLike(post, domain.UserContext{UserId: fan})
	err, deleted = db.DeleteLike(post, fan)
	if err != nil {
		t.Fatalf("DeleteLike failed: %v", err)
	}
	if !deleted {
		t.Error("Expected DeleteLike of existing edge to report true")
	}
}

func TestReadLikesByPostId(t *testing.T) {
	db := setupTestDB(t)
	defer db.db.Close()

	author := createTestUser(t, db, "author")
	fan1 := createTestUser(t, db, "fan1")
	fan2 := createTestUser(t, db, "fan2")

	post := createTestPost(t, db, author, "popular", time.Now())
	other := createTestPost(t, db, author, "ignored", time.Now())

	createTestLike(t, db, post, fan1)
	createTestLike(t, db, post, fan2)
	createTestLike(t, db, other, fan1)

	err, likes := db.ReadLikesByPostId(post, 10, 0)
	if err != nil {
		t.Fatalf("ReadLikesByPostId failed: %v", err)
	}
	if len(*likes) != 2 {
		t.Fatalf("Expected 2 likes, got %d", len(*likes))
	}

	usernames := make(map[string]bool)
	for _, like := range *likes {
		if like.PostId != post {
			t.Errorf("Expected PostId %s, got %s", post, like.PostId)
		}
		if like.User == nil {
			t.Fatal("Expected joined user profile on like")
		}
		usernames[like.User.Username] = true
	}
	if !usernames["fan1"] || !usernames["fan2"] {
		t.Errorf("Expected fan1 and fan2 in likes, got %v", usernames)
	}
}

func TestReadLikesByPostIdEmpty(t *testing.T) {
	db := setupTestDB(t)
	defer db.db.Close()

	err, likes := db.ReadLikesByPostId(uuid.New(), 10, 0)
	if err != nil {
		t.Fatalf("ReadLikesByPostId failed: %v", err)
	}
	if len(*likes) != 0 {
		t.Errorf("Expected no likes, got %d", len(*likes))
	}
}
