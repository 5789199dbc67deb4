package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestIsReply(t *testing.T) {
	parent := uuid.New()

	post := Post{Id: uuid.New()}
	if post.IsReply() {
		t.Error("Expected IsReply to be false for a plain post")
	}

	post.RepliedToId = &parent
	if !post.IsReply() {
		t.Error("Expected IsReply to be true when RepliedToId is set")
	}
}

func TestIsRepost(t *testing.T) {
	original := uuid.New()

	post := Post{Id: uuid.New()}
	if post.IsRepost() {
		t.Error("Expected IsRepost to be false for a plain post")
	}

	post.RepostOfId = &original
	if !post.IsRepost() {
		t.Error("Expected IsRepost to be true when RepostOfId is set")
	}
}

func TestUserContextVariant(t *testing.T) {
	var ctx Context = UserContext{UserId: uuid.New()}

	if _, ok := ctx.(UserContext); !ok {
		t.Error("Expected UserContext to match the UserContext variant")
	}

	ctx = Anonymous{}
	if _, ok := ctx.(UserContext); ok {
		t.Error("Expected Anonymous not to match the UserContext variant")
	}
}
