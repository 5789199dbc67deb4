package domain

import (
	"fmt"
	"github.com/google/uuid"
	"time"
)

type Post struct {
	Id          uuid.UUID  `json:"id"`
	AuthorId    uuid.UUID  `json:"authorId"`
	RepliedToId *uuid.UUID `json:"repliedToId,omitempty"`
	RepostOfId  *uuid.UUID `json:"repostOfId,omitempty"`
	Body        string     `json:"body"`
	Published   time.Time  `json:"published"`
	Edited      *time.Time `json:"edited,omitempty"` // set on the first update, nil before
	Expiration  time.Time  `json:"expiration"`
	Visibility  string     `json:"visibility"`
	TrendsCount int        `json:"trendsCount"`

	// Denormalized fields filled by the feed queries, never stored.
	Author       User `json:"author"`
	LikesCount   int  `json:"likesCount"`
	RepliesCount int  `json:"repliesCount"`
	RepostsCount int  `json:"repostsCount"`
	LikesIn      bool `json:"likesIn"`
}

// PostPayload is the caller-supplied part of a post.
type PostPayload struct {
	RepliedToId *uuid.UUID `json:"repliedToId,omitempty"`
	RepostOfId  *uuid.UUID `json:"repostOfId,omitempty"`
	Body        string     `json:"body"`
}

func (post *Post) IsReply() bool {
	return post.RepliedToId != nil
}

func (post *Post) IsRepost() bool {
	return post.RepostOfId != nil
}

func (post *Post) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tAuthor: %s \n\tBody: %s \n\tPublished: %s)", post.Id, post.Author.Username, post.Body, post.Published)
}
