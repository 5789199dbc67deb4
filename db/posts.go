package db

import (
	"database/sql"
	"errors"

	"github.com/extopy/extopy-go/domain"
	"github.com/extopy/extopy-go/metrics"
	"github.com/google/uuid"
	"time"
)

// ErrForbidden reports a mutation on a post owned by a different user.
var ErrForbidden = errors.New("post belongs to a different user")

const (
	sqlInsertPost = `INSERT INTO posts(id, user_id, replied_to_id, repost_of_id, body, published, edited, expiration, visibility, trends_count)
                                                            VALUES (?, ?, ?, ?, ?, ?, NULL, ?, '', 0)`
	sqlUpdatePostByAuthor = `UPDATE posts SET body = ?, edited = ? WHERE id = ? AND user_id = ?`
	sqlDeletePostByAuthor = `DELETE FROM posts WHERE id = ? AND user_id = ?`
	sqlSelectPostAuthor   = `SELECT user_id FROM posts WHERE id = ?`
)

// ReadHomeTimeline returns the posts the viewer is allowed to see in the
// standard timeline: their own posts plus posts from accepted follows.
func (db *DB) ReadHomeTimeline(ctx domain.Context, limit int, offset int) (error, *[]domain.Post) {
	user, ok := ctx.(domain.UserContext)
	if !ok {
		return nil, nil
	}
	return db.listPosts(homeTimelineQuery(user.UserId), limit, offset)
}

// ReadTrendingTimeline returns all posts ordered by trends score.
func (db *DB) ReadTrendingTimeline(ctx domain.Context, limit int, offset int) (error, *[]domain.Post) {
	user, ok := ctx.(domain.UserContext)
	if !ok {
		return nil, nil
	}
	return db.listPosts(postListQuery(user.UserId, "", nil, orderByTrends), limit, offset)
}

// ReadUserTimeline returns the posts of a single author.
func (db *DB) ReadUserTimeline(userId uuid.UUID, ctx domain.Context, limit int, offset int) (error, *[]domain.Post) {
	user, ok := ctx.(domain.UserContext)
	if !ok {
		return nil, nil
	}
	return db.listPosts(postListQuery(user.UserId, "posts.user_id = ?", []any{userId}, orderByPublished), limit, offset)
}

// ReadReplies returns the direct replies of a post.
func (db *DB) ReadReplies(postId uuid.UUID, ctx domain.Context, limit int, offset int) (error, *[]domain.Post) {
	user, ok := ctx.(domain.UserContext)
	if !ok {
		return nil, nil
	}
	return db.listPosts(postListQuery(user.UserId, "posts.replied_to_id = ?", []any{postId}, orderByPublished), limit, offset)
}

// ReadPostById returns a single post with its aggregates, or nil when no
// such post exists.
func (db *DB) ReadPostById(id uuid.UUID, ctx domain.Context) (error, *domain.Post) {
	user, ok := ctx.(domain.UserContext)
	if !ok {
		return nil, nil
	}
	query, args := postListQuery(user.UserId, "posts.id = ?", []any{id}, orderByPublished).sql(1, 0)
	post, err := scanPost(db.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return err, nil
	}
	return nil, post
}

// CreatePost inserts a post for the acting user and re-reads it through
// the aggregate query so the caller sees the denormalized shape (all
// counts zero on creation). A nil result after a successful insert means
// the post was deleted concurrently before the read-back.
func (db *DB) CreatePost(payload domain.PostPayload, ctx domain.Context) (error, *domain.Post) {
	user, ok := ctx.(domain.UserContext)
	if !ok {
		return nil, nil
	}

	id := uuid.New()
	now := time.Now()
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertPost,
			id,
			user.UserId,
			nullableId(payload.RepliedToId),
			nullableId(payload.RepostOfId),
			payload.Body,
			now,
			now,
		)
		return err
	})
	if err != nil {
		return err, nil
	}

	return db.ReadPostById(id, ctx)
}

// UpdatePost replaces the body and stamps the edit time. The statement
// matches (id, author); a miss on an existing post owned by someone else
// reports ErrForbidden instead of a plain false.
func (db *DB) UpdatePost(id uuid.UUID, payload domain.PostPayload, ctx domain.Context) (error, bool) {
	user, ok := ctx.(domain.UserContext)
	if !ok {
		return nil, false
	}

	var affected int64
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(sqlUpdatePostByAuthor, payload.Body, time.Now(), id, user.UserId)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err, false
	}
	if affected == 1 {
		return nil, true
	}
	return db.checkPostOwnership(id, user.UserId)
}

// DeletePost removes the post, with the same (id, author) matching as
// UpdatePost.
func (db *DB) DeletePost(id uuid.UUID, ctx domain.Context) (error, bool) {
	user, ok := ctx.(domain.UserContext)
	if !ok {
		return nil, false
	}

	var affected int64
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(sqlDeletePostByAuthor, id, user.UserId)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err, false
	}
	if affected == 1 {
		return nil, true
	}
	return db.checkPostOwnership(id, user.UserId)
}

// checkPostOwnership distinguishes "no such post" from "post exists but
// is owned by someone else" after a zero-row mutation.
func (db *DB) checkPostOwnership(id uuid.UUID, userId uuid.UUID) (error, bool) {
	var authorId uuid.UUID
	err := db.db.QueryRow(sqlSelectPostAuthor, id).Scan(&authorId)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		return err, false
	}
	if authorId != userId {
		return ErrForbidden, false
	}
	return nil, false
}

func (db *DB) listPosts(q *listQuery, limit int, offset int) (error, *[]domain.Post) {
	defer metrics.ObserveQueryDuration(time.Now())

	query, args := q.sql(limit, offset)
	rows, err := db.db.Query(query, args...)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var posts []domain.Post

	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return err, &posts
		}
		posts = append(posts, *post)
	}
	if err = rows.Err(); err != nil {
		return err, &posts
	}

	return nil, &posts
}

func nullableId(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
