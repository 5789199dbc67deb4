package db

import (
	"database/sql"

	"github.com/extopy/extopy-go/domain"
	"github.com/google/uuid"
	"time"
)

const (
	sqlInsertLike = `INSERT INTO likes(post_id, user_id, created_at) VALUES (?, ?, ?)`
	sqlDeleteLike = `DELETE FROM likes WHERE post_id = ? AND user_id = ?`
	sqlSelectLikesByPostId = `SELECT likes.post_id, likes.user_id, likes.created_at, ` + userProjection + ` FROM likes
    														LEFT JOIN users ON users.id = likes.user_id
                                                            WHERE likes.post_id = ?
                                                            ORDER BY likes.created_at DESC, likes.user_id DESC
                                                            LIMIT ? OFFSET ?`
)

// ReadLikesByPostId lists the like edges of a post joined to the liking
// user's profile.
func (db *DB) ReadLikesByPostId(postId uuid.UUID, limit int, offset int) (error, *[]domain.Like) {
	rows, err := db.db.Query(sqlSelectLikesByPostId, postId, limit, offset)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var likes []domain.Like

	for rows.Next() {
		var like domain.Like
		var userId uuid.NullUUID
		var displayName, username, avatar sql.NullString
		var verified sql.NullBool
		if err := rows.Scan(&like.PostId, &like.UserId, &like.CreatedAt, &userId, &displayName, &username, &avatar, &verified); err != nil {
			return err, &likes
		}
		like.User = scanJoinedUser(userId, displayName, username, avatar, verified)
		likes = append(likes, like)
	}
	if err = rows.Err(); err != nil {
		return err, &likes
	}

	return nil, &likes
}

// CreateLike adds the acting user's like edge on a post. A duplicate
// like is rejected by the composite key; the constraint error is
// returned as-is.
func (db *DB) CreateLike(postId uuid.UUID, ctx domain.Context) (error, *domain.Like) {
	user, ok := ctx.(domain.UserContext)
	if !ok {
		return nil, nil
	}

	like := &domain.Like{
		PostId:    postId,
		UserId:    user.UserId,
		CreatedAt: time.Now(),
	}
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertLike, like.PostId, like.UserId, like.CreatedAt)
		return err
	})
	if err != nil {
		return err, nil
	}
	return nil, like
}

// DeleteLike removes one like edge; true iff the edge existed.
func (db *DB) DeleteLike(postId uuid.UUID, userId uuid.UUID) (error, bool) {
	var affected int64
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(sqlDeleteLike, postId, userId)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err, false
	}
	return nil, affected == 1
}
