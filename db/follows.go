package db

import (
	"database/sql"

	"github.com/extopy/extopy-go/domain"
	"github.com/google/uuid"
	"time"
)

const (
	sqlInsertFollow = `INSERT INTO follows(follower_id, target_id, accepted, created_at) VALUES (?, ?, ?, ?)`
	sqlDeleteFollow = `DELETE FROM follows WHERE follower_id = ? AND target_id = ?`
	sqlSelectFollowers = `SELECT follows.follower_id, follows.target_id, follows.accepted, follows.created_at, ` + userProjection + ` FROM follows
    														LEFT JOIN users ON users.id = follows.follower_id
                                                            WHERE follows.target_id = ? AND follows.accepted = 1
                                                            ORDER BY follows.created_at DESC, follows.follower_id DESC
                                                            LIMIT ? OFFSET ?`
	sqlSelectFollowing = `SELECT follows.follower_id, follows.target_id, follows.accepted, follows.created_at, ` + userProjection + ` FROM follows
    														LEFT JOIN users ON users.id = follows.target_id
                                                            WHERE follows.follower_id = ? AND follows.accepted = 1
                                                            ORDER BY follows.created_at DESC, follows.target_id DESC
                                                            LIMIT ? OFFSET ?`
)

// ReadFollowers lists the accepted followers of a user, joined to the
// follower's profile. Pending edges are not listed.
func (db *DB) ReadFollowers(targetId uuid.UUID, limit int, offset int) (error, *[]domain.Follow) {
	return db.listFollows(sqlSelectFollowers, targetId, limit, offset, true)
}

// ReadFollowing lists who a user follows (accepted edges only), joined
// to the target's profile.
func (db *DB) ReadFollowing(userId uuid.UUID, limit int, offset int) (error, *[]domain.Follow) {
	return db.listFollows(sqlSelectFollowing, userId, limit, offset, false)
}

func (db *DB) listFollows(query string, id uuid.UUID, limit int, offset int, fillFollower bool) (error, *[]domain.Follow) {
	rows, err := db.db.Query(query, id, limit, offset)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var follows []domain.Follow

	for rows.Next() {
		var follow domain.Follow
		var userId uuid.NullUUID
		var displayName, username, avatar sql.NullString
		var verified sql.NullBool
		if err := rows.Scan(&follow.FollowerId, &follow.TargetId, &follow.Accepted, &follow.CreatedAt, &userId, &displayName, &username, &avatar, &verified); err != nil {
			return err, &follows
		}
		if fillFollower {
			follow.Follower = scanJoinedUser(userId, displayName, username, avatar, verified)
		} else {
			follow.Target = scanJoinedUser(userId, displayName, username, avatar, verified)
		}
		follows = append(follows, follow)
	}
	if err = rows.Err(); err != nil {
		return err, &follows
	}

	return nil, &follows
}

// CreateFollow inserts the edge (requester, target). A public target
// auto-accepts; a private target leaves the edge pending until the
// acceptance step, which happens elsewhere. A duplicate edge is rejected
// by the composite key.
func (db *DB) CreateFollow(targetId uuid.UUID, ctx domain.Context, targetIsPublic bool) (error, *domain.Follow) {
	user, ok := ctx.(domain.UserContext)
	if !ok {
		return nil, nil
	}

	follow := &domain.Follow{
		FollowerId: user.UserId,
		TargetId:   targetId,
		Accepted:   targetIsPublic,
		CreatedAt:  time.Now(),
	}
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertFollow, follow.FollowerId, follow.TargetId, follow.Accepted, follow.CreatedAt)
		return err
	})
	if err != nil {
		return err, nil
	}
	return nil, follow
}

// DeleteFollow removes the edge whether accepted or pending; true iff
// the edge existed.
func (db *DB) DeleteFollow(followerId uuid.UUID, targetId uuid.UUID) (error, bool) {
	var affected int64
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(sqlDeleteFollow, followerId, targetId)
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
