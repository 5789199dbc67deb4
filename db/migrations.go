package db

import (
	"database/sql"
	"log"
)

const (
	sqlCreatePostsIndices = `
		CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id);
		CREATE INDEX IF NOT EXISTS idx_posts_published ON posts(published DESC);
		CREATE INDEX IF NOT EXISTS idx_posts_replied_to_id ON posts(replied_to_id);
		CREATE INDEX IF NOT EXISTS idx_posts_repost_of_id ON posts(repost_of_id);
		CREATE INDEX IF NOT EXISTS idx_posts_trends_count ON posts(trends_count DESC);
	`

	sqlCreateLikesIndices = `
		CREATE INDEX IF NOT EXISTS idx_likes_post_id ON likes(post_id);
		CREATE INDEX IF NOT EXISTS idx_likes_user_id ON likes(user_id);
	`

	sqlCreateFollowsIndices = `
		CREATE INDEX IF NOT EXISTS idx_follows_target_id ON follows(target_id);
		CREATE INDEX IF NOT EXISTS idx_follows_follower_id ON follows(follower_id);
	`

	sqlCreateUsersIndices = `
		CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
	`
)

// RunMigrations executes all database migrations.
func (db *DB) RunMigrations() error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(sqlCreatePostsIndices); err != nil {
			log.Printf("Warning: Failed to create posts indices: %v", err)
		}
		if _, err := tx.Exec(sqlCreateLikesIndices); err != nil {
			log.Printf("Warning: Failed to create likes indices: %v", err)
		}
		if _, err := tx.Exec(sqlCreateFollowsIndices); err != nil {
			log.Printf("Warning: Failed to create follows indices: %v", err)
		}
		if _, err := tx.Exec(sqlCreateUsersIndices); err != nil {
			log.Printf("Warning: Failed to create users indices: %v", err)
		}

		// Extend existing tables (ignore errors if columns already exist)
		db.extendExistingTables(tx)

		return nil
	})
}

func (db *DB) extendExistingTables(tx *sql.Tx) {
	// Columns added after the first schema version
	tx.Exec("ALTER TABLE posts ADD COLUMN trends_count int default 0")
	tx.Exec("ALTER TABLE posts ADD COLUMN visibility varchar(50) NOT NULL DEFAULT ''")
	tx.Exec("ALTER TABLE users ADD COLUMN verified int default 0")
	tx.Exec("ALTER TABLE users ADD COLUMN private int default 0")
}
