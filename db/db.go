package db

import (
	"context"
	"database/sql"
	"sync"

	"github.com/extopy/extopy-go/domain"
	"github.com/google/uuid"
	"log"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
	"time"
)

// DB is the database struct.
type DB struct {
	db *sql.DB
}

var (
	dbInstance *DB
	dbOnce     sync.Once
)

const (
	//Users
	sqlCreateUsersTable = `CREATE TABLE IF NOT EXISTS users(
                        id uuid NOT NULL PRIMARY KEY,
                        username varchar(100) UNIQUE NOT NULL,
                        display_name varchar(255) NOT NULL DEFAULT '',
                        avatar varchar(500),
                        verified int default 0,
                        private int default 0,
                        created_at timestamp default current_timestamp
                        )`
	sqlInsertUser           = `INSERT INTO users(id, username, display_name, avatar, verified, private, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	sqlSelectUserById       = `SELECT id, username, display_name, avatar, verified, private, created_at FROM users WHERE id = ?`
	sqlSelectUserByUsername = `SELECT id, username, display_name, avatar, verified, private, created_at FROM users WHERE username = ?`

	//Posts
	sqlCreatePostsTable = `CREATE TABLE IF NOT EXISTS posts(
                        id uuid NOT NULL PRIMARY KEY,
                        user_id uuid NOT NULL,
                        replied_to_id uuid,
                        repost_of_id uuid,
                        body varchar(1000),
                        published timestamp default current_timestamp,
                        edited timestamp,
                        expiration timestamp,
                        visibility varchar(50) NOT NULL DEFAULT '',
                        trends_count int default 0
                        )`

	//Likes, one row per (post, user) edge
	sqlCreateLikesTable = `CREATE TABLE IF NOT EXISTS likes(
                        post_id uuid NOT NULL,
                        user_id uuid NOT NULL,
                        created_at timestamp default current_timestamp,
                        PRIMARY KEY(post_id, user_id)
                        )`

	//Follows, one row per (follower, target) edge
	sqlCreateFollowsTable = `CREATE TABLE IF NOT EXISTS follows(
                        follower_id uuid NOT NULL,
                        target_id uuid NOT NULL,
                        accepted int default 0,
                        created_at timestamp default current_timestamp,
                        PRIMARY KEY(follower_id, target_id)
                        )`
)

func (db *DB) CreateUser(username string, displayName string, avatar string, verified bool, private bool) (error, *domain.User) {
	user := &domain.User{
		Id:          uuid.New(),
		Username:    username,
		DisplayName: displayName,
		Avatar:      avatar,
		Verified:    verified,
		Private:     private,
		CreatedAt:   time.Now(),
	}
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertUser, user.Id, user.Username, user.DisplayName, user.Avatar, user.Verified, user.Private, user.CreatedAt)
		return err
	})
	if err != nil {
		return err, nil
	}
	return nil, user
}

func (db *DB) ReadUserById(id uuid.UUID) (error, *domain.User) {
	return db.readUser(sqlSelectUserById, id)
}

func (db *DB) ReadUserByUsername(username string) (error, *domain.User) {
	return db.readUser(sqlSelectUserByUsername, username)
}

func (db *DB) readUser(query string, arg any) (error, *domain.User) {
	row := db.db.QueryRow(query, arg)
	var user domain.User
	var avatar sql.NullString
	err := row.Scan(&user.Id, &user.Username, &user.DisplayName, &avatar, &user.Verified, &user.Private, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return err, nil
	}
	user.Avatar = avatar.String
	return nil, &user
}

func GetDB(path string) *DB {
	dbOnce.Do(func() {
		// Open database connection
		db, err := sql.Open("sqlite", path)
		if err != nil {
			panic(err)
		}

		// Configure connection pool for concurrent access
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)

		// Try to enable WAL2 mode, fall back to WAL if not supported
		var journalMode string
		err = db.QueryRow("PRAGMA journal_mode=WAL2").Scan(&journalMode)
		if err != nil || journalMode == "delete" {
			// WAL2 not supported, try regular WAL
			err = db.QueryRow("PRAGMA journal_mode=WAL").Scan(&journalMode)
			if err != nil {
				log.Printf("Warning: Failed to enable WAL mode: %v", err)
			} else {
				log.Printf("Database journal mode: %s (WAL2 not supported, using WAL)", journalMode)
			}
		} else {
			log.Printf("Database journal mode: %s", journalMode)
		}

		// Connection defaults for the read-heavy feed workload
		db.Exec("PRAGMA synchronous = NORMAL")
		db.Exec("PRAGMA cache_size = -64000")
		db.Exec("PRAGMA temp_store = MEMORY")
		db.Exec("PRAGMA busy_timeout = 5000")
		db.Exec("PRAGMA foreign_keys = ON")
		db.Exec("PRAGMA auto_vacuum = INCREMENTAL")

		log.Printf("Database initialized with connection pooling (max 25 connections)")

		dbInstance = &DB{db: db}

		// Run initial schema setup
		err2 := dbInstance.CreateDB()
		if err2 != nil {
			panic(err2)
		}
	})

	return dbInstance
}

// CreateDB creates the database schema.
func (db *DB) CreateDB() error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		for _, ddl := range []string{sqlCreateUsersTable, sqlCreatePostsTable, sqlCreateLikesTable, sqlCreateFollowsTable} {
			if _, err := tx.Exec(ddl); err != nil {
				return err
			}
		}
		return nil
	})
}

// IsConstraintViolation reports whether err is the store rejecting a
// duplicate edge or a unique column.
func IsConstraintViolation(err error) bool {
	serr, ok := err.(*sqlite.Error)
	return ok && serr.Code()&0xff == sqlitelib.SQLITE_CONSTRAINT
}

// wrapTransaction runs the given function within a transaction.
func (db *DB) wrapTransaction(f func(tx *sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("error starting transaction: %s", err)
		return err
	}
	for {
		err = f(tx)
		if err != nil {
			serr, ok := err.(*sqlite.Error)
			if ok && serr.Code() == sqlitelib.SQLITE_BUSY {
				continue
			}
			tx.Rollback()
			return err
		}
		err = tx.Commit()
		if err != nil {
			log.Printf("error committing transaction: %s", err)
			return err
		}
		break
	}
	return nil
}
