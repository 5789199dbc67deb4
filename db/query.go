package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/extopy/extopy-go/domain"
	"github.com/google/uuid"
)

type joinKind string

const (
	joinInner joinKind = "INNER JOIN"
	joinLeft  joinKind = "LEFT JOIN"
)

// joinSpec is one edge of a join graph: a table (optionally aliased), the
// join kind and the ON clause. Placeholder args used inside the ON clause
// travel with the spec so the final argument order matches the order of
// the assembled SQL fragments.
type joinSpec struct {
	table string
	kind  joinKind
	on    string
	args  []any
}

// projection is a named, ordered list of selected expressions. The scan
// function paired with a projection must read columns in the same order.
type projection []string

// listQuery describes one aggregated listing: base table, projection,
// join graph, selection, grouping and ordering. sql() renders it with
// limit/offset pagination appended.
type listQuery struct {
	from    string
	columns projection
	joins   []joinSpec
	where   string
	args    []any
	groupBy string
	orderBy string
}

func (q *listQuery) sql(limit int, offset int) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(q.args)+len(q.joins)+2)

	b.WriteString("SELECT ")
	b.WriteString(strings.Join(q.columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(q.from)
	for _, j := range q.joins {
		b.WriteString(fmt.Sprintf(" %s %s ON %s", j.kind, j.table, j.on))
		args = append(args, j.args...)
	}
	if q.where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(q.where)
		args = append(args, q.args...)
	}
	if q.groupBy != "" {
		b.WriteString(" GROUP BY ")
		b.WriteString(q.groupBy)
	}
	if q.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.orderBy)
	}
	b.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	return b.String(), args
}

// postColumns is the shared projection for every post listing: all post
// columns, the author profile, the three aggregate counts and the
// viewer-relative like flag. The counts are DISTINCT so the independent
// one-to-many joins cannot multiply into each other, and likes_in relies
// on the (post, user) uniqueness of the like edge: the viewer-filtered
// join matches at most one row.
var postColumns = projection{
	"posts.id", "posts.user_id", "posts.replied_to_id", "posts.repost_of_id",
	"posts.body", "posts.published", "posts.edited", "posts.expiration",
	"posts.visibility", "posts.trends_count",
	"users.id", "users.display_name", "users.username", "users.avatar", "users.verified",
	"COUNT(DISTINCT likes.user_id) AS likes_count",
	"COUNT(DISTINCT replies.id) AS replies_count",
	"COUNT(DISTINCT reposts.id) AS reposts_count",
	"COUNT(DISTINCT viewer_likes.user_id) > 0 AS likes_in",
}

// Orderings always tie-break on the post id so pagination stays
// deterministic across equal primary values.
const (
	orderByPublished = "posts.published DESC, posts.id DESC"
	orderByTrends    = "posts.trends_count DESC, posts.id DESC"
)

// postJoins is the base join graph of a post listing. A post without a
// resolvable author is excluded by the inner users join; everything else
// is a left join feeding an aggregate.
func postJoins(viewedBy uuid.UUID) []joinSpec {
	return []joinSpec{
		{table: "users", kind: joinInner, on: "users.id = posts.user_id"},
		{table: "likes", kind: joinLeft, on: "likes.post_id = posts.id"},
		{table: "posts AS replies", kind: joinLeft, on: "replies.replied_to_id = posts.id"},
		{table: "posts AS reposts", kind: joinLeft, on: "reposts.repost_of_id = posts.id"},
		{table: "likes AS viewer_likes", kind: joinLeft,
			on:   "viewer_likes.post_id = posts.id AND viewer_likes.user_id = ?",
			args: []any{viewedBy}},
	}
}

func postListQuery(viewedBy uuid.UUID, where string, args []any, orderBy string) *listQuery {
	return &listQuery{
		from:    "posts",
		columns: postColumns,
		joins:   postJoins(viewedBy),
		where:   where,
		args:    args,
		groupBy: "posts.id",
		orderBy: orderBy,
	}
}

// homeTimelineQuery extends the base graph with the follow edges of the
// post author, selecting the viewer's own posts plus posts from authors
// the viewer follows with an accepted edge.
func homeTimelineQuery(viewedBy uuid.UUID) *listQuery {
	q := postListQuery(viewedBy,
		"posts.user_id = ? OR (follows.follower_id = ? AND follows.accepted = 1)",
		[]any{viewedBy, viewedBy},
		orderByPublished)
	q.joins = append(q.joins, joinSpec{table: "follows", kind: joinLeft, on: "follows.target_id = posts.user_id"})
	return q
}

// scanPost reads one row of the postColumns projection.
func scanPost(row interface{ Scan(dest ...any) error }) (*domain.Post, error) {
	var post domain.Post
	var repliedTo, repostOf uuid.NullUUID
	var edited sql.NullTime
	var avatar sql.NullString

	err := row.Scan(
		&post.Id, &post.AuthorId, &repliedTo, &repostOf,
		&post.Body, &post.Published, &edited, &post.Expiration,
		&post.Visibility, &post.TrendsCount,
		&post.Author.Id, &post.Author.DisplayName, &post.Author.Username,
		&avatar, &post.Author.Verified,
		&post.LikesCount, &post.RepliesCount, &post.RepostsCount, &post.LikesIn,
	)
	if err != nil {
		return nil, err
	}

	if repliedTo.Valid {
		id := repliedTo.UUID
		post.RepliedToId = &id
	}
	if repostOf.Valid {
		id := repostOf.UUID
		post.RepostOfId = &id
	}
	if edited.Valid {
		editedAt := edited.Time
		post.Edited = &editedAt
	}
	post.Author.Avatar = avatar.String

	return &post, nil
}

// userProjection is the public profile slice joined into like and follow
// listings. The joined user may be absent, hence the nullable scan.
const userProjection = "users.id, users.display_name, users.username, users.avatar, users.verified"

func scanJoinedUser(id uuid.NullUUID, displayName sql.NullString, username sql.NullString, avatar sql.NullString, verified sql.NullBool) *domain.User {
	if !id.Valid {
		return nil
	}
	return &domain.User{
		Id:          id.UUID,
		Username:    username.String,
		DisplayName: displayName.String,
		Avatar:      avatar.String,
		Verified:    verified.Bool,
	}
}
