// Package usecases maps one externally-authorized operation to one
// repository call. No query logic lives here.
package usecases

import (
	"github.com/extopy/extopy-go/db"
	"github.com/extopy/extopy-go/domain"
	"github.com/extopy/extopy-go/metrics"
	"github.com/google/uuid"
)

type PostsUseCases struct {
	DB *db.DB
}

func NewPostsUseCases(database *db.DB) *PostsUseCases {
	return &PostsUseCases{DB: database}
}

func (uc *PostsUseCases) GetHomeTimeline(ctx domain.Context, limit int, offset int) (error, *[]domain.Post) {
	metrics.FeedQueries.WithLabelValues("home").Inc()
	return uc.DB.ReadHomeTimeline(ctx, limit, offset)
}

func (uc *PostsUseCases) GetTrendingTimeline(ctx domain.Context, limit int, offset int) (error, *[]domain.Post) {
	metrics.FeedQueries.WithLabelValues("trending").Inc()
	return uc.DB.ReadTrendingTimeline(ctx, limit, offset)
}

func (uc *PostsUseCases) GetUserPosts(userId uuid.UUID, ctx domain.Context, limit int, offset int) (error, *[]domain.Post) {
	metrics.FeedQueries.WithLabelValues("user").Inc()
	return uc.DB.ReadUserTimeline(userId, ctx, limit, offset)
}

func (uc *PostsUseCases) GetReplies(postId uuid.UUID, ctx domain.Context, limit int, offset int) (error, *[]domain.Post) {
	metrics.FeedQueries.WithLabelValues("replies").Inc()
	return uc.DB.ReadReplies(postId, ctx, limit, offset)
}

func (uc *PostsUseCases) GetPost(id uuid.UUID, ctx domain.Context) (error, *domain.Post) {
	metrics.FeedQueries.WithLabelValues("post").Inc()
	return uc.DB.ReadPostById(id, ctx)
}

func (uc *PostsUseCases) CreatePost(payload domain.PostPayload, ctx domain.Context) (error, *domain.Post) {
	metrics.PostMutations.WithLabelValues("create").Inc()
	return uc.DB.CreatePost(payload, ctx)
}

func (uc *PostsUseCases) UpdatePost(id uuid.UUID, payload domain.PostPayload, ctx domain.Context) (error, bool) {
	metrics.PostMutations.WithLabelValues("update").Inc()
	return uc.DB.UpdatePost(id, payload, ctx)
}

func (uc *PostsUseCases) DeletePost(id uuid.UUID, ctx domain.Context) (error, bool) {
	metrics.PostMutations.WithLabelValues("delete").Inc()
	return uc.DB.DeletePost(id, ctx)
}

func (uc *PostsUseCases) GetLikes(postId uuid.UUID, limit int, offset int) (error, *[]domain.Like) {
	return uc.DB.ReadLikesByPostId(postId, limit, offset)
}

func (uc *PostsUseCases) LikePost(postId uuid.UUID, ctx domain.Context) (error, *domain.Like) {
	metrics.EdgeMutations.WithLabelValues("like", "create").Inc()
	return uc.DB.CreateLike(postId, ctx)
}

func (uc *PostsUseCases) UnlikePost(postId uuid.UUID, userId uuid.UUID) (error, bool) {
	metrics.EdgeMutations.WithLabelValues("like", "delete").Inc()
	return uc.DB.DeleteLike(postId, userId)
}
