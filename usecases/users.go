package usecases

import (
	"github.com/extopy/extopy-go/db"
	"github.com/extopy/extopy-go/domain"
	"github.com/extopy/extopy-go/metrics"
	"github.com/google/uuid"
)

type UsersUseCases struct {
	DB *db.DB
}

func NewUsersUseCases(database *db.DB) *UsersUseCases {
	return &UsersUseCases{DB: database}
}

func (uc *UsersUseCases) GetUser(id uuid.UUID) (error, *domain.User) {
	return uc.DB.ReadUserById(id)
}

func (uc *UsersUseCases) GetUserByUsername(username string) (error, *domain.User) {
	return uc.DB.ReadUserByUsername(username)
}

func (uc *UsersUseCases) GetFollowers(targetId uuid.UUID, limit int, offset int) (error, *[]domain.Follow) {
	return uc.DB.ReadFollowers(targetId, limit, offset)
}

func (uc *UsersUseCases) GetFollowing(userId uuid.UUID, limit int, offset int) (error, *[]domain.Follow) {
	return uc.DB.ReadFollowing(userId, limit, offset)
}

func (uc *UsersUseCases) FollowUser(targetId uuid.UUID, ctx domain.Context, targetIsPublic bool) (error, *domain.Follow) {
	metrics.EdgeMutations.WithLabelValues("follow", "create").Inc()
	return uc.DB.CreateFollow(targetId, ctx, targetIsPublic)
}

func (uc *UsersUseCases) UnfollowUser(followerId uuid.UUID, targetId uuid.UUID) (error, bool) {
	metrics.EdgeMutations.WithLabelValues("follow", "delete").Inc()
	return uc.DB.DeleteFollow(followerId, targetId)
}
