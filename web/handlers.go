package web

import (
	"log"
	"net/http"
	"strconv"

	"github.com/extopy/extopy-go/db"
	"github.com/extopy/extopy-go/domain"
	"github.com/extopy/extopy-go/usecases"
	"github.com/extopy/extopy-go/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handlers struct {
	Conf  *util.AppConfig
	Posts *usecases.PostsUseCases
	Users *usecases.UsersUseCases
}

func NewHandlers(conf *util.AppConfig, database *db.DB) *Handlers {
	return &Handlers{
		Conf:  conf,
		Posts: usecases.NewPostsUseCases(database),
		Users: usecases.NewUsersUseCases(database),
	}
}

// pagination clamps the limit/offset query params to the configured
// bounds.
func (h *Handlers) pagination(c *gin.Context) (int, int) {
	limit := h.Conf.Conf.PageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > h.Conf.Conf.MaxPageSize {
		limit = h.Conf.Conf.MaxPageSize
	}

	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}

	return limit, offset
}

func pathId(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// listPosts renders one feed listing, mapping an absent result to the
// viewer's authorization state.
func (h *Handlers) listPosts(c *gin.Context, err error, posts *[]domain.Post) {
	if err != nil {
		log.Printf("feed query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if posts == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, *posts)
}

func (h *Handlers) HomeTimeline(c *gin.Context) {
	limit, offset := h.pagination(c)
	err, posts := h.Posts.GetHomeTimeline(Viewer(c), limit, offset)
	h.listPosts(c, err, posts)
}

func (h *Handlers) TrendingTimeline(c *gin.Context) {
	limit, offset := h.pagination(c)
	err, posts := h.Posts.GetTrendingTimeline(Viewer(c), limit, offset)
	h.listPosts(c, err, posts)
}

func (h *Handlers) UserPosts(c *gin.Context) {
	userId, ok := pathId(c, "id")
	if !ok {
		return
	}
	limit, offset := h.pagination(c)
	err, posts := h.Posts.GetUserPosts(userId, Viewer(c), limit, offset)
	h.listPosts(c, err, posts)
}

func (h *Handlers) Replies(c *gin.Context) {
	postId, ok := pathId(c, "id")
	if !ok {
		return
	}
	limit, offset := h.pagination(c)
	err, posts := h.Posts.GetReplies(postId, Viewer(c), limit, offset)
	h.listPosts(c, err, posts)
}

func (h *Handlers) GetPost(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	err, post := h.Posts.GetPost(id, Viewer(c))
	if err != nil {
		log.Printf("post query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if post == nil {
		if _, authed := Viewer(c).(domain.UserContext); !authed {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handlers) CreatePost(c *gin.Context) {
	var payload domain.PostPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	payload.Body = util.NormalizeInput(payload.Body)
	err, post := h.Posts.CreatePost(payload, Viewer(c))
	if err != nil {
		log.Printf("post creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "creation failed"})
		return
	}
	if post == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *Handlers) UpdatePost(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	var payload domain.PostPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	payload.Body = util.NormalizeInput(payload.Body)
	err, updated := h.Posts.UpdatePost(id, payload, Viewer(c))
	h.mutationOutcome(c, err, updated)
}

func (h *Handlers) DeletePost(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	err, deleted := h.Posts.DeletePost(id, Viewer(c))
	h.mutationOutcome(c, err, deleted)
}

func (h *Handlers) mutationOutcome(c *gin.Context, err error, done bool) {
	if err == db.ErrForbidden {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author"})
		return
	}
	if err != nil {
		log.Printf("mutation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed"})
		return
	}
	if !done {
		if _, authed := Viewer(c).(domain.UserContext); !authed {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing matched"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) GetLikes(c *gin.Context) {
	postId, ok := pathId(c, "id")
	if !ok {
		return
	}
	limit, offset := h.pagination(c)
	err, likes := h.Posts.GetLikes(postId, limit, offset)
	if err != nil {
		log.Printf("likes query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, *likes)
}

func (h *Handlers) LikePost(c *gin.Context) {
	postId, ok := pathId(c, "id")
	if !ok {
		return
	}
	err, like := h.Posts.LikePost(postId, Viewer(c))
	if db.IsConstraintViolation(err) {
		c.JSON(http.StatusConflict, gin.H{"error": "already liked"})
		return
	}
	if err != nil {
		log.Printf("like creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "creation failed"})
		return
	}
	if like == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusCreated, like)
}

func (h *Handlers) UnlikePost(c *gin.Context) {
	postId, ok := pathId(c, "id")
	if !ok {
		return
	}
	user, authed := Viewer(c).(domain.UserContext)
	if !authed {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	err, deleted := h.Posts.UnlikePost(postId, user.UserId)
	h.mutationOutcome(c, err, deleted)
}

type createUserPayload struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Verified    bool   `json:"verified"`
	Private     bool   `json:"private"`
}

func (h *Handlers) CreateUser(c *gin.Context) {
	var payload createUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	err, user := h.Users.DB.CreateUser(payload.Username, payload.DisplayName, payload.Avatar, payload.Verified, payload.Private)
	if db.IsConstraintViolation(err) {
		c.JSON(http.StatusConflict, gin.H{"error": "username taken"})
		return
	}
	if err != nil {
		log.Printf("user creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "creation failed"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handlers) GetUser(c *gin.Context) {
	userId, ok := pathId(c, "id")
	if !ok {
		return
	}
	err, user := h.Users.GetUser(userId)
	if err != nil {
		log.Printf("user query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) Followers(c *gin.Context) {
	targetId, ok := pathId(c, "id")
	if !ok {
		return
	}
	limit, offset := h.pagination(c)
	err, follows := h.Users.GetFollowers(targetId, limit, offset)
	if err != nil {
		log.Printf("followers query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, *follows)
}

func (h *Handlers) Following(c *gin.Context) {
	userId, ok := pathId(c, "id")
	if !ok {
		return
	}
	limit, offset := h.pagination(c)
	err, follows := h.Users.GetFollowing(userId, limit, offset)
	if err != nil {
		log.Printf("following query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, *follows)
}

func (h *Handlers) Follow(c *gin.Context) {
	targetId, ok := pathId(c, "id")
	if !ok {
		return
	}
	err, target := h.Users.GetUser(targetId)
	if err != nil {
		log.Printf("user query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	err, follow := h.Users.FollowUser(targetId, Viewer(c), !target.Private)
	if db.IsConstraintViolation(err) {
		c.JSON(http.StatusConflict, gin.H{"error": "already following"})
		return
	}
	if err != nil {
		log.Printf("follow creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "creation failed"})
		return
	}
	if follow == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusCreated, follow)
}

func (h *Handlers) Unfollow(c *gin.Context) {
	targetId, ok := pathId(c, "id")
	if !ok {
		return
	}
	user, authed := Viewer(c).(domain.UserContext)
	if !authed {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	err, deleted := h.Users.UnfollowUser(user.UserId, targetId)
	h.mutationOutcome(c, err, deleted)
}
