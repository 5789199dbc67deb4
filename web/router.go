package web

import (
	"fmt"
	"log"

	"github.com/extopy/extopy-go/db"
	"github.com/extopy/extopy-go/metrics"
	"github.com/extopy/extopy-go/util"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"golang.org/x/time/rate"
)

func Router(conf *util.AppConfig, database *db.DB) error {
	log.Printf("Starting API server on %s:%d", conf.Conf.Host, conf.Conf.HttpPort)
	g := NewRouter(conf, database)
	return g.Run(fmt.Sprintf("%s:%d", conf.Conf.Host, conf.Conf.HttpPort))
}

// NewRouter builds the engine without binding it, so tests can drive it
// through httptest.
func NewRouter(conf *util.AppConfig, database *db.DB) *gin.Engine {
	g := gin.Default()
	g.Use(gzip.Gzip(gzip.DefaultCompression))

	// Global rate limiter: 10 requests per second per IP, burst of 20
	globalLimiter := NewRateLimiter(rate.Limit(10), 20)
	g.Use(RateLimitMiddleware(globalLimiter))
	g.Use(MetricsMiddleware())
	g.Use(ViewerMiddleware(database))

	h := NewHandlers(conf, database)

	maxBodySize := MaxBytesMiddleware(64 * 1024)

	api := g.Group("/api")
	{
		api.GET("/timelines/home", h.HomeTimeline)
		api.GET("/timelines/trending", h.TrendingTimeline)

		api.POST("/posts", maxBodySize, h.CreatePost)
		api.GET("/posts/:id", h.GetPost)
		api.PUT("/posts/:id", maxBodySize, h.UpdatePost)
		api.DELETE("/posts/:id", h.DeletePost)
		api.GET("/posts/:id/replies", h.Replies)
		api.GET("/posts/:id/likes", h.GetLikes)
		api.POST("/posts/:id/likes", h.LikePost)
		api.DELETE("/posts/:id/likes", h.UnlikePost)

		api.POST("/users", maxBodySize, h.CreateUser)
		api.GET("/users/:id", h.GetUser)
		api.GET("/users/:id/posts", h.UserPosts)
		api.GET("/users/:id/followers", h.Followers)
		api.GET("/users/:id/following", h.Following)
		api.POST("/users/:id/follow", h.Follow)
		api.DELETE("/users/:id/follow", h.Unfollow)
	}

	// RSS rendition of a user timeline
	g.GET("/feed", func(c *gin.Context) {
		c.Header("Content-Type", "application/xml; charset=utf-8")

		username := c.Query("username")
		rss, err := GetRSS(conf, database, username)
		if err != nil {
			c.Render(404, render.String{Format: ""})
		} else {
			c.Render(200, render.String{Format: rss})
		}
	})

	g.GET("/metrics", gin.WrapH(metrics.Handler()))

	return g
}
