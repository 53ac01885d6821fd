package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/souzadediogo/community-brain/internal/api"
	"github.com/souzadediogo/community-brain/internal/metrics"
)

func NewRouter(h *Handler, jwtSecret string, rdb *redis.Client, rlPerMin int) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestID())
	r.Use(metrics.Middleware())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := Authenticate(jwtSecret)
	optional := OptionalAuth(jwtSecret)
	rl := RateLimit(rdb, rlPerMin)

	grp := r.Group("/api")
	{
		grp.GET("/threads", h.ListThreads)
		grp.GET("/threads/:id", h.GetThread)
		grp.POST("/threads", rl, auth, h.CreateThread)
		grp.PATCH("/threads/:id", rl, auth, h.UpdateThread)
		grp.DELETE("/threads/:id", rl, auth, h.DeleteThread)
		grp.POST("/threads/:id/posts", rl, auth, h.CreatePost)

		grp.POST("/posts/:id/vote", rl, h.VotePost)
		grp.POST("/posts/:id/upvote", rl, h.UpvotePost)
		grp.POST("/posts/:id/accept", rl, auth, h.AcceptPost)
		grp.DELETE("/posts/:id", rl, auth, h.DeletePost)

		grp.GET("/users", h.ListUsers)
		grp.GET("/users/:id", h.GetUser)

		assistant := grp.Group("/assistant", optional)
		{
			assistant.POST("/ask", h.Ask)
			assistant.POST("/summarize", h.Summarize)
			assistant.GET("/experts", h.Experts)
			assistant.GET("/similar", h.Similar)
		}
	}

	return r
}
