package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/souzadediogo/community-brain/internal/api"
	"github.com/souzadediogo/community-brain/internal/metrics"
)

func NewRouter(h *Handler, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestID())
	r.Use(metrics.Middleware())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := AuthJWT(jwtSecret)

	r.GET("/threads", h.ListThreads)
	r.GET("/threads/:id", h.GetThread)
	r.POST("/threads", auth, h.CreateThread)
	r.PATCH("/threads/:id", h.UpdateThread)
	r.DELETE("/threads/:id", h.DeleteThread)
	r.POST("/threads/:id/posts", auth, h.CreatePost)

	r.POST("/posts/:id/vote", h.VotePost)
	r.POST("/posts/:id/upvote", h.UpvotePost) // legacy path
	r.POST("/posts/:id/accept", h.AcceptPost)
	r.DELETE("/posts/:id", h.DeletePost)

	r.GET("/users", h.ListUsers)
	r.GET("/users/experts", h.FindExperts)
	r.GET("/users/:id", h.GetUser)
	r.POST("/users", h.CreateUser)
	r.PATCH("/users/:id", h.UpdateUser)

	return r
}
