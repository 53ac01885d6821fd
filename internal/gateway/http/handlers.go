package http

import (
	"io"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/souzadediogo/community-brain/internal/api"
	"github.com/souzadediogo/community-brain/internal/gateway/proxy"
	"github.com/souzadediogo/community-brain/internal/log"
)

type Handler struct {
	Community *proxy.Client
	Assistant *proxy.Client
}

func NewHandler(community, assistant *proxy.Client) *Handler {
	return &Handler{Community: community, Assistant: assistant}
}

// relay forwards the inbound request to the downstream and writes the
// downstream response back verbatim. Transport failures become a generic
// INTEGRATION_ERROR; downstream detail never leaks to the client.
func (h *Handler) relay(c *gin.Context, client *proxy.Client, method, path string, withBody bool) {
	var body io.Reader
	if withBody {
		body = c.Request.Body
	}
	ctx := proxy.WithRequestID(c.Request.Context(), api.RequestIDFrom(c))

	resp, err := client.Do(ctx, method, path, body, BearerToken(c))
	if err != nil {
		log.L().Warn("upstream call failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		api.Fail(c, api.NewError(api.CodeIntegration, "upstream request failed"))
		return
	}
	c.Data(resp.Status, "application/json", resp.Body)
}

func withQuery(c *gin.Context, path string) string {
	if q := c.Request.URL.RawQuery; q != "" {
		return path + "?" + q
	}
	return path
}

func pathID(c *gin.Context) string {
	return url.PathEscape(c.Param("id"))
}

// Community proxy surface.

func (h *Handler) ListThreads(c *gin.Context) {
	h.relay(c, h.Community, "GET", withQuery(c, "/threads"), false)
}

func (h *Handler) GetThread(c *gin.Context) {
	h.relay(c, h.Community, "GET", "/threads/"+pathID(c), false)
}

func (h *Handler) CreateThread(c *gin.Context) {
	h.relay(c, h.Community, "POST", "/threads", true)
}

func (h *Handler) UpdateThread(c *gin.Context) {
	h.relay(c, h.Community, "PATCH", "/threads/"+pathID(c), true)
}

func (h *Handler) DeleteThread(c *gin.Context) {
	h.relay(c, h.Community, "DELETE", "/threads/"+pathID(c), false)
}

func (h *Handler) CreatePost(c *gin.Context) {
	h.relay(c, h.Community, "POST", "/threads/"+pathID(c)+"/posts", true)
}

func (h *Handler) VotePost(c *gin.Context) {
	h.relay(c, h.Community, "POST", "/posts/"+pathID(c)+"/vote", true)
}

func (h *Handler) UpvotePost(c *gin.Context) {
	h.relay(c, h.Community, "POST", "/posts/"+pathID(c)+"/upvote", false)
}

func (h *Handler) AcceptPost(c *gin.Context) {
	h.relay(c, h.Community, "POST", "/posts/"+pathID(c)+"/accept", false)
}

func (h *Handler) DeletePost(c *gin.Context) {
	h.relay(c, h.Community, "DELETE", "/posts/"+pathID(c), false)
}

func (h *Handler) ListUsers(c *gin.Context) {
	h.relay(c, h.Community, "GET", withQuery(c, "/users"), false)
}

func (h *Handler) GetUser(c *gin.Context) {
	h.relay(c, h.Community, "GET", "/users/"+pathID(c), false)
}

// Assistant proxy surface; the assistant is an opaque collaborator.

func (h *Handler) Ask(c *gin.Context) {
	h.relay(c, h.Assistant, "POST", "/ask", true)
}

func (h *Handler) Summarize(c *gin.Context) {
	h.relay(c, h.Assistant, "POST", "/summarize", true)
}

func (h *Handler) Experts(c *gin.Context) {
	h.relay(c, h.Assistant, "GET", withQuery(c, "/experts"), false)
}

func (h *Handler) Similar(c *gin.Context) {
	h.relay(c, h.Assistant, "GET", withQuery(c, "/similar"), false)
}
