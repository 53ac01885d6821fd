package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souzadediogo/community-brain/internal/api"
	"github.com/souzadediogo/community-brain/internal/community/domain"
)

type createPostReq struct {
	Content string `json:"content" binding:"required,min=10,max=10000"`
}

// CreatePost godoc
// @Summary Reply to a thread
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "thread id"
// @Param payload body createPostReq true "content"
// @Success 201 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Router /threads/{id}/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	oid, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in createPostReq
	if err := c.ShouldBindJSON(&in); err != nil {
		api.Fail(c, api.BindError(err))
		return
	}

	// the parent must exist; FindThread doesn't count a view
	if _, err := h.Store.FindThread(c.Request.Context(), oid); err != nil {
		storeErr(c, err, "thread not found")
		return
	}

	p := &domain.Post{
		ThreadID: oid,
		AuthorID: c.GetString(ctxUserID),
		Content:  in.Content,
	}
	if err := h.Store.CreatePost(c.Request.Context(), p); err != nil {
		storeErr(c, err, "thread not found")
		return
	}
	h.publishPost(c, p.ID.Hex())

	api.Success(c, http.StatusCreated, p)
}

type votePostReq struct {
	Vote int `json:"vote" binding:"required,oneof=1 -1"`
}

// VotePost godoc
// @Summary Vote on a post
// @Description Accepts 1 or -1 but both increment the upvote counter, and
// the same caller may vote repeatedly. Kept bug-compatible with the
// previous deployment until real vote tracking ships.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "post id"
// @Param payload body votePostReq true "vote: 1 or -1"
// @Success 200 {object} api.Envelope
// @Router /posts/{id}/vote [post]
func (h *Handler) VotePost(c *gin.Context) {
	oid, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in votePostReq
	if err := c.ShouldBindJSON(&in); err != nil {
		api.Fail(c, api.BindError(err))
		return
	}

	p, err := h.Store.UpvotePost(c.Request.Context(), oid)
	if err != nil {
		storeErr(c, err, "post not found")
		return
	}
	api.Success(c, http.StatusOK, p)
}

// UpvotePost handles the legacy upvote path.
func (h *Handler) UpvotePost(c *gin.Context) {
	oid, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.Store.UpvotePost(c.Request.Context(), oid)
	if err != nil {
		storeErr(c, err, "post not found")
		return
	}
	api.Success(c, http.StatusOK, p)
}

// AcceptPost godoc
// @Summary Mark a post as the accepted answer
// @Description Clears any previously accepted answer of the same thread
// atomically and moves the thread to answered.
// @Tags posts
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Router /posts/{id}/accept [post]
func (h *Handler) AcceptPost(c *gin.Context) {
	oid, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.Store.AcceptAnswer(c.Request.Context(), oid)
	if err != nil {
		storeErr(c, err, "post not found")
		return
	}
	api.Success(c, http.StatusOK, p)
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Param id path string true "post id"
// @Success 200 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Router /posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	oid, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeletePost(c.Request.Context(), oid); err != nil {
		storeErr(c, err, "post not found")
		return
	}
	api.Success(c, http.StatusOK, gin.H{"deleted": true})
}
