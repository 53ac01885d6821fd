package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/souzadediogo/community-brain/internal/api"
	"github.com/souzadediogo/community-brain/internal/community/domain"
	"github.com/souzadediogo/community-brain/internal/community/queue"
	"github.com/souzadediogo/community-brain/internal/community/repo"
	"github.com/souzadediogo/community-brain/internal/log"
)

type Handler struct {
	Store *repo.Store
	Pub   queue.Publisher
}

func NewHandler(store *repo.Store, pub queue.Publisher) *Handler {
	return &Handler{Store: store, Pub: pub}
}

// storeErr maps repository errors onto the envelope error kinds.
func storeErr(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		api.Fail(c, api.NewError(api.CodeNotFound, notFoundMsg))
	case errors.Is(err, repo.ErrEmailExists):
		api.Fail(c, api.NewError(api.CodeConflict, "email already exists"))
	default:
		log.L().Error("store error", zap.Error(err), zap.String("path", c.FullPath()))
		api.Fail(c, api.NewError(api.CodeInternal, "unexpected error"))
	}
}

// parseID treats a malformed object id the same as an absent entity.
func parseID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		api.Fail(c, api.NewError(api.CodeNotFound, "not found"))
		return primitive.NilObjectID, false
	}
	return oid, true
}

// publishThread enqueues a re-index job; failures are logged and
// swallowed so indexing can never fail the write path.
func (h *Handler) publishThread(c *gin.Context, threadID string) {
	if err := h.Pub.PublishThread(c.Request.Context(), threadID, api.RequestIDFrom(c)); err != nil {
		log.L().Warn("thread indexing publish failed", zap.String("thread_id", threadID), zap.Error(err))
	}
}

func (h *Handler) publishPost(c *gin.Context, postID string) {
	if err := h.Pub.PublishPost(c.Request.Context(), postID, api.RequestIDFrom(c)); err != nil {
		log.L().Warn("post indexing publish failed", zap.String("post_id", postID), zap.Error(err))
	}
}

// ListThreads godoc
// @Summary List threads
// @Tags threads
// @Produce json
// @Param tags query string false "comma-separated, any overlap matches"
// @Param status query string false "open|answered|closed"
// @Param limit query int false "page size, capped at 50"
// @Param page query int false "1-based page, wins over offset"
// @Param offset query int false "absolute offset"
// @Success 200 {object} api.Envelope
// @Router /threads [get]
func (h *Handler) ListThreads(c *gin.Context) {
	limit := atoi(c.Query("limit"), 10)
	offset := atoi(c.Query("offset"), 0)
	page := atoi(c.Query("page"), 0)
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	if page > 0 {
		offset = (page - 1) * limit
	}
	if offset < 0 {
		offset = 0
	}
	if page <= 0 {
		page = offset/limit + 1
	}

	f := repo.ThreadFilter{Limit: limit, Skip: offset}
	if raw := strings.TrimSpace(c.Query("tags")); raw != "" {
		f.Tags = strings.Split(raw, ",")
	}
	if st := domain.ThreadStatus(c.Query("status")); st != "" {
		if !domain.ValidStatus(st) {
			api.Fail(c, api.NewError(api.CodeValidation, "status must be one of: open answered closed"))
			return
		}
		f.Status = st
	}

	threads, total, err := h.Store.ListThreads(c.Request.Context(), f)
	if err != nil {
		storeErr(c, err, "thread not found")
		return
	}
	api.SuccessPaginated(c, http.StatusOK, threads, api.NewPagination(total, page, limit))
}

type threadResponse struct {
	domain.Thread
	Posts []domain.Post `json:"posts"`
}

// GetThread godoc
// @Summary Fetch one thread with its posts
// @Description Every call counts a view, including repeated ones.
// @Tags threads
// @Produce json
// @Param id path string true "thread id"
// @Success 200 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Router /threads/{id} [get]
func (h *Handler) GetThread(c *gin.Context) {
	oid, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.Store.GetThread(c.Request.Context(), oid)
	if err != nil {
		storeErr(c, err, "thread not found")
		return
	}
	posts, err := h.Store.ListPosts(c.Request.Context(), oid)
	if err != nil {
		storeErr(c, err, "thread not found")
		return
	}
	t.PostCount = int64(len(posts))
	api.Success(c, http.StatusOK, threadResponse{Thread: *t, Posts: posts})
}

type createThreadReq struct {
	Title   string   `json:"title" binding:"required,min=10,max=300"`
	Content string   `json:"content" binding:"required,min=20,max=10000"`
	Tags    []string `json:"tags" binding:"required,min=1,max=5,dive,required"`
}

// CreateThread godoc
// @Summary Create a thread
// @Tags threads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body createThreadReq true "title, content, tags"
// @Success 201 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Router /threads [post]
func (h *Handler) CreateThread(c *gin.Context) {
	var in createThreadReq
	if err := c.ShouldBindJSON(&in); err != nil {
		api.Fail(c, api.BindError(err))
		return
	}

	t := &domain.Thread{
		AuthorID: c.GetString(ctxUserID),
		Title:    strings.TrimSpace(in.Title),
		Body:     in.Content,
		Tags:     in.Tags,
		Status:   domain.StatusOpen,
	}
	if err := h.Store.CreateThread(c.Request.Context(), t); err != nil {
		storeErr(c, err, "thread not found")
		return
	}
	h.publishThread(c, t.ID.Hex())

	api.Success(c, http.StatusCreated, t)
}

type updateThreadReq struct {
	Title   *string  `json:"title" binding:"omitempty,min=10,max=300"`
	Content *string  `json:"content" binding:"omitempty,min=20,max=10000"`
	Tags    []string `json:"tags" binding:"omitempty,min=1,max=5,dive,required"`
	Status  *string  `json:"status" binding:"omitempty,oneof=open answered closed"`
}

// UpdateThread godoc
// @Summary Partially update a thread
// @Description Any change triggers a full re-index of the thread.
// @Tags threads
// @Accept json
// @Produce json
// @Param id path string true "thread id"
// @Param payload body updateThreadReq true "fields to change"
// @Success 200 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Router /threads/{id} [patch]
func (h *Handler) UpdateThread(c *gin.Context) {
	oid, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in updateThreadReq
	if err := c.ShouldBindJSON(&in); err != nil {
		api.Fail(c, api.BindError(err))
		return
	}

	patch := repo.ThreadPatch{Title: in.Title, Body: in.Content, Tags: in.Tags}
	if in.Status != nil {
		st := domain.ThreadStatus(*in.Status)
		patch.Status = &st
	}
	if patch.Empty() {
		api.Fail(c, api.NewError(api.CodeValidation, "at least one field must be provided"))
		return
	}

	t, err := h.Store.UpdateThread(c.Request.Context(), oid, patch)
	if err != nil {
		storeErr(c, err, "thread not found")
		return
	}
	h.publishThread(c, t.ID.Hex())

	api.Success(c, http.StatusOK, t)
}

// DeleteThread godoc
// @Summary Delete a thread and all its posts
// @Tags threads
// @Param id path string true "thread id"
// @Success 200 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Router /threads/{id} [delete]
func (h *Handler) DeleteThread(c *gin.Context) {
	oid, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteThread(c.Request.Context(), oid); err != nil {
		storeErr(c, err, "thread not found")
		return
	}
	api.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
