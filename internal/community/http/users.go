package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/souzadediogo/community-brain/internal/api"
	"github.com/souzadediogo/community-brain/internal/community/domain"
	"github.com/souzadediogo/community-brain/internal/community/repo"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		storeErr(c, err, "user not found")
		return
	}
	api.Success(c, http.StatusOK, users)
}

// FindExperts godoc
// @Summary Find users whose expertise overlaps the given tags
// @Tags users
// @Produce json
// @Param tags query string false "comma-separated tags"
// @Success 200 {object} api.Envelope
// @Router /users/experts [get]
func (h *Handler) FindExperts(c *gin.Context) {
	var tags []string
	if raw := strings.TrimSpace(c.Query("tags")); raw != "" {
		tags = strings.Split(raw, ",")
	}
	users, err := h.Store.FindExperts(c.Request.Context(), tags)
	if err != nil {
		storeErr(c, err, "user not found")
		return
	}
	api.Success(c, http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	oid, ok := parseID(c, "id")
	if !ok {
		return
	}
	u, err := h.Store.FindUser(c.Request.Context(), oid)
	if err != nil {
		storeErr(c, err, "user not found")
		return
	}
	api.Success(c, http.StatusOK, u)
}

type createUserReq struct {
	Name          string   `json:"name" binding:"required,min=1,max=100"`
	Email         string   `json:"email" binding:"required,email"`
	Title         string   `json:"title" binding:"omitempty,max=200"`
	Org           string   `json:"org" binding:"omitempty,max=200"`
	ExpertiseTags []string `json:"expertiseTags" binding:"omitempty,max=10,dive,required"`
}

// CreateUser godoc
// @Summary Create a user profile
// @Tags users
// @Accept json
// @Produce json
// @Param payload body createUserReq true "profile"
// @Success 201 {object} api.Envelope
// @Failure 409 {object} api.Envelope
// @Router /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var in createUserReq
	if err := c.ShouldBindJSON(&in); err != nil {
		api.Fail(c, api.BindError(err))
		return
	}

	u := &domain.User{
		Name:          strings.TrimSpace(in.Name),
		Email:         in.Email,
		Title:         in.Title,
		Org:           in.Org,
		ExpertiseTags: in.ExpertiseTags,
	}
	if u.ExpertiseTags == nil {
		u.ExpertiseTags = []string{}
	}
	if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
		storeErr(c, err, "user not found")
		return
	}
	api.Success(c, http.StatusCreated, u)
}

type updateUserReq struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Title         *string  `json:"title" binding:"omitempty,max=200"`
	Org           *string  `json:"org" binding:"omitempty,max=200"`
	ExpertiseTags []string `json:"expertiseTags" binding:"omitempty,max=10,dive,required"`
}

// UpdateUser patches mutable profile fields; identity (id, email) is
// immutable.
func (h *Handler) UpdateUser(c *gin.Context) {
	oid, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in updateUserReq
	if err := c.ShouldBindJSON(&in); err != nil {
		api.Fail(c, api.BindError(err))
		return
	}

	u, err := h.Store.UpdateUser(c.Request.Context(), oid, repo.UserPatch{
		Name:          in.Name,
		Title:         in.Title,
		Org:           in.Org,
		ExpertiseTags: in.ExpertiseTags,
	})
	if err != nil {
		storeErr(c, err, "user not found")
		return
	}
	api.Success(c, http.StatusOK, u)
}
