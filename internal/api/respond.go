package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response wrapper; every endpoint, success or
// failure, responds with this shape so clients can branch on `success`.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
	Meta    Meta   `json:"meta"`
}

type Meta struct {
	Timestamp  string      `json:"timestamp"`
	RequestID  string      `json:"requestId,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func NewPagination(total int64, page, limit int) *Pagination {
	p := &Pagination{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		p.TotalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return p
}

func meta(c *gin.Context) Meta {
	return Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: RequestIDFrom(c),
	}
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data, Meta: meta(c)})
}

func SuccessPaginated(c *gin.Context, status int, data any, p *Pagination) {
	m := meta(c)
	m.Pagination = p
	c.JSON(status, Envelope{Success: true, Data: data, Meta: m})
}

func Fail(c *gin.Context, e *Error) {
	c.AbortWithStatusJSON(e.Code.Status(), Envelope{Success: false, Error: e, Meta: meta(c)})
}
