package entity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	entityService "github.com/jwalitptl/mailtocall-api/internal/service/entity"
	apperrors "github.com/jwalitptl/mailtocall-api/pkg/errors"
	"github.com/jwalitptl/mailtocall-api/pkg/httputil"
	"github.com/jwalitptl/mailtocall-api/pkg/validator"
)

// IDParser converts the :id path segment into the entity key.
type IDParser[K comparable] func(string) (K, error)

func StringID(s string) (string, error) {
	return s, nil
}

func Int64ID(s string) (int64, error) {
	return ParseInt64("id", s)
}

// Handler serves the CRUD, list and search routes every entity shares.
type Handler[T any, K comparable, C any, U any, F any] struct {
	service entityService.Servicer[T, K, C, U, F]
	parseID IDParser[K]
}

func NewHandler[T any, K comparable, C any, U any, F any](
	service entityService.Servicer[T, K, C, U, F],
	parseID IDParser[K],
) *Handler[T, K, C, U, F] {
	return &Handler[T, K, C, U, F]{
		service: service,
		parseID: parseID,
	}
}

// RegisterRoutes mounts the shared routes on an entity's group. Extra routes
// may be registered on the same group before or after.
func (h *Handler[T, K, C, U, F]) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler[T, K, C, U, F]) Create(c *gin.Context) {
	var req C
	if !BindJSON(c, &req) {
		return
	}

	record, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler[T, K, C, U, F]) List(c *gin.Context) {
	var page model.PageRequest
	if !BindQuery(c, &page) {
		return
	}

	result, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler[T, K, C, U, F]) Search(c *gin.Context) {
	var (
		filter F
		page   model.PageRequest
	)
	if !BindQuery(c, &filter) || !BindQuery(c, &page) {
		return
	}

	result, err := h.service.Search(c.Request.Context(), &filter, page)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler[T, K, C, U, F]) Get(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}

	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler[T, K, C, U, F]) Update(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}

	var req U
	if !BindJSON(c, &req) {
		return
	}

	record, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler[T, K, C, U, F]) Delete(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler[T, K, C, U, F]) id(c *gin.Context) (K, bool) {
	id, err := h.parseID(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return id, false
	}
	return id, true
}

// BindJSON binds the request body, answering 400 on failure.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(validator.FormatError(err), nil))
		return false
	}
	return true
}

// BindQuery binds query parameters, answering 400 on failure.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(validator.FormatError(err), nil))
		return false
	}
	return true
}

// ParseInt64 parses a numeric path segment.
func ParseInt64(name, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperrors.Validation(name+" must be an integer", nil)
	}
	return n, nil
}
