package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	authService "github.com/jwalitptl/mailtocall-api/internal/service/auth"
	apperrors "github.com/jwalitptl/mailtocall-api/pkg/errors"
	"github.com/jwalitptl/mailtocall-api/pkg/httputil"
	"github.com/jwalitptl/mailtocall-api/pkg/validator"
)

type Handler struct {
	svc authService.AuthServicer
}

func NewHandler(svc authService.AuthServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/token", h.Token)
	}
}

// Token exchanges the form-encoded credential pair for a bearer token.
func (h *Handler) Token(c *gin.Context) {
	var req model.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(validator.FormatError(err), nil))
		return
	}

	resp, err := h.svc.IssueToken(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
