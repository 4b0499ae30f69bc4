package systemstats

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/mailtocall-api/internal/handler/entity"
	"github.com/jwalitptl/mailtocall-api/internal/model"
	statsService "github.com/jwalitptl/mailtocall-api/internal/service/systemstats"
	"github.com/jwalitptl/mailtocall-api/pkg/httputil"
)

type Handler struct {
	*entity.Handler[model.SystemStats, int64, model.CreateSystemStatsRequest, model.UpdateSystemStatsRequest, model.SystemStatsFilter]
	service statsService.SystemStatsServicer
}

func NewHandler(service statsService.SystemStatsServicer) *Handler {
	return &Handler{
		Handler: entity.NewHandler[model.SystemStats, int64, model.CreateSystemStatsRequest, model.UpdateSystemStatsRequest, model.SystemStatsFilter](service, entity.Int64ID),
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/system-stats")
	h.Handler.RegisterRoutes(stats)
	stats.GET("/by-metric/:metric_name", h.ListByMetric)
	stats.GET("/latest/:metric_name", h.LatestByMetric)
	stats.DELETE("/cleanup/:days_to_keep", h.Purge)

	counts := stats.Group("/counts")
	{
		counts.GET("/active-triggers", h.count(model.CountActiveTriggers))
		counts.GET("/contacts", h.count(model.CountContacts))
		counts.GET("/contact-groups", h.count(model.CountContactGroups))
		counts.GET("/daily-calls", h.count(model.CountDailyCalls))
	}
}

func (h *Handler) ListByMetric(c *gin.Context) {
	var page model.PageRequest
	if !entity.BindQuery(c, &page) {
		return
	}

	result, err := h.service.ListByMetric(c.Request.Context(), c.Param("metric_name"), page)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) LatestByMetric(c *gin.Context) {
	stat, err := h.service.LatestByMetric(c.Request.Context(), c.Param("metric_name"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stat)
}

func (h *Handler) Purge(c *gin.Context) {
	days, err := entity.ParseInt64("days_to_keep", c.Param("days_to_keep"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	deleted, err := h.service.Purge(c.Request.Context(), int(days))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Deleted %d old system stats records", deleted)})
}

func (h *Handler) count(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := h.service.DashboardCount(c.Request.Context(), name)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{name: n})
	}
}
