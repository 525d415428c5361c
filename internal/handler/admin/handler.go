package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/medicore/hms-api/internal/middleware"
	"github.com/medicore/hms-api/internal/model"
	statssvc "github.com/medicore/hms-api/internal/service/stats"
	"github.com/medicore/hms-api/pkg/httputil"
)

type Handler struct {
	statsSvc *statssvc.Service
	auth     *middleware.AuthMiddleware
}

func NewHandler(statsSvc *statssvc.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{statsSvc: statsSvc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/admin")
	g.Use(h.auth.Authenticate(), h.auth.RequireRole(model.RoleAdmin))
	g.GET("/stats", h.Stats)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.statsSvc.Get(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, stats)
}
