package department

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medicore/hms-api/internal/middleware"
	"github.com/medicore/hms-api/internal/model"
	deptsvc "github.com/medicore/hms-api/internal/service/department"
	apperrors "github.com/medicore/hms-api/pkg/errors"
	"github.com/medicore/hms-api/pkg/httputil"
)

type Handler struct {
	svc  *deptsvc.Service
	auth *middleware.AuthMiddleware
}

func NewHandler(svc *deptsvc.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{svc: svc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/departments")
	g.GET("", middleware.CacheControl(time.Minute), h.List)
	g.GET("/:id", h.Get)

	admin := g.Group("")
	admin.Use(h.auth.Authenticate(), h.auth.RequireRole(model.RoleAdmin))
	admin.POST("", h.Create)
}

func (h *Handler) List(c *gin.Context) {
	departments, err := h.svc.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, departments)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid department ID", err))
		return
	}

	dept, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, dept)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	dept, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, dept)
}
