package doctor

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medicore/hms-api/internal/middleware"
	"github.com/medicore/hms-api/internal/model"
	appointmentsvc "github.com/medicore/hms-api/internal/service/appointment"
	availabilitysvc "github.com/medicore/hms-api/internal/service/availability"
	doctorsvc "github.com/medicore/hms-api/internal/service/doctor"
	apperrors "github.com/medicore/hms-api/pkg/errors"
	"github.com/medicore/hms-api/pkg/httputil"
)

type Handler struct {
	svc             *doctorsvc.Service
	availabilitySvc *availabilitysvc.Service
	appointmentSvc  *appointmentsvc.Service
	auth            *middleware.AuthMiddleware
}

func NewHandler(
	svc *doctorsvc.Service,
	availabilitySvc *availabilitysvc.Service,
	appointmentSvc *appointmentsvc.Service,
	auth *middleware.AuthMiddleware,
) *Handler {
	return &Handler{
		svc:             svc,
		availabilitySvc: availabilitySvc,
		appointmentSvc:  appointmentSvc,
		auth:            auth,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/doctors")
	g.Use(h.auth.Authenticate())

	g.GET("", h.Search)
	g.GET("/:id/open-slots", h.OpenSlots)

	admin := g.Group("")
	admin.Use(h.auth.RequireRole(model.RoleAdmin))
	admin.POST("", h.Create)

	doctors := g.Group("")
	doctors.Use(h.auth.RequireRole(model.RoleDoctor))
	doctors.GET("/dashboard", h.Dashboard)
	doctors.POST("/availability", h.DeclareAvailability)
	doctors.GET("/availability", h.ListAvailability)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	user, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}

func (h *Handler) Search(c *gin.Context) {
	filters := &model.DoctorFilters{
		NameQuery: c.Query("q"),
		Page:      parseIntQuery(c, "page", 1),
		PageSize:  parseIntQuery(c, "page_size", 20),
	}
	if raw := c.Query("specialization_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid specialization ID", err))
			return
		}
		filters.SpecializationID = id
	}

	doctors, total, err := h.svc.Search(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithPagination(c, doctors, filters.Page, filters.PageSize, total)
}

func (h *Handler) OpenSlots(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid doctor ID", err))
		return
	}
	date := c.Query("date")
	if date == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("date is required", nil))
		return
	}

	slots, err := h.appointmentSvc.OpenSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}

func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.svc.Dashboard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, dashboard)
}

func (h *Handler) DeclareAvailability(c *gin.Context) {
	var req model.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	slot, err := h.availabilitySvc.Declare(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slot)
}

func (h *Handler) ListAvailability(c *gin.Context) {
	slots, err := h.availabilitySvc.ListForDoctor(
		c.Request.Context(), middleware.UserID(c), c.Query("from"), c.Query("to"),
	)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
