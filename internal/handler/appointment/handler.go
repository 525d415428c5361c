package appointment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medicore/hms-api/internal/middleware"
	"github.com/medicore/hms-api/internal/model"
	appointmentsvc "github.com/medicore/hms-api/internal/service/appointment"
	treatmentsvc "github.com/medicore/hms-api/internal/service/treatment"
	apperrors "github.com/medicore/hms-api/pkg/errors"
	"github.com/medicore/hms-api/pkg/httputil"
)

type Handler struct {
	svc          *appointmentsvc.Service
	treatmentSvc *treatmentsvc.Service
	auth         *middleware.AuthMiddleware
}

func NewHandler(
	svc *appointmentsvc.Service,
	treatmentSvc *treatmentsvc.Service,
	auth *middleware.AuthMiddleware,
) *Handler {
	return &Handler{svc: svc, treatmentSvc: treatmentSvc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/appointments")
	g.Use(h.auth.Authenticate())

	g.GET("/:id", h.Get)
	g.POST("/:id/cancel", h.Cancel)
	g.GET("/:id/treatments", h.ListTreatments)

	patients := g.Group("")
	patients.Use(h.auth.RequireRole(model.RolePatient))
	patients.POST("", h.Book)

	doctors := g.Group("")
	doctors.Use(h.auth.RequireRole(model.RoleDoctor))
	doctors.POST("/:id/complete", h.Complete)
	doctors.POST("/:id/treatments", h.RecordTreatment)
}

func (h *Handler) Book(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	apt, err := h.svc.Book(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	apt, err := h.svc.Get(c.Request.Context(), id, middleware.UserID(c), middleware.Role(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Cancel(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "appointment cancelled"})
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Complete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "appointment completed"})
}

func (h *Handler) RecordTreatment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.RecordTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	treatment, err := h.treatmentSvc.Record(c.Request.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, treatment)
}

func (h *Handler) ListTreatments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	treatments, err := h.treatmentSvc.ListForAppointment(
		c.Request.Context(), id, middleware.UserID(c), middleware.Role(c),
	)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, treatments)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return uuid.Nil, false
	}
	return id, true
}
