package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/medicore/hms-api/internal/middleware"
	"github.com/medicore/hms-api/internal/model"
	appointmentsvc "github.com/medicore/hms-api/internal/service/appointment"
	"github.com/medicore/hms-api/pkg/httputil"
)

type Handler struct {
	appointmentSvc *appointmentsvc.Service
	auth           *middleware.AuthMiddleware
}

func NewHandler(appointmentSvc *appointmentsvc.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{appointmentSvc: appointmentSvc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/patients")
	g.Use(h.auth.Authenticate(), h.auth.RequireRole(model.RolePatient))
	g.GET("/dashboard", h.Dashboard)
}

// Dashboard returns the patient's upcoming bookings and full visit
// history with recorded treatments.
func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.appointmentSvc.PatientDashboard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, dashboard)
}
