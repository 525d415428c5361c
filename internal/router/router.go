package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	adminhandler "github.com/medicore/hms-api/internal/handler/admin"
	appointmenthandler "github.com/medicore/hms-api/internal/handler/appointment"
	authhandler "github.com/medicore/hms-api/internal/handler/auth"
	departmenthandler "github.com/medicore/hms-api/internal/handler/department"
	doctorhandler "github.com/medicore/hms-api/internal/handler/doctor"
	patienthandler "github.com/medicore/hms-api/internal/handler/patient"

	"github.com/medicore/hms-api/internal/handler"
	"github.com/medicore/hms-api/internal/middleware"
	"github.com/medicore/hms-api/pkg/validator"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

type Config struct {
	Logger         zerolog.Logger
	RateLimit      float64
	RateBurst      int
	RequestTimeout time.Duration
	AllowedOrigins []string
}

type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *authhandler.Handler
	Department  *departmenthandler.Handler
	Doctor      *doctorhandler.Handler
	Appointment *appointmenthandler.Handler
	Patient     *patienthandler.Handler
	Admin       *adminhandler.Handler
}

// New assembles the engine: global middleware, probes, metrics and the
// versioned API groups.
func New(cfg Config, h Handlers) *gin.Engine {
	if err := validator.RegisterCustomValidations(); err != nil {
		cfg.Logger.Fatal().Err(err).Msg("failed to register validations")
	}

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.RateLimit > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Limit())
	}
	r.Use(metricsMiddleware())

	h.Health.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	h.Auth.RegisterRoutes(v1)
	h.Department.RegisterRoutes(v1)
	h.Doctor.RegisterRoutes(v1)
	h.Appointment.RegisterRoutes(v1)
	h.Patient.RegisterRoutes(v1)
	h.Admin.RegisterRoutes(v1)

	return r
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// FullPath keeps the label cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		labels := []string{c.Request.Method, path, strconv.Itoa(c.Writer.Status())}
		requestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(labels...).Inc()
	}
}
