package handler

import (
	"clinic-admin/internal/config"
	"clinic-admin/internal/middleware"
	"clinic-admin/internal/models"
	"clinic-admin/internal/repository"
	"clinic-admin/internal/service"
	"clinic-admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, logger zerolog.Logger) *gin.Engine {
	// Initialize repositories
	patientRepo := repository.NewPatientRepo(db)
	doctorRepo := repository.NewDoctorRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// Initialize services
	patientService := service.NewPatientService(patientRepo, auditRepo, logger)
	doctorService := service.NewDoctorService(doctorRepo, auditRepo, logger)
	roomService := service.NewRoomService(roomRepo, auditRepo, logger)
	appointmentService := service.NewAppointmentService(appointmentRepo, patientRepo, doctorRepo, roomRepo, auditRepo, logger)

	metrics := middleware.NewMetrics(prometheus.NewRegistry())

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(metrics.Middleware())
	r.Use(middleware.CORS(cfg))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "clinic-admin",
		})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if cfg.JWT.Enabled() {
		api.Use(middleware.AuthMiddleware(utils.NewTokenManager(cfg.JWT.AccessSecret, cfg.JWT.AccessTokenExpiry)))
	}
	NewRecordHandler(patientService, BindRecord[models.Patient]).Register(api)
	NewRecordHandler(doctorService, BindRecord[models.Doctor]).Register(api)
	NewRecordHandler(roomService, BindRecord[models.Room]).Register(api)
	NewRecordHandler(appointmentService, BindAppointment).Register(api)

	return r
}
