package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CocoPetControl/clinic-api/internal/audit"
	"github.com/CocoPetControl/clinic-api/internal/cache"
	"github.com/CocoPetControl/clinic-api/internal/config"
	"github.com/CocoPetControl/clinic-api/internal/email"
	"github.com/CocoPetControl/clinic-api/internal/handlers"
	infraRepo "github.com/CocoPetControl/clinic-api/internal/infra/repository"
	"github.com/CocoPetControl/clinic-api/internal/middleware"
	"github.com/CocoPetControl/clinic-api/internal/storage"
	ucAppointment "github.com/CocoPetControl/clinic-api/internal/usecase/appointment"
	ucInvoice "github.com/CocoPetControl/clinic-api/internal/usecase/invoice"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	invoiceRepo := infraRepo.NewInvoiceGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	mailer := email.NewClient(cfg.ResendAPIKey, cfg.ResendFromEmail)

	statsCache := cache.New(cfg.RedisAddr, cfg.RedisPassword)

	uploader, err := storage.NewUploader(cfg)
	if err != nil {
		// sem storage o restante da API continua de pé
		uploader = nil
	}

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	editAppointmentUC := ucAppointment.NewEditAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsByRangeUC := ucAppointment.NewListAppointmentsByRange(
		appointmentRepo,
	)

	// ======================================================
	// 🧠 USE CASES — INVOICES
	// ======================================================
	saveInvoiceUC := ucInvoice.NewSaveInvoiceWithItems(
		invoiceRepo,
		auditDispatcher,
	)

	sendInvoiceUC := ucInvoice.NewSendInvoice(
		invoiceRepo,
		mailer,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clinicHandler := handlers.NewClinicHandler(db)

	ownerHandler := handlers.NewOwnerHandler(db, auditDispatcher)
	petHandler := handlers.NewPetHandler(db, auditDispatcher)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(db, uploader, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		editAppointmentUC,
		rescheduleAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsByRangeUC,
	)
	appointmentRecordsHandler := handlers.NewAppointmentRecordsHandler(db, auditDispatcher)

	invoiceHandler := handlers.NewInvoiceHandler(db, auditDispatcher, saveInvoiceUC, sendInvoiceUC)

	dashboardHandler := handlers.NewDashboardHandler(db, statsCache)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/clinic", clinicHandler.GetMeClinic)
			secured.PATCH("/me/clinic", clinicHandler.UpdateMeClinic)
			secured.GET("/me/vets", clinicHandler.ListVets)

			// ------------------------------
			// OWNERS
			// ------------------------------
			secured.GET("/owners", ownerHandler.List)
			secured.POST("/owners", ownerHandler.Create)
			secured.GET("/owners/:id", ownerHandler.Get)
			secured.PATCH("/owners/:id", ownerHandler.Update)
			secured.DELETE("/owners/:id", ownerHandler.Delete)

			// ------------------------------
			// PETS
			// ------------------------------
			secured.GET("/pets", petHandler.List)
			secured.POST("/pets", petHandler.Create)
			secured.GET("/pets/:id", petHandler.Get)
			secured.PATCH("/pets/:id", petHandler.Update)
			secured.DELETE("/pets/:id", petHandler.Delete)

			// ------------------------------
			// MEDICAL RECORDS
			// ------------------------------
			secured.GET("/pets/:id/medical-records", medicalRecordHandler.ListByPet)
			secured.POST("/medical-records", medicalRecordHandler.Create)
			secured.PATCH("/medical-records/:id", medicalRecordHandler.Update)
			secured.DELETE("/medical-records/:id", medicalRecordHandler.Delete)
			secured.POST("/medical-records/:id/images", medicalRecordHandler.UploadImage)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.ListByRange)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.PUT("/appointments/:id/vitals", appointmentRecordsHandler.UpsertVitals)
			secured.POST("/appointments/:id/prescriptions", appointmentRecordsHandler.CreatePrescription)
			secured.DELETE("/appointments/:id/prescriptions/:prescriptionId", appointmentRecordsHandler.DeletePrescription)
			secured.POST("/appointments/:id/recommendations", appointmentRecordsHandler.CreateRecommendation)
			secured.DELETE("/appointments/:id/recommendations/:recommendationId", appointmentRecordsHandler.DeleteRecommendation)

			// ------------------------------
			// INVOICES
			// ------------------------------
			secured.GET("/invoices", invoiceHandler.List)
			secured.POST("/invoices", invoiceHandler.Create)
			secured.GET("/invoices/:id", invoiceHandler.Get)
			secured.PUT("/invoices/:id", invoiceHandler.Update)
			secured.DELETE("/invoices/:id", invoiceHandler.Delete)
			secured.POST("/invoices/:id/send", invoiceHandler.Send)

			// ------------------------------
			// DASHBOARD / AUDIT
			// ------------------------------
			secured.GET("/dashboard/stats", dashboardHandler.GetStats)
			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
