package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/config"
	"github.com/eduaid/scholarship-app/controllers"
	"github.com/eduaid/scholarship-app/middlewares"
	"github.com/eduaid/scholarship-app/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	appService := services.NewApplicationService(db, config.StrictProgression())

	userCtrl := controllers.NewUserController(db)
	scholarshipCtrl := controllers.NewScholarshipController(db, appService)
	applicationCtrl := controllers.NewApplicationController(db, appService)
	notificationCtrl := controllers.NewNotificationController(db)
	savedCtrl := controllers.NewSavedController(db)
	adminCtrl := controllers.NewAdminController(db, appService)

	// Serve uploaded application documents.
	r.Static("/uploads", config.UploadDir())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Catalog browsing needs no account.
	r.GET("/scholarships", scholarshipCtrl.GetAllScholarships)
	r.GET("/scholarships/:scholarship_id", scholarshipCtrl.GetScholarshipByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)
		auth.PATCH("/profile", userCtrl.UpdateProfile)
		auth.POST("/profile/password", userCtrl.ChangePassword)
		auth.DELETE("/profile", userCtrl.DeleteAccount)

		// APPLICATIONS (applicant)
		auth.POST("/applications", applicationCtrl.SubmitApplication)
		auth.GET("/applications", applicationCtrl.GetMyApplications)
		auth.GET("/applications/:app_id", applicationCtrl.GetApplicationByID)

		// NOTIFICATIONS
		auth.GET("/notifications", notificationCtrl.GetMyNotifications)
		auth.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkRead)
		auth.POST("/notifications/read-all", notificationCtrl.MarkAllRead)
		auth.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)

		// SAVED SCHOLARSHIPS
		auth.GET("/saved", savedCtrl.GetSaved)
		auth.POST("/saved/:scholarship_id/toggle", savedCtrl.ToggleSaved)
	}

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	staff := r.Group("/admin")
	staff.Use(middlewares.AuthMiddleware(), middlewares.StaffOnly())
	{
		staff.GET("/users", userCtrl.GetAllUsers)

		staff.POST("/scholarships", scholarshipCtrl.CreateScholarship)
		staff.PATCH("/scholarships/:scholarship_id", scholarshipCtrl.UpdateScholarship)
		staff.DELETE("/scholarships/:scholarship_id", scholarshipCtrl.DeleteScholarship)

		staff.GET("/applications", applicationCtrl.GetAllApplications)
		staff.PATCH("/applications/:app_id/status", applicationCtrl.UpdateApplicationStatus)
		staff.DELETE("/applications/:app_id", applicationCtrl.DeleteApplication)

		staff.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		staff.GET("/reports/export", adminCtrl.ExportApplicationsCSV)
	}

	return r
}
