package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/models"
	"github.com/eduaid/scholarship-app/services"
	"github.com/eduaid/scholarship-app/utils"
)

type AdminController struct {
	DB         *gorm.DB
	Apps       *services.ApplicationService
	Reconciler *services.AccountReconciler
}

func NewAdminController(db *gorm.DB, apps *services.ApplicationService) *AdminController {
	return &AdminController{
		DB:         db,
		Apps:       apps,
		Reconciler: services.NewAccountReconciler(db),
	}
}

// GetDashboardStats -> staff overview of the pipeline.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	if !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var stats struct {
		TotalApplications int64 `json:"total_applications"`
		TotalScholarships int64 `json:"total_scholarships"`
		TotalApplicants   int64 `json:"total_applicants"`
		StatusCounts      struct {
			Applied     int64 `json:"applied"`
			UnderReview int64 `json:"under_review"`
			Exam        int64 `json:"exam"`
			Interview   int64 `json:"interview"`
			Accepted    int64 `json:"accepted"`
			Rejected    int64 `json:"rejected"`
		} `json:"status_counts"`
		OrphanedApplications int `json:"orphaned_applications"`
	}

	ac.DB.Model(&models.Application{}).Count(&stats.TotalApplications)
	ac.DB.Model(&models.Scholarship{}).Count(&stats.TotalScholarships)
	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleApplicant).Count(&stats.TotalApplicants)

	ac.DB.Model(&models.Application{}).Where("status = ?", models.StatusApplied).Count(&stats.StatusCounts.Applied)
	ac.DB.Model(&models.Application{}).Where("status = ?", models.StatusUnderReview).Count(&stats.StatusCounts.UnderReview)
	ac.DB.Model(&models.Application{}).Where("status = ?", models.StatusExam).Count(&stats.StatusCounts.Exam)
	ac.DB.Model(&models.Application{}).Where("status = ?", models.StatusInterview).Count(&stats.StatusCounts.Interview)
	ac.DB.Model(&models.Application{}).Where("status = ?", models.StatusAccepted).Count(&stats.StatusCounts.Accepted)
	ac.DB.Model(&models.Application{}).Where("status = ?", models.StatusRejected).Count(&stats.StatusCounts.Rejected)

	apps, err := ac.Apps.All()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	liveIDs, err := ac.Reconciler.LiveUserIDs()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	stats.OrphanedApplications = len(services.OrphanedApplications(apps, liveIDs))

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// ExportApplicationsCSV streams the full application set as a flat CSV,
// one row per application, annotated with the deleted-account flag.
func (ac *AdminController) ExportApplicationsCSV(c *gin.Context) {
	if !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	apps, err := ac.Apps.All()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	liveIDs, err := ac.Reconciler.LiveUserIDs()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("eduaid_applications_export_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	header := []string{
		"Application ID",
		"Applicant Name",
		"Email",
		"Scholarship Title",
		"Sponsor",
		"Date Applied",
		"Status",
		"Education Level",
		"School",
		"Major",
		"GPA",
		"Income Range",
		"Location",
		"Is Deleted Account",
	}
	if err := w.Write(header); err != nil {
		utils.ErrorLogger.Printf("CSV export failed: %v", err)
		return
	}

	for _, app := range apps {
		deleted := "No"
		if services.IsOrphaned(&app, liveIDs) {
			deleted = "Yes"
		}
		row := []string{
			fmt.Sprintf("%d", app.ID),
			app.ApplicantName,
			app.ApplicantEmail,
			app.ScholarshipTitle,
			app.Sponsor,
			app.DateApplied.Format("Jan 02, 2006"),
			app.Status,
			app.ProfileSnapshot.EducationLevel,
			app.ProfileSnapshot.SchoolName,
			app.ProfileSnapshot.Major,
			app.ProfileSnapshot.GPA,
			app.ProfileSnapshot.IncomeRange,
			app.ProfileSnapshot.Location,
			deleted,
		}
		if err := w.Write(row); err != nil {
			utils.ErrorLogger.Printf("CSV export failed: %v", err)
			return
		}
	}
}
