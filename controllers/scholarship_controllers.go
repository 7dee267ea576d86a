package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/models"
	"github.com/eduaid/scholarship-app/services"
	"github.com/eduaid/scholarship-app/utils"
)

type ScholarshipController struct {
	DB   *gorm.DB
	Apps *services.ApplicationService
}

func NewScholarshipController(db *gorm.DB, apps *services.ApplicationService) *ScholarshipController {
	return &ScholarshipController{DB: db, Apps: apps}
}

// GetAllScholarships -> public catalog listing
func (sc *ScholarshipController) GetAllScholarships(c *gin.Context) {
	var scholarships []models.Scholarship
	if err := sc.DB.Order("date_posted DESC").Find(&scholarships).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of scholarships", scholarships)
}

func (sc *ScholarshipController) GetScholarshipByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("scholarship_id"))

	var scholarship models.Scholarship
	if err := sc.DB.First(&scholarship, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Scholarship detail", scholarship)
}

// CreateScholarship -> staff only
func (sc *ScholarshipController) CreateScholarship(c *gin.Context) {
	if !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var scholarship models.Scholarship
	if err := c.ShouldBindJSON(&scholarship); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if scholarship.Title == "" || scholarship.Sponsor == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("title and sponsor are required"))
		return
	}

	scholarship.ID = 0
	scholarship.DatePosted = time.Now()

	if err := sc.DB.Create(&scholarship).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Scholarship created: %s (%s)", scholarship.Title, scholarship.Sponsor)
	utils.RespondJSON(c, http.StatusCreated, "Scholarship created", scholarship)
}

// UpdateScholarship -> staff only. Does not touch existing applications:
// their denormalized title/sponsor are submission-time snapshots.
func (sc *ScholarshipController) UpdateScholarship(c *gin.Context) {
	if !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	id, _ := strconv.Atoi(c.Param("scholarship_id"))

	var scholarship models.Scholarship
	if err := sc.DB.First(&scholarship, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req models.Scholarship
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	req.ID = scholarship.ID
	req.DatePosted = scholarship.DatePosted
	req.CreatedAt = scholarship.CreatedAt

	if err := sc.DB.Save(&req).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Scholarship updated", req)
}

// DeleteScholarship removes the scholarship and every application
// referencing it in one transaction.
func (sc *ScholarshipController) DeleteScholarship(c *gin.Context) {
	if !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	id, _ := strconv.Atoi(c.Param("scholarship_id"))

	if err := sc.Apps.DeleteScholarshipCascade(uint(id)); err != nil {
		if errors.Is(err, services.ErrScholarshipNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Scholarship %d deleted with its applications", id)
	utils.RespondJSON(c, http.StatusOK, "Scholarship deleted", gin.H{"scholarship_id": id})
}
