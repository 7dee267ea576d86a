package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/config"
	"github.com/eduaid/scholarship-app/models"
	"github.com/eduaid/scholarship-app/services"
	"github.com/eduaid/scholarship-app/utils"
)

type ApplicationController struct {
	DB         *gorm.DB
	Apps       *services.ApplicationService
	Reconciler *services.AccountReconciler
}

func NewApplicationController(db *gorm.DB, apps *services.ApplicationService) *ApplicationController {
	return &ApplicationController{
		DB:         db,
		Apps:       apps,
		Reconciler: services.NewAccountReconciler(db),
	}
}

// SubmitApplication -> applicant applies to a scholarship with an optional
// statement and supporting documents (multipart form).
func (ac *ApplicationController) SubmitApplication(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("account not found"))
		return
	}

	scholarshipID, err := strconv.Atoi(c.PostForm("scholarship_id"))
	if err != nil || scholarshipID <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("scholarship_id is required"))
		return
	}

	var scholarship models.Scholarship
	if err := ac.DB.First(&scholarship, scholarshipID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("scholarship not found"))
		return
	}

	statement := c.PostForm("statement")

	documents, err := ac.storeDocuments(c, userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	app, err := ac.Apps.Submit(&user, &scholarship, statement, documents)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateApplication) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Application submitted", app)
}

// storeDocuments saves the uploaded files and returns their metadata in
// upload order.
func (ac *ApplicationController) storeDocuments(c *gin.Context, userID uint) ([]models.ApplicationDocument, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body means no documents.
		return nil, nil
	}

	files := form.File["documents"]
	if len(files) == 0 {
		return nil, nil
	}

	uploadDir := filepath.Join(config.UploadDir(), "applications", strconv.FormatUint(uint64(userID), 10))
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, err
	}

	documents := make([]models.ApplicationDocument, 0, len(files))
	for _, file := range files {
		storedName := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename))
		dest := filepath.Join(uploadDir, storedName)

		if err := c.SaveUploadedFile(file, dest); err != nil {
			return nil, err
		}

		documents = append(documents, models.ApplicationDocument{
			Name:         file.Filename,
			Size:         utils.FormatFileSize(file.Size),
			Type:         utils.MimeClass(file.Header.Get("Content-Type")),
			URL:          "/" + filepath.ToSlash(dest),
			DateUploaded: time.Now(),
		})
	}
	return documents, nil
}

// GetMyApplications -> the caller's own applications.
func (ac *ApplicationController) GetMyApplications(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	apps, err := ac.Apps.ForUser(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My applications", apps)
}

// GetAllApplications -> staff only, annotated with the orphaned-account
// flag so the review screen can freeze actions for deleted accounts.
func (ac *ApplicationController) GetAllApplications(c *gin.Context) {
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

	type annotated struct {
		models.Application
		AccountDeleted bool `json:"account_deleted"`
	}

	out := make([]annotated, 0, len(apps))
	for _, app := range apps {
		out = append(out, annotated{
			Application:    app,
			AccountDeleted: services.IsOrphaned(&app, liveIDs),
		})
	}

	utils.RespondJSON(c, http.StatusOK, "All applications", out)
}

// GetApplicationByID -> the owner or staff.
func (ac *ApplicationController) GetApplicationByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("app_id"))

	app, err := ac.Apps.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	userID, _ := callerID(c)
	if app.UserID != userID && !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Application detail", app)
}

// UpdateApplicationStatus -> staff transitions an application through the
// review pipeline, optionally with a message for the applicant.
func (ac *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	if !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	id, _ := strconv.Atoi(c.Param("app_id"))

	var req struct {
		Status  string `json:"status" binding:"required"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	app, err := ac.Apps.Transition(uint(id), req.Status, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrAccountDeleted):
			utils.RespondError(c, http.StatusForbidden, err)
		case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidTransition):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Application updated", app)
}

// DeleteApplication -> staff removes an application. Its notifications are
// left in place.
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	if !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	id, _ := strconv.Atoi(c.Param("app_id"))

	if err := ac.Apps.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Application %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Application deleted", gin.H{"app_id": id})
}
