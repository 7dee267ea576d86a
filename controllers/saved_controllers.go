package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/services"
	"github.com/eduaid/scholarship-app/utils"
)

type SavedController struct {
	DB    *gorm.DB
	Saved *services.SavedSetService
}

func NewSavedController(db *gorm.DB) *SavedController {
	return &SavedController{DB: db, Saved: services.NewSavedSetService(db)}
}

// ToggleSaved flips a scholarship in the caller's bookmark set and returns
// the new membership state.
func (sc *SavedController) ToggleSaved(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	id, err := strconv.Atoi(c.Param("scholarship_id"))
	if err != nil || id <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid scholarship id"))
		return
	}

	saved, err := sc.Saved.Toggle(userID, uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Saved state toggled", gin.H{
		"scholarship_id": id,
		"saved":          saved,
	})
}

// GetSaved returns the caller's saved scholarship ids.
func (sc *SavedController) GetSaved(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	ids, err := sc.Saved.List(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Saved scholarships", gin.H{"scholarship_ids": ids})
}
