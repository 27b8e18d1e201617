package controllers

import (
	"net/http"
	"time"

	"etkinlik-api/models"
	"etkinlik-api/repositories"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AnnouncementController struct {
	announcements *repositories.AnnouncementRepository
	log           *logrus.Logger
	now           func() time.Time
}

func NewAnnouncementController(announcements *repositories.AnnouncementRepository, log *logrus.Logger) *AnnouncementController {
	return &AnnouncementController{announcements: announcements, log: log, now: time.Now}
}

type AnnouncementRequest struct {
	Title            string     `json:"title" binding:"required,max=255"`
	Message          string     `json:"message"`
	ImageURL         string     `json:"imageUrl" binding:"max=1000"`
	ImageAspectRatio string     `json:"imageAspectRatio" binding:"omitempty,oneof=square wide tall original"`
	ButtonText       string     `json:"buttonText" binding:"max=100"`
	ButtonURL        string     `json:"buttonUrl" binding:"max=1000"`
	IsActive         *bool      `json:"isActive"`
	ShowOnce         bool       `json:"showOnce"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
}

func (r AnnouncementRequest) toModel() models.Announcement {
	a := models.Announcement{
		Title:            r.Title,
		Message:          r.Message,
		ImageURL:         r.ImageURL,
		ImageAspectRatio: r.ImageAspectRatio,
		ButtonText:       r.ButtonText,
		ButtonURL:        r.ButtonURL,
		IsActive:         true,
		ShowOnce:         r.ShowOnce,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
	}
	if a.ImageAspectRatio == "" {
		a.ImageAspectRatio = models.AspectOriginal
	}
	if r.IsActive != nil {
		a.IsActive = *r.IsActive
	}
	return a
}

func (r AnnouncementRequest) validWindow() bool {
	return r.StartDate == nil || r.EndDate == nil || !r.EndDate.Before(*r.StartDate)
}

// GetActiveAnnouncements is what the public app polls.
func (ac *AnnouncementController) GetActiveAnnouncements(c *gin.Context) {
	items, err := ac.announcements.Active(c.Request.Context(), ac.now())
	if err != nil {
		respondStoreError(c, ac.log, err, "", "list active announcements")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ac *AnnouncementController) GetAnnouncements(c *gin.Context) {
	items, err := ac.announcements.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, ac.log, err, "", "list announcements")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ac *AnnouncementController) CreateAnnouncement(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}
	if !req.validWindow() {
		utils.SendValidationError(c, &utils.ValidationError{Field: "endDate", Message: "Bitiş tarihi başlangıç tarihinden önce olamaz"})
		return
	}

	item := req.toModel()
	if err := ac.announcements.Create(c.Request.Context(), &item); err != nil {
		respondStoreError(c, ac.log, err, "", "create announcement")
		return
	}
	ac.log.WithField("announcement_id", item.ID).Info("announcement created")
	c.JSON(http.StatusCreated, gin.H{"message": "Duyuru oluşturuldu", "announcement": item})
}

func (ac *AnnouncementController) UpdateAnnouncement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}
	if !req.validWindow() {
		utils.SendValidationError(c, &utils.ValidationError{Field: "endDate", Message: "Bitiş tarihi başlangıç tarihinden önce olamaz"})
		return
	}

	item, err := ac.announcements.Update(c.Request.Context(), id, req.toModel())
	if err != nil {
		respondStoreError(c, ac.log, err, "Duyuru bulunamadı", "update announcement")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Duyuru güncellendi", "announcement": item})
}

func (ac *AnnouncementController) DeleteAnnouncement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ac.announcements.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, ac.log, err, "Duyuru bulunamadı", "delete announcement")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Duyuru silindi"})
}
