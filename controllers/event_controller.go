// File: /controllers/event_controller.go
package controllers

import (
	"net/http"

	"etkinlik-api/models"
	"etkinlik-api/repositories"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxPageSize = 100

type EventController struct {
	events *repositories.EventRepository
	log    *logrus.Logger
}

func NewEventController(events *repositories.EventRepository, log *logrus.Logger) *EventController {
	return &EventController{events: events, log: log}
}

type EventRequest struct {
	models.EventContent
	categorySelection
	IsActive   *bool `json:"isActive"`
	IsFeatured *bool `json:"isFeatured"`
}

type EventStatusRequest struct {
	IsActive   *bool `json:"isActive"`
	IsFeatured *bool `json:"isFeatured"`
}

func (ec *EventController) filterFromQuery(c *gin.Context) repositories.EventFilter {
	page, limit := utils.Pagination(c, maxPageSize)
	f := repositories.EventFilter{
		Featured: queryBool(c, "featured"),
		Search:   c.Query("search"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Page:     page,
		Limit:    limit,
	}
	if id, ok := utils.ParseID(c.Query("category")); ok {
		f.CategoryID = id
	}
	return f
}

// GetEvents lists active events for the public site.
func (ec *EventController) GetEvents(c *gin.Context) {
	f := ec.filterFromQuery(c)
	f.ActiveOnly = true
	ec.list(c, f)
}

// GetAllEvents lists every event, newest first, for the admin panel.
func (ec *EventController) GetAllEvents(c *gin.Context) {
	f := ec.filterFromQuery(c)
	f.NewestFirst = true
	if active := queryBool(c, "active"); active != nil && *active {
		f.ActiveOnly = true
	}
	ec.list(c, f)
}

func (ec *EventController) list(c *gin.Context, f repositories.EventFilter) {
	events, total, err := ec.events.List(c.Request.Context(), f)
	if err != nil {
		respondStoreError(c, ec.log, err, "", "list events")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  total,
		"page":   f.Page,
		"limit":  f.Limit,
	})
}

func (ec *EventController) GetEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	event, err := ec.events.Get(c.Request.Context(), id, true)
	if err != nil {
		respondStoreError(c, ec.log, err, "Etkinlik bulunamadı", "get event")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	var req EventRequest
	categoryIDs, ok := bindWithCategories(c, &req)
	if !ok {
		return
	}

	event := models.Event{
		EventContent: req.EventContent,
		IsActive:     true,
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		event.IsFeatured = *req.IsFeatured
	}

	if err := ec.events.Create(c.Request.Context(), &event, categoryIDs); err != nil {
		respondStoreError(c, ec.log, err, "", "create event")
		return
	}

	ec.log.WithFields(logrus.Fields{"event_id": event.ID, "title": event.Title}).Info("event created")
	c.JSON(http.StatusCreated, gin.H{"message": "Etkinlik oluşturuldu", "event": event})
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req EventRequest
	categoryIDs, ok := bindWithCategories(c, &req)
	if !ok {
		return
	}

	event, err := ec.events.Update(c.Request.Context(), id, repositories.EventUpdate{
		Content:     req.EventContent,
		CategoryIDs: categoryIDs,
		IsActive:    req.IsActive,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		respondStoreError(c, ec.log, err, "Etkinlik bulunamadı", "update event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Etkinlik güncellendi", "event": event})
}

// UpdateEventStatus toggles isActive and/or isFeatured without touching content.
func (ec *EventController) UpdateEventStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req EventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}
	if req.IsActive == nil && req.IsFeatured == nil {
		utils.SendValidationError(c, &utils.ValidationError{Message: "isActive veya isFeatured alanlarından en az biri gönderilmeli"})
		return
	}

	event, err := ec.events.SetStatus(c.Request.Context(), id, req.IsActive, req.IsFeatured)
	if err != nil {
		respondStoreError(c, ec.log, err, "Etkinlik bulunamadı", "update event status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Etkinlik durumu güncellendi", "event": event})
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ec.events.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, ec.log, err, "Etkinlik bulunamadı", "delete event")
		return
	}
	ec.log.WithField("event_id", id).Info("event deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Etkinlik silindi"})
}
