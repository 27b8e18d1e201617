package controllers

import (
	"net/http"

	"etkinlik-api/repositories"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// PendingController runs the moderation queue: public submissions land here
// and an admin approves or rejects them.
type PendingController struct {
	pending *repositories.PendingRepository
	log     *logrus.Logger
}

func NewPendingController(pending *repositories.PendingRepository, log *logrus.Logger) *PendingController {
	return &PendingController{pending: pending, log: log}
}

type PendingEventActionRequest struct {
	EventID FlexID `json:"eventId"`
	Action  string `json:"action"`
}

type PendingVenueActionRequest struct {
	VenueID FlexID `json:"venueId"`
	Action  string `json:"action"`
}

// =====================================================
// SUBMISSIONS (public)
// =====================================================

func (pc *PendingController) SubmitEvent(c *gin.Context) {
	var req EventRequest
	categoryIDs, ok := bindWithCategories(c, &req)
	if !ok {
		return
	}

	row, err := pc.pending.CreatePendingEvent(c.Request.Context(), req.EventContent, categoryIDs)
	if err != nil {
		respondStoreError(c, pc.log, err, "", "submit event")
		return
	}
	pc.log.WithFields(logrus.Fields{"pending_event_id": row.ID, "title": row.Title}).Info("event submitted for review")
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Etkinliğiniz incelemeye gönderildi. Onaylandıktan sonra yayınlanacaktır.",
		"pendingEvent": row,
	})
}

func (pc *PendingController) SubmitVenue(c *gin.Context) {
	var req VenueRequest
	categoryIDs, ok := bindWithCategories(c, &req)
	if !ok {
		return
	}

	row, err := pc.pending.CreatePendingVenue(c.Request.Context(), req.VenueContent, categoryIDs)
	if err != nil {
		respondStoreError(c, pc.log, err, "", "submit venue")
		return
	}
	pc.log.WithFields(logrus.Fields{"pending_venue_id": row.ID, "name": row.Name}).Info("venue submitted for review")
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Mekan öneriniz incelemeye gönderildi. Onaylandıktan sonra yayınlanacaktır.",
		"pendingVenue": row,
	})
}

// =====================================================
// PENDING EVENTS (admin)
// =====================================================

func (pc *PendingController) GetPendingEvents(c *gin.Context) {
	rows, err := pc.pending.ListPendingEvents(c.Request.Context())
	if err != nil {
		respondStoreError(c, pc.log, err, "", "list pending events")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (pc *PendingController) GetPendingEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	row, err := pc.pending.GetPendingEvent(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, pc.log, err, "Bekleyen etkinlik bulunamadı", "get pending event")
		return
	}
	c.JSON(http.StatusOK, row)
}

// UpdatePendingEvent lets the admin fix a draft before deciding on it.
func (pc *PendingController) UpdatePendingEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req EventRequest
	categoryIDs, ok := bindWithCategories(c, &req)
	if !ok {
		return
	}

	row, err := pc.pending.UpdatePendingEvent(c.Request.Context(), id, req.EventContent, categoryIDs)
	if err != nil {
		respondStoreError(c, pc.log, err, "Bekleyen etkinlik bulunamadı", "update pending event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bekleyen etkinlik güncellendi", "pendingEvent": row})
}

// ResolvePendingEvent approves or rejects one draft: {eventId, action}.
func (pc *PendingController) ResolvePendingEvent(c *gin.Context) {
	var req PendingEventActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}
	if req.Action != ActionApprove && req.Action != ActionReject {
		utils.SendError(c, http.StatusBadRequest, utils.MsgUnknownAction)
		return
	}
	if req.EventID == 0 {
		utils.SendValidationError(c, &utils.ValidationError{Field: "eventId", Message: "eventId alanı zorunludur"})
		return
	}
	id := uint(req.EventID)
	entry := pc.log.WithFields(logrus.Fields{"pending_event_id": id, "action": req.Action})

	if req.Action == ActionReject {
		if err := pc.pending.RejectEvent(c.Request.Context(), id); err != nil {
			respondStoreError(c, pc.log, err, "Bekleyen etkinlik bulunamadı", "reject event")
			return
		}
		entry.Info("pending event rejected")
		c.JSON(http.StatusOK, gin.H{"message": "Etkinlik reddedildi ve silindi"})
		return
	}

	event, err := pc.pending.ApproveEvent(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, pc.log, err, "Bekleyen etkinlik bulunamadı", "approve event")
		return
	}
	entry.WithField("event_id", event.ID).Info("pending event approved")
	c.JSON(http.StatusOK, gin.H{"message": "Etkinlik onaylandı ve yayınlandı", "event": event})
}

// =====================================================
// PENDING VENUES (admin)
// =====================================================

func (pc *PendingController) GetPendingVenues(c *gin.Context) {
	rows, err := pc.pending.ListPendingVenues(c.Request.Context())
	if err != nil {
		respondStoreError(c, pc.log, err, "", "list pending venues")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (pc *PendingController) GetPendingVenue(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	row, err := pc.pending.GetPendingVenue(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, pc.log, err, "Bekleyen mekan bulunamadı", "get pending venue")
		return
	}
	c.JSON(http.StatusOK, row)
}

func (pc *PendingController) UpdatePendingVenue(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req VenueRequest
	categoryIDs, ok := bindWithCategories(c, &req)
	if !ok {
		return
	}

	row, err := pc.pending.UpdatePendingVenue(c.Request.Context(), id, req.VenueContent, categoryIDs)
	if err != nil {
		respondStoreError(c, pc.log, err, "Bekleyen mekan bulunamadı", "update pending venue")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bekleyen mekan güncellendi", "pendingVenue": row})
}

func (pc *PendingController) ResolvePendingVenue(c *gin.Context) {
	var req PendingVenueActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}
	if req.Action != ActionApprove && req.Action != ActionReject {
		utils.SendError(c, http.StatusBadRequest, utils.MsgUnknownAction)
		return
	}
	if req.VenueID == 0 {
		utils.SendValidationError(c, &utils.ValidationError{Field: "venueId", Message: "venueId alanı zorunludur"})
		return
	}
	id := uint(req.VenueID)
	entry := pc.log.WithFields(logrus.Fields{"pending_venue_id": id, "action": req.Action})

	if req.Action == ActionReject {
		if err := pc.pending.RejectVenue(c.Request.Context(), id); err != nil {
			respondStoreError(c, pc.log, err, "Bekleyen mekan bulunamadı", "reject venue")
			return
		}
		entry.Info("pending venue rejected")
		c.JSON(http.StatusOK, gin.H{"message": "Mekan reddedildi ve silindi"})
		return
	}

	venue, err := pc.pending.ApproveVenue(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, pc.log, err, "Bekleyen mekan bulunamadı", "approve venue")
		return
	}
	entry.WithField("venue_id", venue.ID).Info("pending venue approved")
	c.JSON(http.StatusOK, gin.H{"message": "Mekan onaylandı ve yayınlandı", "venue": venue})
}
