package controllers

import (
	"net/http"

	"etkinlik-api/models"
	"etkinlik-api/repositories"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type VenueController struct {
	venues *repositories.VenueRepository
	log    *logrus.Logger
}

func NewVenueController(venues *repositories.VenueRepository, log *logrus.Logger) *VenueController {
	return &VenueController{venues: venues, log: log}
}

type VenueRequest struct {
	models.VenueContent
	categorySelection
	IsActive   *bool `json:"isActive"`
	IsFeatured *bool `json:"isFeatured"`
}

func (vc *VenueController) filterFromQuery(c *gin.Context) repositories.VenueFilter {
	page, limit := utils.Pagination(c, maxPageSize)
	f := repositories.VenueFilter{
		Featured: queryBool(c, "featured"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}
	if id, ok := utils.ParseID(c.Query("category")); ok {
		f.CategoryID = id
	}
	return f
}

func (vc *VenueController) GetVenues(c *gin.Context) {
	f := vc.filterFromQuery(c)
	f.ActiveOnly = true
	vc.list(c, f)
}

func (vc *VenueController) GetAllVenues(c *gin.Context) {
	vc.list(c, vc.filterFromQuery(c))
}

func (vc *VenueController) list(c *gin.Context, f repositories.VenueFilter) {
	venues, total, err := vc.venues.List(c.Request.Context(), f)
	if err != nil {
		respondStoreError(c, vc.log, err, "", "list venues")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"venues": venues,
		"total":  total,
		"page":   f.Page,
		"limit":  f.Limit,
	})
}

func (vc *VenueController) GetVenue(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	venue, err := vc.venues.Get(c.Request.Context(), id, true)
	if err != nil {
		respondStoreError(c, vc.log, err, "Mekan bulunamadı", "get venue")
		return
	}
	c.JSON(http.StatusOK, venue)
}

func (vc *VenueController) CreateVenue(c *gin.Context) {
	var req VenueRequest
	categoryIDs, ok := bindWithCategories(c, &req)
	if !ok {
		return
	}

	venue := models.Venue{VenueContent: req.VenueContent, IsActive: true}
	if req.IsActive != nil {
		venue.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		venue.IsFeatured = *req.IsFeatured
	}

	if err := vc.venues.Create(c.Request.Context(), &venue, categoryIDs); err != nil {
		respondStoreError(c, vc.log, err, "", "create venue")
		return
	}
	vc.log.WithFields(logrus.Fields{"venue_id": venue.ID, "name": venue.Name}).Info("venue created")
	c.JSON(http.StatusCreated, gin.H{"message": "Mekan oluşturuldu", "venue": venue})
}

// UpdateVenue takes the id from the query string: PUT /venues?id=.
func (vc *VenueController) UpdateVenue(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		return
	}
	var req VenueRequest
	categoryIDs, ok := bindWithCategories(c, &req)
	if !ok {
		return
	}

	venue, err := vc.venues.Update(c.Request.Context(), id, repositories.VenueUpdate{
		Content:     req.VenueContent,
		CategoryIDs: categoryIDs,
		IsActive:    req.IsActive,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		respondStoreError(c, vc.log, err, "Mekan bulunamadı", "update venue")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mekan güncellendi", "venue": venue})
}

func (vc *VenueController) DeleteVenue(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		return
	}
	if err := vc.venues.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, vc.log, err, "Mekan bulunamadı", "delete venue")
		return
	}
	vc.log.WithField("venue_id", id).Info("venue deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Mekan silindi"})
}
