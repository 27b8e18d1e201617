// File: /controllers/locator_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"etkinlik-api/services"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type LocatorController struct {
	locations *services.LocationService
	log       *logrus.Logger
}

func NewLocatorController(locations *services.LocationService, log *logrus.Logger) *LocatorController {
	return &LocatorController{locations: locations, log: log}
}

// nearbyQuery reads lat, lng, radius (km) and limit. lat and lng are required.
func nearbyQuery(c *gin.Context) (services.NearbyQuery, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		utils.SendValidationError(c, &utils.ValidationError{Field: "lat", Message: "lat ve lng parametreleri zorunludur"})
		return services.NearbyQuery{}, false
	}

	q := services.NearbyQuery{Latitude: lat, Longitude: lng}
	if raw := c.Query("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil || radius < 0 {
			utils.SendValidationError(c, &utils.ValidationError{Field: "radius", Message: "radius pozitif bir sayı olmalı"})
			return services.NearbyQuery{}, false
		}
		q.RadiusKm = radius
	}
	q.Limit, _ = strconv.Atoi(c.Query("limit"))
	return q, true
}

func (lc *LocatorController) respond(c *gin.Context, err error, op string) {
	if errors.Is(err, services.ErrInvalidCoordinates) {
		utils.SendValidationError(c, &utils.ValidationError{Field: "lat", Message: "Koordinatlar geçersiz"})
		return
	}
	respondStoreError(c, lc.log, err, "", op)
}

// GetNearbyVenues handles GET /api/nearby/venues
func (lc *LocatorController) GetNearbyVenues(c *gin.Context) {
	q, ok := nearbyQuery(c)
	if !ok {
		return
	}
	venues, err := lc.locations.NearbyVenues(c.Request.Context(), q)
	if err != nil {
		lc.respond(c, err, "nearby venues")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(venues), "venues": venues})
}

// GetNearbyEvents handles GET /api/nearby/events
// Events that already ended are left out unless ?past=true.
func (lc *LocatorController) GetNearbyEvents(c *gin.Context) {
	q, ok := nearbyQuery(c)
	if !ok {
		return
	}
	if past := queryBool(c, "past"); past == nil || !*past {
		q.From = time.Now().Format("2006-01-02")
	}
	events, err := lc.locations.NearbyEvents(c.Request.Context(), q)
	if err != nil {
		lc.respond(c, err, "nearby events")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(events), "events": events})
}
