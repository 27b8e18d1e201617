package controllers

import (
	"net/http"

	"etkinlik-api/middleware"
	"etkinlik-api/repositories"
	"etkinlik-api/services"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FavoriteController struct {
	favorites *repositories.FavoriteRepository
	events    *repositories.EventRepository
	sync      *services.FavoriteSyncService
	log       *logrus.Logger
}

func NewFavoriteController(favorites *repositories.FavoriteRepository, events *repositories.EventRepository, sync *services.FavoriteSyncService, log *logrus.Logger) *FavoriteController {
	return &FavoriteController{favorites: favorites, events: events, sync: sync, log: log}
}

type AddFavoriteRequest struct {
	UserID  FlexID `json:"userId"`
	EventID FlexID `json:"eventId"`
}

type SyncFavoritesRequest struct {
	EventIDs []uint `json:"eventIds"`
}

// currentUser resolves the acting user. An explicit userId that is not the
// token's subject is rejected.
func (fc *FavoriteController) currentUser(c *gin.Context, explicit uint) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, utils.MsgUnauthorized)
		return 0, false
	}
	if explicit != 0 && explicit != userID {
		utils.SendError(c, http.StatusForbidden, utils.MsgForbidden)
		return 0, false
	}
	return userID, true
}

func (fc *FavoriteController) GetFavorites(c *gin.Context) {
	var explicit uint
	if raw := c.Query("userId"); raw != "" {
		id, ok := queryID(c, "userId")
		if !ok {
			return
		}
		explicit = id
	}
	userID, ok := fc.currentUser(c, explicit)
	if !ok {
		return
	}

	events, err := fc.favorites.Events(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, fc.log, err, "", "list favorites")
		return
	}
	ids := make([]uint, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	c.JSON(http.StatusOK, gin.H{"eventIds": ids, "events": events})
}

func (fc *FavoriteController) AddFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}
	userID, ok := fc.currentUser(c, uint(req.UserID))
	if !ok {
		return
	}
	if req.EventID == 0 {
		utils.SendValidationError(c, &utils.ValidationError{Field: "eventId", Message: "eventId alanı zorunludur"})
		return
	}

	if _, err := fc.events.Get(c.Request.Context(), uint(req.EventID), true); err != nil {
		respondStoreError(c, fc.log, err, "Etkinlik bulunamadı", "favorite lookup event")
		return
	}
	if err := fc.favorites.Add(c.Request.Context(), userID, uint(req.EventID)); err != nil {
		respondStoreError(c, fc.log, err, "", "add favorite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorilere eklendi"})
}

func (fc *FavoriteController) RemoveFavorite(c *gin.Context) {
	var explicit uint
	if c.Query("userId") != "" {
		id, ok := queryID(c, "userId")
		if !ok {
			return
		}
		explicit = id
	}
	userID, ok := fc.currentUser(c, explicit)
	if !ok {
		return
	}
	eventID, ok := queryID(c, "eventId")
	if !ok {
		return
	}

	if err := fc.favorites.Remove(c.Request.Context(), userID, eventID); err != nil {
		respondStoreError(c, fc.log, err, "", "remove favorite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorilerden çıkarıldı"})
}

// SyncFavorites makes the server set equal to the client's local set.
// Individual failures do not fail the request; they are logged and counted.
func (fc *FavoriteController) SyncFavorites(c *gin.Context) {
	var req SyncFavoritesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}
	userID, ok := fc.currentUser(c, 0)
	if !ok {
		return
	}

	diff, err := fc.sync.Sync(c.Request.Context(), userID, req.EventIDs)
	if err != nil && len(diff.ToAdd) == 0 && len(diff.ToRemove) == 0 {
		respondStoreError(c, fc.log, err, "", "sync favorites")
		return
	}

	resp := gin.H{
		"message":  "Favoriler eşitlendi",
		"added":    diff.ToAdd,
		"removed":  diff.ToRemove,
		"skipped":  diff.Skipped,
		"complete": err == nil,
	}
	c.JSON(http.StatusOK, resp)
}
