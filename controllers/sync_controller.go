package controllers

import (
	"net/http"
	"time"

	"etkinlik-api/repositories"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SyncController struct {
	sync *repositories.SyncRepository
	log  *logrus.Logger
}

func NewSyncController(sync *repositories.SyncRepository, log *logrus.Logger) *SyncController {
	return &SyncController{sync: sync, log: log}
}

// GetStatus reports count and last change per collection for polling clients.
func (sc *SyncController) GetStatus(c *gin.Context) {
	status, err := sc.sync.Status(c.Request.Context())
	if err != nil {
		respondStoreError(c, sc.log, err, "", "sync status")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"collections": status,
		"serverTime":  time.Now().UTC(),
	})
}
