package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"etkinlik-api/repositories"
	"etkinlik-api/services"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondStoreError maps repository errors onto the HTTP error taxonomy.
// Anything unexpected is logged and answered with a generic 500.
func respondStoreError(c *gin.Context, log *logrus.Logger, err error, notFoundMsg, op string) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, repositories.ErrUnknownCategory):
		utils.SendValidationError(c, &utils.ValidationError{Field: "categoryIds", Message: "Seçilen kategorilerden biri bulunamadı"})
	default:
		log.WithError(err).WithField("op", op).Error("store operation failed")
		utils.SendError(c, http.StatusInternalServerError, utils.MsgInternal)
	}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		utils.SendError(c, http.StatusBadRequest, utils.MsgInvalidID)
	}
	return id, ok
}

func queryID(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Query(name))
	if !ok {
		utils.SendError(c, http.StatusBadRequest, utils.MsgInvalidID)
	}
	return id, ok
}

func queryBool(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// FlexID accepts an id sent either as a JSON number or a numeric string.
type FlexID uint

func (f *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Field: "id"}
	}
	*f = FlexID(id)
	return nil
}

// categorySelection is embedded in every event/venue write request.
// The single categoryId form is still accepted from older clients.
type categorySelection struct {
	CategoryIDs []uint `json:"categoryIds"`
	CategoryID  *uint  `json:"categoryId"`
}

func (s categorySelection) ids() []uint {
	if len(s.CategoryIDs) == 0 && s.CategoryID != nil {
		return []uint{*s.CategoryID}
	}
	return s.CategoryIDs
}

// bindWithCategories binds the JSON body and checks the 1-3 category rule
// before anything is written.
func bindWithCategories(c *gin.Context, req interface{ ids() []uint }) ([]uint, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.SendBindError(c, err)
		return nil, false
	}
	ids := req.ids()
	if verr := utils.ValidateCategoryIDs(ids); verr != nil {
		utils.SendValidationError(c, verr)
		return nil, false
	}
	return ids, true
}

// showDebugCode puts one-time codes in responses only for local setups that
// run in debug mode without an SMTP server.
func showDebugCode(email *services.EmailService) bool {
	return gin.Mode() == gin.DebugMode && !email.Delivers()
}
