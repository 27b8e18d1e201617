// File: /utils/response.go
package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Generic messages shown to clients. Details stay in the log.
const (
	MsgInternal      = "Beklenmeyen bir hata oluştu, lütfen daha sonra tekrar deneyin"
	MsgInvalidID     = "Geçersiz kimlik"
	MsgInvalidBody   = "Geçersiz istek gövdesi"
	MsgUnauthorized  = "Bu işlem için giriş yapmalısınız"
	MsgForbidden     = "Bu işlem için yetkiniz yok"
	MsgNotFound      = "Kayıt bulunamadı"
	MsgRateLimited   = "Çok fazla istek gönderdiniz, lütfen biraz bekleyin"
	MsgUnknownAction = "Geçersiz işlem. 'approve' veya 'reject' olmalı"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Code  string `json:"code,omitempty"`
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"totalPages"`
}

func SendError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func SendValidationError(c *gin.Context, err *ValidationError) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: err.Message,
		Field: err.Field,
		Code:  "validation_failed",
	})
}

// SendBindError answers a failed ShouldBind* with a Turkish message.
func SendBindError(c *gin.Context, err error) {
	SendValidationError(c, TranslateBindError(err))
}

func SendPaginated(c *gin.Context, data interface{}, page, limit int, total int64) {
	totalPages := 1
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

// ParseID reads a positive numeric path or query parameter.
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Pagination reads page/limit query params, clamping limit to maxLimit.
// A missing limit means "no paging" and returns 0.
func Pagination(c *gin.Context, maxLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("limit"))
	if limit < 0 {
		limit = 0
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
