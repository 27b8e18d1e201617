package controllers

import (
	"errors"
	"net/http"

	"etkinlik-api/services"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const msgFileTooLarge = "Dosya çok büyük. Görseller en fazla 5 MB, videolar en fazla 100 MB olabilir"

type UploadController struct {
	uploads *services.UploadService
	log     *logrus.Logger
}

func NewUploadController(uploads *services.UploadService, log *logrus.Logger) *UploadController {
	return &UploadController{uploads: uploads, log: log}
}

// Upload stores the multipart "file" field and returns its public URL.
func (uc *UploadController) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uc.uploads.MaxRequestBytes())
	fh, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, utils.ErrorResponse{Error: msgFileTooLarge, Field: "file"})
		return
	}
	if err != nil {
		utils.SendValidationError(c, &utils.ValidationError{Field: "file", Message: "Yüklenecek dosya bulunamadı"})
		return
	}

	stored, err := uc.uploads.Save(fh)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrEmptyFile):
		utils.SendValidationError(c, &utils.ValidationError{Field: "file", Message: "Dosya boş"})
		return
	case errors.Is(err, services.ErrUnsupportedType):
		utils.SendValidationError(c, &utils.ValidationError{Field: "file", Message: "Desteklenmeyen dosya türü. JPEG, PNG, GIF, WEBP, MP4, WEBM veya MOV yükleyin"})
		return
	case errors.Is(err, services.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, utils.ErrorResponse{Error: msgFileTooLarge, Field: "file"})
		return
	case errors.Is(err, services.ErrImageDimensions):
		utils.SendValidationError(c, &utils.ValidationError{Field: "file", Message: "Görsel çözünürlüğü çok yüksek"})
		return
	default:
		uc.log.WithError(err).WithField("filename", fh.Filename).Error("upload failed")
		utils.SendError(c, http.StatusInternalServerError, "Dosya yüklenemedi")
		return
	}

	c.JSON(http.StatusOK, stored)
}
