// File: /controllers/user_controller.go
package controllers

import (
	"net/http"

	"etkinlik-api/middleware"
	"etkinlik-api/repositories"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	users *repositories.UserRepository
	log   *logrus.Logger
}

func NewUserController(users *repositories.UserRepository, log *logrus.Logger) *UserController {
	return &UserController{users: users, log: log}
}

type UpdateProfileRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Phone           *string  `json:"phone" binding:"omitempty,max=50"`
	BirthYear       *int     `json:"birthYear" binding:"omitempty,min=1900,max=2100"`
	Gender          *string  `json:"gender" binding:"omitempty,max=20"`
	District        *string  `json:"district" binding:"omitempty,max=100"`
	Interests       []string `json:"interests"`
	ProfileImageURL *string  `json:"profileImageUrl" binding:"omitempty,max=1000"`
}

type UserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	user, err := uc.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, uc.log, err, "Kullanıcı bulunamadı", "get profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.BirthYear != nil {
		updates["birth_year"] = *req.BirthYear
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.District != nil {
		updates["district"] = *req.District
	}
	if req.Interests != nil {
		updates["interests"] = interestsJSON(req.Interests)
	}
	if req.ProfileImageURL != nil {
		updates["profile_image_url"] = *req.ProfileImageURL
	}

	user, err := uc.users.Update(c.Request.Context(), userID, updates)
	if err != nil {
		respondStoreError(c, uc.log, err, "Kullanıcı bulunamadı", "update profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profil güncellendi", "user": user})
}

// =====================================================
// ADMIN
// =====================================================

func (uc *UserController) GetUsers(c *gin.Context) {
	page, limit := utils.Pagination(c, maxPageSize)
	if limit == 0 {
		limit = 20
	}
	users, total, err := uc.users.List(c.Request.Context(), repositories.UserFilter{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondStoreError(c, uc.log, err, "", "list users")
		return
	}
	utils.SendPaginated(c, users, page, limit, total)
}

func (uc *UserController) SetUserStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}

	user, err := uc.users.Update(c.Request.Context(), id, map[string]interface{}{"is_active": *req.IsActive})
	if err != nil {
		respondStoreError(c, uc.log, err, "Kullanıcı bulunamadı", "set user status")
		return
	}
	uc.log.WithFields(logrus.Fields{"user_id": id, "is_active": *req.IsActive}).Info("user status changed")
	c.JSON(http.StatusOK, gin.H{"message": "Kullanıcı durumu güncellendi", "user": user})
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := uc.users.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, uc.log, err, "Kullanıcı bulunamadı", "delete user")
		return
	}
	uc.log.WithField("user_id", id).Info("user deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Kullanıcı silindi"})
}
