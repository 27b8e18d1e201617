// File: /controllers/auth_controller.go
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"etkinlik-api/models"
	"etkinlik-api/repositories"
	"etkinlik-api/services"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type AuthController struct {
	users  *repositories.UserRepository
	email  *services.EmailService
	tokens *services.TokenService
	log    *logrus.Logger
}

func NewAuthController(users *repositories.UserRepository, email *services.EmailService, tokens *services.TokenService, log *logrus.Logger) *AuthController {
	return &AuthController{users: users, email: email, tokens: tokens, log: log}
}

type RegisterRequest struct {
	Name      string   `json:"name" binding:"required,max=255"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required"`
	Phone     string   `json:"phone" binding:"max=50"`
	BirthYear *int     `json:"birthYear" binding:"omitempty,min=1900,max=2100"`
	Gender    string   `json:"gender" binding:"max=20"`
	District  string   `json:"district" binding:"max=100"`
	Interests []string `json:"interests"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func interestsJSON(interests []string) datatypes.JSON {
	if interests == nil {
		interests = []string{}
	}
	raw, _ := json.Marshal(interests)
	return datatypes.JSON(raw)
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}
	if !utils.IsValidPassword(req.Password) {
		utils.SendValidationError(c, &utils.ValidationError{
			Field:   "password",
			Message: "Şifre en az 8 karakter olmalı ve büyük harf, küçük harf, rakam ve sembolden en az üçünü içermeli",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		ac.log.WithError(err).Error("failed to hash password")
		utils.SendError(c, http.StatusInternalServerError, utils.MsgInternal)
		return
	}

	user := models.User{
		Name:          strings.TrimSpace(req.Name),
		Email:         req.Email,
		Phone:         req.Phone,
		Password:      string(hashedPassword),
		BirthYear:     req.BirthYear,
		Gender:        req.Gender,
		District:      req.District,
		Interests:     interestsJSON(req.Interests),
		IsActive:      true,
		EmailVerified: false,
	}
	if err := ac.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			utils.SendError(c, http.StatusConflict, "Bu e-posta adresi zaten kayıtlı")
			return
		}
		respondStoreError(c, ac.log, err, "", "register user")
		return
	}

	message := "Kayıt başarılı! E-posta adresinize gönderilen kodu girerek hesabınızı doğrulayın."
	if _, err := ac.email.SendVerificationEmail(user.Email, user.Name); err != nil {
		ac.log.WithError(err).WithField("user_id", user.ID).Warn("verification email not sent")
		message = "Kayıt başarılı ancak doğrulama e-postası gönderilemedi. Lütfen kodu tekrar isteyin."
	}

	c.JSON(http.StatusCreated, gin.H{"message": message, "user": user})
}

func (ac *AuthController) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}

	user, err := ac.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondStoreError(c, ac.log, err, "Kullanıcı bulunamadı", "verify email lookup")
		return
	}
	if user.EmailVerified {
		utils.SendError(c, http.StatusBadRequest, "E-posta adresi zaten doğrulanmış")
		return
	}
	if !ac.email.VerifyCode(services.PurposeEmailVerify, user.Email, req.Code) {
		utils.SendError(c, http.StatusBadRequest, "Doğrulama kodu geçersiz veya süresi dolmuş")
		return
	}
	if err := ac.users.MarkVerified(c.Request.Context(), user.ID); err != nil {
		respondStoreError(c, ac.log, err, "Kullanıcı bulunamadı", "mark verified")
		return
	}
	user.EmailVerified = true

	go func(email, name string) {
		if err := ac.email.SendWelcomeEmail(email, name); err != nil {
			ac.log.WithError(err).WithField("email", email).Warn("welcome email not sent")
		}
	}(user.Email, user.Name)

	token, _, err := ac.tokens.IssueUser(user.ID, user.Email)
	if err != nil {
		ac.log.WithError(err).Error("failed to issue user token")
		utils.SendError(c, http.StatusInternalServerError, utils.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "E-posta adresiniz doğrulandı", "token": token, "user": user})
}

func (ac *AuthController) ResendVerification(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}

	user, err := ac.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondStoreError(c, ac.log, err, "Kullanıcı bulunamadı", "resend lookup")
		return
	}
	if user.EmailVerified {
		utils.SendError(c, http.StatusBadRequest, "E-posta adresi zaten doğrulanmış")
		return
	}

	code, err := ac.email.SendVerificationEmail(user.Email, user.Name)
	if err != nil {
		ac.log.WithError(err).WithField("user_id", user.ID).Error("failed to resend verification email")
		utils.SendError(c, http.StatusInternalServerError, "Doğrulama e-postası gönderilemedi")
		return
	}

	response := gin.H{"message": "Doğrulama kodu e-posta adresinize gönderildi"}
	if showDebugCode(ac.email) {
		response["debugCode"] = code
	}
	c.JSON(http.StatusOK, response)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}

	user, err := ac.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.SendError(c, http.StatusUnauthorized, "E-posta veya şifre hatalı")
			return
		}
		respondStoreError(c, ac.log, err, "", "login lookup")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.SendError(c, http.StatusUnauthorized, "E-posta veya şifre hatalı")
		return
	}
	if !user.IsActive {
		utils.SendError(c, http.StatusForbidden, "Hesabınız askıya alınmış")
		return
	}
	if !user.EmailVerified {
		c.JSON(http.StatusForbidden, utils.ErrorResponse{
			Error: "Giriş yapmadan önce e-posta adresinizi doğrulamalısınız",
			Code:  "email_not_verified",
		})
		return
	}

	token, _, err := ac.tokens.IssueUser(user.ID, user.Email)
	if err != nil {
		ac.log.WithError(err).Error("failed to issue user token")
		utils.SendError(c, http.StatusInternalServerError, utils.MsgInternal)
		return
	}
	if err := ac.users.TouchLogin(c.Request.Context(), user.ID); err != nil {
		ac.log.WithError(err).WithField("user_id", user.ID).Warn("could not record login time")
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: *user})
}
