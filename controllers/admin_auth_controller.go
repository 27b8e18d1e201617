package controllers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"etkinlik-api/config"
	"etkinlik-api/services"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthController implements the two-step admin login: password, then an
// emailed one-time code that is exchanged for a signed session token.
type AdminAuthController struct {
	cfg    config.AuthConfig
	email  *services.EmailService
	tokens *services.TokenService
	log    *logrus.Logger
}

func NewAdminAuthController(cfg config.AuthConfig, email *services.EmailService, tokens *services.TokenService, log *logrus.Logger) *AdminAuthController {
	return &AdminAuthController{cfg: cfg, email: email, tokens: tokens, log: log}
}

type AdminCredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AdminCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

func (ac *AdminAuthController) credentialsMatch(email, password string) bool {
	want := strings.ToLower(strings.TrimSpace(ac.cfg.AdminEmail))
	got := strings.ToLower(strings.TrimSpace(email))
	emailOK := want != "" && subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1

	// bcrypt runs even when the email already failed
	passErr := bcrypt.CompareHashAndPassword([]byte(ac.cfg.AdminPasswordHash), []byte(password))
	return emailOK && passErr == nil
}

// SendVerification checks the admin credentials and mails a one-time code.
func (ac *AdminAuthController) SendVerification(c *gin.Context) {
	var req AdminCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}

	if !ac.credentialsMatch(req.Email, req.Password) {
		ac.log.WithFields(logrus.Fields{"email": req.Email, "ip": c.ClientIP()}).Warn("admin login rejected")
		utils.SendError(c, http.StatusUnauthorized, "E-posta veya şifre hatalı")
		return
	}

	code, err := ac.email.SendAdminCode(req.Email)
	if err != nil {
		ac.log.WithError(err).Error("failed to send admin verification code")
		utils.SendError(c, http.StatusInternalServerError, "Doğrulama kodu gönderilemedi, lütfen tekrar deneyin")
		return
	}

	response := gin.H{"message": "Doğrulama kodu e-posta adresinize gönderildi"}
	if showDebugCode(ac.email) {
		response["debugCode"] = code
	}
	c.JSON(http.StatusOK, response)
}

// VerifyCode exchanges a valid code for an admin session token.
func (ac *AdminAuthController) VerifyCode(c *gin.Context) {
	var req AdminCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}

	if !strings.EqualFold(strings.TrimSpace(req.Email), strings.TrimSpace(ac.cfg.AdminEmail)) ||
		!ac.email.VerifyCode(services.PurposeAdminLogin, req.Email, req.Code) {
		utils.SendError(c, http.StatusUnauthorized, "Doğrulama kodu geçersiz veya süresi dolmuş")
		return
	}

	token, expires, err := ac.tokens.IssueAdmin(req.Email)
	if err != nil {
		ac.log.WithError(err).Error("failed to issue admin token")
		utils.SendError(c, http.StatusInternalServerError, utils.MsgInternal)
		return
	}

	ac.log.WithField("ip", c.ClientIP()).Info("admin session started")
	c.JSON(http.StatusOK, gin.H{
		"message":   "Giriş başarılı",
		"token":     token,
		"expiresAt": expires,
	})
}

// Session lets the panel check that its stored token is still valid.
func (ac *AdminAuthController) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}
