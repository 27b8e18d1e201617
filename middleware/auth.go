package middleware

import (
	"net/http"
	"strings"

	"etkinlik-api/services"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
)

const (
	claimsKey = "claims"
	userIDKey = "user_id"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// AdminAuth only lets requests with a valid admin session token through.
func AdminAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: utils.MsgUnauthorized})
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Oturum süresi doldu, lütfen tekrar giriş yapın"})
			return
		}
		if claims.Role != services.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Error: utils.MsgForbidden})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// UserAuth requires a user token and stores the user id on the context.
func UserAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: utils.MsgUnauthorized})
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil || claims.Role != services.RoleUser {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: utils.MsgUnauthorized})
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: utils.MsgUnauthorized})
			return
		}
		c.Set(claimsKey, claims)
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalUser records the user id when a valid user token is sent and lets
// anonymous requests through. A token that does not verify is rejected.
func OptionalUser(tokens *services.TokenService) gin.HandlerFunc {
	required := UserAuth(tokens)
	return func(c *gin.Context) {
		if bearerToken(c) == "" {
			c.Next()
			return
		}
		required(c)
	}
}

// UserID returns the id stored by UserAuth.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func Claims(c *gin.Context) (*services.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.Claims)
	return claims, ok
}
