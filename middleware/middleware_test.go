package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"etkinlik-api/services"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAdminAuth(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour, time.Hour)
	admin, _, _ := tokens.IssueAdmin("admin@example.com")
	user, _, _ := tokens.IssueUser(3, "ali@example.com")

	r := gin.New()
	r.GET("/admin", AdminAuth(tokens), func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.Email)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"user token", "Bearer " + user, http.StatusForbidden},
		{"admin token", "Bearer " + admin, http.StatusOK},
		{"lowercase scheme", "bearer " + admin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestUserAuthSetsUserID(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour, time.Hour)
	user, _, _ := tokens.IssueUser(42, "ali@example.com")
	admin, _, _ := tokens.IssueAdmin("admin@example.com")

	r := gin.New()
	r.GET("/me", UserAuth(tokens), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+user)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":42`) {
		t.Errorf("user token: %d %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("admin token on user route: %d", w.Code)
	}
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	r := gin.New()
	r.POST("/submit", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusCreated || codes[1] != http.StatusCreated || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	rl.CleanupLimiters(-time.Second)
	if len(rl.limiters) != 0 {
		t.Errorf("limiters after cleanup = %d", len(rl.limiters))
	}
}

func TestValidateJSON(t *testing.T) {
	r := gin.New()
	r.Use(ValidateJSON("/upload"))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.POST("/events", ok)
	r.POST("/upload", ok)

	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		want        int
	}{
		{"json", "/events", "application/json; charset=utf-8", `{}`, http.StatusOK},
		{"form body", "/events", "application/x-www-form-urlencoded", "a=b", http.StatusUnsupportedMediaType},
		{"empty body", "/events", "", "", http.StatusOK},
		{"multipart upload", "/upload", "multipart/form-data; boundary=x", "--x--", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
