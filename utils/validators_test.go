package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestValidateCategoryIDs(t *testing.T) {
	tests := []struct {
		name    string
		ids     []uint
		wantErr bool
	}{
		{"none", nil, true},
		{"one", []uint{1}, false},
		{"three", []uint{1, 2, 3}, false},
		{"four", []uint{1, 2, 3, 4}, true},
		{"zero id", []uint{0}, true},
		{"duplicate", []uint{2, 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategoryIDs(tt.ids)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Field != "categoryIds" {
				t.Errorf("field = %q", err.Field)
			}
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := map[string]bool{
		"kisa1A":        false,
		"sadecekucuk":   false,
		"kucukVEbuyuk":  false,
		"Kucuk1buyuk":   true,
		"rakam1sembol!": true,
		"ÇokGüçlü2025":  true,
	}
	for pw, want := range tests {
		if got := IsValidPassword(pw); got != want {
			t.Errorf("IsValidPassword(%q) = %v, want %v", pw, got, want)
		}
	}
}

type bindTarget struct {
	Title    string `json:"title" binding:"required"`
	Color    string `json:"color" binding:"hexcolor_or_name"`
	Rotation int    `json:"rotation" binding:"rotation"`
}

func TestTranslateBindErrorUsesJSONNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	tests := []struct {
		name      string
		body      string
		wantField string
		wantText  string
	}{
		{"missing title", `{"color":"#fff"}`, "title", "zorunludur"},
		{"bad color", `{"title":"a","color":"#12"}`, "color", "#RRGGBB"},
		{"bad rotation", `{"title":"a","rotation":45}`, "rotation", "270"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var target bindTarget
			err := c.ShouldBindJSON(&target)
			if err == nil {
				t.Fatal("expected bind error")
			}
			verr := TranslateBindError(err)
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
			if !strings.Contains(verr.Message, tt.wantText) {
				t.Errorf("message = %q", verr.Message)
			}
		})
	}
}

func TestPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 0},
		{"page=3&limit=20", 3, 20},
		{"page=-1&limit=500", 1, 100},
		{"page=x&limit=-5", 1, 0},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		page, limit := Pagination(c, 100)
		if page != tt.wantPage || limit != tt.wantLimit {
			t.Errorf("%q: got %d/%d, want %d/%d", tt.query, page, limit, tt.wantPage, tt.wantLimit)
		}
	}
}
