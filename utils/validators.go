// File: /utils/validators.go
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"etkinlik-api/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	MinCategories = 1
	MaxCategories = 3
)

// ValidationError names the offending field and carries the message shown to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

var (
	registerOnce  sync.Once
	colorPattern  = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[a-zA-Z]{3,20})$`)
	passwordClass = []func(rune) bool{
		unicode.IsUpper,
		unicode.IsLower,
		unicode.IsNumber,
		func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) },
	}
)

// RegisterValidators installs the custom binding tags on gin's validator.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("rotation", func(fl validator.FieldLevel) bool {
			return models.ValidRotation(int(fl.Field().Int()))
		})
		_ = v.RegisterValidation("hexcolor_or_name", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || colorPattern.MatchString(s)
		})
	})
}

// ValidateCategoryIDs enforces 1-3 distinct category ids.
func ValidateCategoryIDs(ids []uint) *ValidationError {
	if len(ids) < MinCategories {
		return &ValidationError{Field: "categoryIds", Message: "En az bir kategori seçmelisiniz"}
	}
	if len(ids) > MaxCategories {
		return &ValidationError{Field: "categoryIds", Message: fmt.Sprintf("En fazla %d kategori seçebilirsiniz", MaxCategories)}
	}
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			return &ValidationError{Field: "categoryIds", Message: "Geçersiz kategori"}
		}
		if _, dup := seen[id]; dup {
			return &ValidationError{Field: "categoryIds", Message: "Aynı kategori birden fazla kez seçilemez"}
		}
		seen[id] = struct{}{}
	}
	return nil
}

// TranslateBindError turns a binding failure into a user-facing message.
func TranslateBindError(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Message: fieldMessage(fe)}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{Field: typeErr.Field, Message: fmt.Sprintf("%s alanının türü hatalı", typeErr.Field)}
	}
	return &ValidationError{Message: MsgInvalidBody}
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s alanı zorunludur", field)
	case "email":
		return "Geçerli bir e-posta adresi girin"
	case "datetime":
		if fe.Param() == "15:04" {
			return fmt.Sprintf("%s alanı SS:DD biçiminde olmalı", field)
		}
		return fmt.Sprintf("%s alanı YYYY-AA-GG biçiminde olmalı", field)
	case "rotation":
		return "Döndürme açısı 0, 90, 180 veya 270 olmalı"
	case "hexcolor_or_name":
		return "Renk #RRGGBB biçiminde ya da bir renk adı olmalı"
	case "min", "gte":
		return fmt.Sprintf("%s alanı en az %s olmalı", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s alanı en fazla %s olmalı", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s alanı şunlardan biri olmalı: %s", field, fe.Param())
	case "latitude", "longitude":
		return fmt.Sprintf("%s alanı geçerli bir koordinat olmalı", field)
	case "url":
		return fmt.Sprintf("%s alanı geçerli bir adres olmalı", field)
	default:
		return fmt.Sprintf("%s alanı geçersiz", field)
	}
}

// IsValidPassword requires at least 8 characters drawn from three of the four
// classes: upper, lower, digit, symbol.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	count := 0
	for _, class := range passwordClass {
		for _, char := range password {
			if class(char) {
				count++
				break
			}
		}
	}
	return count >= 3
}
