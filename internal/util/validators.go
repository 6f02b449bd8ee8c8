package util

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateSlug 验证分组slug：只允许字母、数字、连字符和下划线
func ValidateSlug(fl validator.FieldLevel) bool {
	slug, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return slugPattern.MatchString(slug)
}
