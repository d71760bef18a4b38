package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct проверяет структуру по validate-тегам и возвращает
// карту поле -> описание ошибки (nil, если всё в порядке).
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = "This field is required"
		case "oneof":
			fields[name] = "Must be one of: " + fe.Param()
		case "min":
			fields[name] = "Must be at least " + fe.Param()
		case "max":
			fields[name] = "Must be at most " + fe.Param()
		default:
			fields[name] = "Invalid value"
		}
	}
	return fields
}
