package api

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"materialmart/internal/apperr"

	"github.com/go-playground/validator/v10"
)

// price 最多 8 位整數與 2 位小數，對應 NUMERIC(10,2)
var priceRe = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)

// CustomValidator 將 go-playground/validator 包成 echo.Validator
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator 欄位名稱使用 json tag，並註冊 price 規則
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s == "" || priceRe.MatchString(s)
	})
	return &CustomValidator{validator: v}
}

// Validate 將 validator.ValidationErrors 轉為 *apperr.ValidationError
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return &apperr.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "price":
		return "Must be a number with at most 2 decimal places"
	default:
		return fmt.Sprintf("Failed on %s", fe.Tag())
	}
}
