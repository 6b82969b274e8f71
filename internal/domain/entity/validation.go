package entity

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	translator   ut.Translator
)

// initValidator builds the shared validator. Field names in messages use the
// JSON tag so API clients see the names they sent.
func initValidator() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	locale := en.New()
	uni := ut.New(locale, locale)
	translator, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks v against its `validate` struct tags.
// It returns nil or a *ValidationError describing the first failing field.
func Validate(v any) error {
	validateOnce.Do(initValidator)

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		// InvalidValidationError: a programming error such as passing a nil pointer
		return &ValidationError{Field: "", Message: "invalid payload"}
	}

	fe := fieldErrs[0]
	msg := strings.TrimPrefix(fe.Translate(translator), fe.Field()+" ")
	return &ValidationError{Field: fe.Field(), Message: msg}
}
