package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator is the validator instance shared across handlers.
var Validator *validator.Validate

// Trans translates validation errors into client-facing messages.
var Trans ut.Translator

func init() {
	Validator = validator.New()

	// Report json tag names instead of Go field names in errors.
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, found := uni.GetTranslator("en")
	if !found {
		log.Fatal("webutil: english translator not found")
	}
	Trans = trans

	if err := en_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatalf("webutil: failed to register validator translations: %v", err)
	}
}
