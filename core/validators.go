package core

import (
	"reflect"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Translator is the app-wide validation error translator. It is set by InitValidators at startup.
var Translator ut.Translator

var (
	// custom validation tags & texts
	personIDTag    = "personid"
	personIDText   = "must be a valid person identifier"
	studentIDRegex = regexp.MustCompile(`^[A-Z]{2,5}-[A-Z]{2,5}-\d{4}-\d{3}$`)
	uuidRegex      = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

	periodTag   = "period"
	periodText  = "must be an academic year label, e.g. 2023-2024"
	periodRegex = regexp.MustCompile(`^\d{4}-\d{4}$`)

	requiredTag  = "required"
	requiredText = "this field is required"
)

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	Translator = translator
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(personIDTag, personIDValidation)
	RegisterCustomTranslation(validate, translator, personIDTag, personIDText)

	_ = validate.RegisterValidation(periodTag, periodValidation)
	RegisterCustomTranslation(validate, translator, periodTag, periodText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// personIDValidation allows structured student IDs (INST-DEPT-YYYY-NNN) and uuid staff IDs.
func personIDValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	return studentIDRegex.MatchString(val) || uuidRegex.MatchString(strings.ToLower(val))
}

// periodValidation only allows academic-year labels ("2023-2024").
func periodValidation(fl validator.FieldLevel) bool {
	return periodRegex.MatchString(fl.Field().String())
}
