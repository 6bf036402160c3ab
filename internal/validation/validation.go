// Package validation wraps go-playground/validator with the field formats
// used across the academic entities and reports failures as a
// field -> messages map suitable for API responses.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NonFieldKey indexes cross-field (form-level) errors in FieldErrors.
const NonFieldKey = ""

// FieldErrors maps a field name to one or more human-readable messages.
// The NonFieldKey entry holds errors that do not belong to a single field.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Empty reports whether no errors were collected.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

var (
	courseNameRegex   = regexp.MustCompile(`^[A-Za-z0-9\s&\-()]+$`)
	courseCodeRegex   = regexp.MustCompile(`^[A-Z0-9_-]{2,12}$`)
	paperCodeRegex    = regexp.MustCompile(`^[A-Z0-9\-\s]{2,16}$`)
	academicYearRegex = regexp.MustCompile(`^\d{4}-\d{4}$`)
	regnoRegex        = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// messages for the custom tags plus the builtin ones we rely on.
var tagMessages = map[string]string{
	"required":      "this field is required",
	"email":         "enter a valid email address",
	"course_name":   "course name contains invalid characters",
	"course_code":   "course ID should be uppercase/digits/hyphen (2-12 chars)",
	"paper_code":    "paper code should be uppercase letters/digits/hyphen and 2-16 chars",
	"academic_year": "year should be in format YYYY-YYYY (e.g. 2023-2024)",
	"regno":         "registration number can contain letters, digits, hyphen and underscore only",
	"max":           "value is too large",
	"min":           "value is too small",
	"gt":            "value must be greater than the minimum",
	"lte":           "value exceeds the allowed maximum",
	"oneof":         "value is not one of the allowed choices",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report errors under JSON field names, not Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "course_name", courseNameRegex)
	mustRegister(v, "course_code", courseCodeRegex)
	mustRegister(v, "paper_code", paperCodeRegex)
	mustRegister(v, "academic_year", academicYearRegex)
	mustRegister(v, "regno", regnoRegex)

	return v
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Struct validates the tagged fields of s and returns the collected
// field errors, or nil when everything passes.
func Struct(s interface{}) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fe := FieldErrors{}
		fe.Add(NonFieldKey, err.Error())
		return fe
	}

	fe := FieldErrors{}
	for _, f := range fieldErrs {
		msg, known := tagMessages[f.Tag()]
		if !known {
			msg = "invalid value"
		}
		fe.Add(f.Field(), msg)
	}
	return fe
}
