package validation

import (
	"errors"
	"mime/multipart"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegistrationInput carries the raw form fields exactly as submitted.
// Text fields stay strings; coercion happens inside Validate.
type RegistrationInput struct {
	ID       string
	Name     string
	Email    string
	Password string
	Phone    string
	NID      string
	Age      string
	File     *multipart.FileHeader
}

// Registration is the accepted, coerced record ready for submission.
type Registration struct {
	ID       int
	Name     string
	Email    string
	Password string
	Phone    string
	NID      string
	Age      int
}

// FieldErrors maps a form field name to a single human-readable message.
// Fields are independent, so several fields can carry errors at once, but
// each field reports only its first failing rule.
type FieldErrors map[string]string

func (fe FieldErrors) set(field, msg string) {
	if _, seen := fe[field]; !seen {
		fe[field] = msg
	}
}

var (
	nameRe  = regexp.MustCompile(`^[A-Z][A-Za-z\s]*$`)
	phoneRe = regexp.MustCompile(`^01\d{9}$`)
	nidRe   = regexp.MustCompile(`^\d{10,17}$`)
)

// checkedRegistration exists only to drive the validator; tag order within a
// field decides which rule reports first.
type checkedRegistration struct {
	ID       int    `form:"id" validate:"gt=0"`
	Name     string `form:"name" validate:"min=5,admin_name"`
	Email    string `form:"email" validate:"email"`
	Password string `form:"password" validate:"min=8"`
	Phone    string `form:"phone" validate:"bd_phone"`
	NID      string `form:"nid" validate:"bd_nid"`
	Age      int    `form:"age" validate:"gte=18"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	mustRegister(v, "admin_name", nameRe)
	mustRegister(v, "bd_phone", phoneRe)
	mustRegister(v, "bd_nid", nidRe)
	return v
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic("registering validation " + tag + ": " + err.Error())
	}
}

// messages keyed by field name, then failing tag.
var messages = map[string]map[string]string{
	"id":       {"gt": "ID must be a positive number"},
	"name":     {"min": "Name must be at least 5 characters", "admin_name": "Name should start with a capital letter and contain only alphabets"},
	"email":    {"email": "Please enter a valid email"},
	"password": {"min": "Password must be at least 8 characters long"},
	"phone":    {"bd_phone": "Phone number must be 11 digits and start with 01"},
	"nid":      {"bd_nid": "NID must be 10 to 17 digits"},
	"age":      {"gte": "Admin must be at least 18 years old"},
}

var requiredFields = []struct {
	field string
	label string
	value func(RegistrationInput) string
}{
	{"id", "ID", func(in RegistrationInput) string { return in.ID }},
	{"name", "Name", func(in RegistrationInput) string { return in.Name }},
	{"email", "Email", func(in RegistrationInput) string { return in.Email }},
	{"password", "Password", func(in RegistrationInput) string { return in.Password }},
	{"phone", "Phone number", func(in RegistrationInput) string { return in.Phone }},
	{"nid", "NID number", func(in RegistrationInput) string { return in.NID }},
	{"age", "Age", func(in RegistrationInput) string { return in.Age }},
}

// Validate checks a registration candidate and returns either the coerced
// record or per-field errors. It is a pure function over its inputs: no I/O,
// no mutation of the input.
//
// The required check takes precedence over format rules; an empty field never
// reports a format message. Non-numeric id/age fail with a type message
// attributed to that field.
func Validate(in RegistrationInput) (*Registration, FieldErrors) {
	fieldErrs := FieldErrors{}

	for _, rf := range requiredFields {
		if strings.TrimSpace(rf.value(in)) == "" {
			fieldErrs.set(rf.field, rf.label+" is required")
		}
	}

	id, err := strconv.Atoi(strings.TrimSpace(in.ID))
	if err != nil {
		fieldErrs.set("id", "ID must be a number")
	}
	age, err := strconv.Atoi(strings.TrimSpace(in.Age))
	if err != nil {
		fieldErrs.set("age", "Age must be a number")
	}

	if err := CheckProfileImage(in.File); err != nil {
		fieldErrs.set("file", fileMessage(err))
	}

	checked := checkedRegistration{
		ID:       id,
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
		Phone:    strings.TrimSpace(in.Phone),
		NID:      strings.TrimSpace(in.NID),
		Age:      age,
	}

	if err := validate.Struct(checked); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			for _, fe := range vErrs {
				if msg, ok := messages[fe.Field()][fe.Tag()]; ok {
					fieldErrs.set(fe.Field(), msg)
				} else {
					fieldErrs.set(fe.Field(), "Invalid value")
				}
			}
		} else {
			// Non-field error from the validator means a programming bug,
			// not bad input.
			panic(err)
		}
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	return &Registration{
		ID:       checked.ID,
		Name:     checked.Name,
		Email:    checked.Email,
		Password: checked.Password,
		Phone:    checked.Phone,
		NID:      checked.NID,
		Age:      checked.Age,
	}, nil
}

func fileMessage(err error) string {
	switch {
	case errors.Is(err, ErrImageTooLarge):
		return "File size must be less than 2MB"
	case errors.Is(err, ErrNotAnImage), errors.Is(err, ErrUnknownMimeType):
		return "Only image files are allowed"
	}
	return "Invalid file"
}
