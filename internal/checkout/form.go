package checkout

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

// ErrInvalidForm wraps any form validation failure.
var ErrInvalidForm = errors.New("invalid checkout form")

// Form carries the customer fields collected at checkout. All fields are
// trimmed before validation; Notes is the only optional field.
type Form struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,ngphone"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Notes     string `json:"notes"`
}

// Normalize trims surrounding whitespace from every field.
func (f *Form) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Notes = strings.TrimSpace(f.Notes)
}

// FullName joins the customer's first and last name.
func (f Form) FullName() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}

// FieldError marks one invalid field together with its user-facing message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldLabels maps struct fields to the labels shown on the page, in form
// declaration order. Validation errors surface in this order and the first
// one is what the toast displays.
var fieldLabels = map[string]string{
	"FirstName": "First Name",
	"LastName":  "Last Name",
	"Email":     "Email Address",
	"Phone":     "Phone Number",
	"Address":   "Delivery Address",
	"City":      "City",
	"State":     "State",
}

// nigerianMobile matches a local mobile number: +234 or a leading zero,
// a carrier prefix in 70x/80x/81x/90x/91x, then eight digits.
var nigerianMobile = regexp.MustCompile(`^(\+234|0)[789][01]\d{8}$`)

// ValidPhone reports whether the value is a well-formed Nigerian mobile
// number, ignoring grouping spaces.
func ValidPhone(value string) bool {
	return nigerianMobile.MatchString(strings.ReplaceAll(value, " ", ""))
}

// Validator validates checkout forms with the shared validation engine plus
// the local mobile-number rule.
type Validator struct {
	validate *validator.Validate
}

// NewValidator constructs a form validator with the ngphone rule registered.
func NewValidator() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("ngphone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("register ngphone rule: %w", err)
	}
	return &Validator{validate: v}, nil
}

// Validate normalizes the form and returns every offending field in
// declaration order. An empty slice means the form is valid. The caller
// surfaces only the first message but marks all returned fields.
func (v *Validator) Validate(form *Form) []FieldError {
	form.Normalize()
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "form", Message: "Something went wrong. Please try again."}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.StructField(),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		label := fieldLabels[fe.StructField()]
		if label == "" {
			label = fe.StructField()
		}
		return label + " is required"
	case "email":
		return "Please enter a valid email address"
	case "ngphone":
		return "Please enter a valid phone number"
	default:
		return fieldLabels[fe.StructField()] + " is invalid"
	}
}
