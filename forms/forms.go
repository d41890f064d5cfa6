package forms

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is the singleton validator instance
	validate *validator.Validate

	// phoneRegex accepts an optional "+<country> <number>" value,
	// e.g. "+44 1234567899"; empty means no phone given
	phoneRegex = regexp.MustCompile(`^((\+[0-9]{0,4}) [0-9]{4,13})?$`)
)

func init() {
	validate = validator.New()

	// Report errors under the form field name rather than the Go name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
}

// AddCafeForm is the input for creating or editing a directory entry
type AddCafeForm struct {
	Name         string  `form:"name" validate:"required,min=2,max=50"`
	MapURL       string  `form:"map_url" validate:"required,url"`
	Location     string  `form:"location" validate:"required"`
	ImgURL       string  `form:"img_url" validate:"required,url"`
	Seats        string  `form:"seats" validate:"required,oneof=0-10 10-20 20-30 30-40 40-50 50+"`
	HasToilet    bool    `form:"has_toilet"`
	HasWifi      bool    `form:"has_wifi"`
	HasSockets   bool    `form:"has_sockets"`
	CanTakeCalls bool    `form:"can_take_calls"`
	CoffeePrice  float64 `form:"coffee_price" validate:"required"`

	// CoffeePriceRaw keeps the submitted text for re-rendering and for
	// reporting unparsable numbers
	CoffeePriceRaw string `form:"-" validate:"-"`
	priceInvalid   bool
}

// ParseAddCafeForm fills an AddCafeForm from the posted form values
func ParseAddCafeForm(r *http.Request) *AddCafeForm {
	f := &AddCafeForm{
		Name:           r.PostFormValue("name"),
		MapURL:         r.PostFormValue("map_url"),
		Location:       r.PostFormValue("location"),
		ImgURL:         r.PostFormValue("img_url"),
		Seats:          r.PostFormValue("seats"),
		HasToilet:      checkbox(r, "has_toilet"),
		HasWifi:        checkbox(r, "has_wifi"),
		HasSockets:     checkbox(r, "has_sockets"),
		CanTakeCalls:   checkbox(r, "can_take_calls"),
		CoffeePriceRaw: strings.TrimSpace(r.PostFormValue("coffee_price")),
	}
	if f.CoffeePriceRaw != "" {
		price, err := strconv.ParseFloat(f.CoffeePriceRaw, 64)
		if err != nil {
			f.priceInvalid = true
		} else {
			f.CoffeePrice = price
		}
	}
	return f
}

// Validate returns field-level error messages, or nil when the form is valid
func (f *AddCafeForm) Validate() map[string]string {
	errs := validateStruct(f)
	if f.priceInvalid {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["coffee_price"] = "Coffee price must be a number"
	}
	return errs
}

// ContactForm is the input for the contact page
type ContactForm struct {
	Name  string `form:"name" validate:"required,min=2,max=50"`
	Email string `form:"email" validate:"required,email,max=50"`
	Phone string `form:"phone" validate:"phone"`
	Body  string `form:"message" validate:"required,max=500"`
}

// ParseContactForm fills a ContactForm from the posted form values
func ParseContactForm(r *http.Request) *ContactForm {
	return &ContactForm{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Phone: strings.TrimSpace(r.PostFormValue("phone")),
		Body:  r.PostFormValue("message"),
	}
}

// Validate returns field-level error messages, or nil when the form is valid
func (f *ContactForm) Validate() map[string]string {
	return validateStruct(f)
}

// LoginForm is the input for the login page
type LoginForm struct {
	Email    string `form:"email" validate:"required,email,min=2,max=50"`
	Password string `form:"password" validate:"required,max=50"`
}

// ParseLoginForm fills a LoginForm from the posted form values
func ParseLoginForm(r *http.Request) *LoginForm {
	return &LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
}

// Validate returns field-level error messages, or nil when the form is valid
func (f *LoginForm) Validate() map[string]string {
	return validateStruct(f)
}

// RegisterForm is the input for the registration page
type RegisterForm struct {
	Email           string `form:"email" validate:"required,email,min=2,max=50"`
	Password        string `form:"password" validate:"required,min=8,max=50"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
}

// ParseRegisterForm fills a RegisterForm from the posted form values
func ParseRegisterForm(r *http.Request) *RegisterForm {
	return &RegisterForm{
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("password_confirm"),
	}
}

// Validate returns field-level error messages, or nil when the form is valid
func (f *RegisterForm) Validate() map[string]string {
	return validateStruct(f)
}

// checkbox reports whether an HTML checkbox was ticked
func checkbox(r *http.Request, name string) bool {
	return r.PostFormValue(name) != ""
}

// validateStruct runs the validator and maps each failed tag to a
// user-facing message keyed by the form field name
func validateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"form": "Invalid input"}
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			fields[field] = "This field is required"
		case "email":
			fields[field] = "Must be a valid email address"
		case "url":
			fields[field] = "Must be a valid URL"
		case "min":
			fields[field] = fmt.Sprintf("Must be at least %s characters", fe.Param())
		case "max":
			fields[field] = fmt.Sprintf("Must be at most %s characters", fe.Param())
		case "oneof":
			fields[field] = fmt.Sprintf("Must be one of: %s", fe.Param())
		case "eqfield":
			fields[field] = "Passwords must match"
		case "phone":
			fields[field] = "Invalid input. Example: +44 1234567899"
		default:
			fields[field] = fmt.Sprintf("Validation failed on '%s'", fe.Tag())
		}
	}
	return fields
}
