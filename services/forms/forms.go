// Package forms binds submitted forms and checks them before any API call.
// Rules live in binding tags; failures become a *ValidationError carrying the
// message shown to the user.
package forms

import (
	"errors"
	"regexp"
	"strings"

	"servicehub/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	hasLetter    = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit     = regexp.MustCompile(`\d`)
)

const (
	passwordMessage = "Password must be at least 8 characters and include a number"
	invalidRequest  = "Invalid request"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
			return IsValidEmail(NormalizeEmail(fl.Field().String()))
		})
		_ = v.RegisterValidation("letterdigit", func(fl validator.FieldLevel) bool {
			pw := fl.Field().String()
			return hasLetter.MatchString(pw) && hasDigit.MatchString(pw)
		})
	}
}

// ValidationError is a form problem caught before any network call.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// Messages maps a failed rule to its user-facing text. Lookup order is
// "Field.tag", then "tag", then "Field", then "".
type Messages map[string]string

func (m Messages) lookup(fe validator.FieldError) string {
	for _, key := range []string{fe.Field() + "." + fe.Tag(), fe.Tag(), fe.Field(), ""} {
		if msg, ok := m[key]; ok {
			return msg
		}
	}
	return invalidRequest
}

func isMissing(fe validator.FieldError) bool {
	switch fe.Tag() {
	case "required", "notblank":
		return true
	}
	return false
}

// Bind binds the request into dst. Missing fields are reported before
// malformed ones; a body that cannot be decoded at all is reported with
// the "" message.
func Bind(c *gin.Context, dst any, msgs Messages) error {
	err := c.ShouldBind(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		msg, ok := msgs[""]
		if !ok {
			msg = invalidRequest
		}
		return &ValidationError{Message: msg, Err: err}
	}

	picked := fieldErrs[0]
	for _, fe := range fieldErrs {
		if isMissing(fe) {
			picked = fe
			break
		}
	}
	return &ValidationError{Message: msgs.lookup(picked), Err: err}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether email looks like an address.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// LoginForm is the login page submission.
type LoginForm struct {
	Email    string `form:"email" json:"email" binding:"required,looseemail"`
	Password string `form:"password" json:"password" binding:"required"`
}

var loginMessages = Messages{"": "Please enter a valid email and password."}

// Bind reads the login form and normalises the email. The form keeps what
// was submitted even on error so the page can show it again.
func (f *LoginForm) Bind(c *gin.Context) error {
	err := Bind(c, f, loginMessages)
	f.Email = NormalizeEmail(f.Email)
	return err
}

// SignupForm is the signup page submission. Role defaults to customer.
type SignupForm struct {
	Name            string   `form:"name" json:"name" binding:"required,notblank"`
	Email           string   `form:"email" json:"email" binding:"required,looseemail"`
	Password        string   `form:"password" json:"password" binding:"required,min=8,letterdigit"`
	ConfirmPassword string   `form:"confirmPassword" json:"confirmPassword" binding:"required,eqfield=Password"`
	Role            string   `form:"role" json:"role" binding:"omitempty,oneof=customer provider"`
	Services        []string `form:"services" json:"services" binding:"required_if=Role provider"`
}

var signupMessages = Messages{
	"required":                "All fields are required",
	"notblank":                "All fields are required",
	"Email":                   "Please enter a valid email address",
	"Password":                passwordMessage,
	"ConfirmPassword.eqfield": "Passwords do not match",
	"Role":                    "Please choose customer or provider",
	"Services":                "Please select at least one service",
}

// Bind reads the signup form and returns the registration request to send.
func (f *SignupForm) Bind(c *gin.Context) (models.RegisterRequest, error) {
	err := Bind(c, f, signupMessages)
	f.Name = strings.TrimSpace(f.Name)
	f.Email = NormalizeEmail(f.Email)
	if err != nil {
		return models.RegisterRequest{}, err
	}

	role := models.RoleCustomer
	if f.Role != "" {
		role = models.Role(f.Role)
	}

	services := []string{}
	if role == models.RoleProvider {
		for _, id := range f.Services {
			if id = strings.TrimSpace(id); id != "" {
				services = append(services, id)
			}
		}
		if len(services) == 0 {
			return models.RegisterRequest{}, invalid(signupMessages["Services"])
		}
	}

	return models.RegisterRequest{
		Name:     f.Name,
		Email:    f.Email,
		Password: f.Password,
		Role:     role,
		Services: services,
	}, nil
}

var bookingMessages = Messages{
	"required": "Please fill all required fields",
	"notblank": "Please fill all required fields",
	"Email":    "Please enter a valid email address",
}

// BindBooking reads the customer booking form and trims its fields.
func BindBooking(c *gin.Context, req *models.CreateBookingRequest) error {
	if err := Bind(c, req, bookingMessages); err != nil {
		return err
	}
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	req.ScheduledAt = strings.TrimSpace(req.ScheduledAt)
	req.Notes = strings.TrimSpace(req.Notes)
	req.Email = NormalizeEmail(req.Email)
	return nil
}

var serviceMessages = Messages{"": "Job name and price are required."}

// BindService reads the admin service form.
func BindService(c *gin.Context, in *models.ServiceInput) error {
	if err := Bind(c, in, serviceMessages); err != nil {
		return err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return nil
}
