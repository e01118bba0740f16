package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mzigoego/mzigo/client"
)

const (
	MinPasswordLength = 8
	MinThreads        = 1
	MaxThreads        = 20
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// registerForm mirrors client.RegisterData with validation tags so the rules
// live in one place. Admin accounts are provisioned server-side, so "admin"
// is not a registrable role.
type registerForm struct {
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8"`
	PasswordConfirm string `validate:"required,eqfield=Password"`
	FirstName       string `validate:"required"`
	LastName        string `validate:"required"`
	Phone           string `validate:"required,e164"`
	Role            string `validate:"required,oneof=customer rider"`
}

// ValidateRegisterData checks a registration payload before it is sent to the
// server, so obvious mistakes fail fast with a readable message.
func ValidateRegisterData(data client.RegisterData) error {
	form := registerForm{
		Email:           data.Email,
		Password:        data.Password,
		PasswordConfirm: data.PasswordConfirm,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Phone:           data.Phone,
		Role:            data.Role,
	}
	return describe(validate.Struct(form))
}

// changePasswordForm mirrors client.ChangePasswordData.
type changePasswordForm struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,min=8,nefield=CurrentPassword"`
	ConfirmPassword string `validate:"required,eqfield=NewPassword"`
}

// ValidateChangePasswordData checks a change-password payload.
func ValidateChangePasswordData(data client.ChangePasswordData) error {
	form := changePasswordForm{
		CurrentPassword: data.CurrentPassword,
		NewPassword:     data.NewPassword,
		ConfirmPassword: data.ConfirmPassword,
	}
	return describe(validate.Struct(form))
}

// ValidateCredentials checks a login payload.
func ValidateCredentials(creds client.LoginCredentials) error {
	if err := validate.Var(creds.Email, "required,email"); err != nil {
		return errors.New("email must be a valid email address")
	}
	if creds.Password == "" {
		return errors.New("password cannot be empty")
	}
	return nil
}

// ValidateThreadCount bounds the worker count for concurrent operations.
func ValidateThreadCount(threads int) error {
	if threads < MinThreads || threads > MaxThreads {
		return fmt.Errorf("thread count must be between %d and %d, got %d", MinThreads, MaxThreads, threads)
	}
	return nil
}

// ValidateNotificationID checks a notification identifier.
func ValidateNotificationID(id int) error {
	if id <= 0 {
		return fmt.Errorf("notification ID must be a positive integer, got %d", id)
	}
	return nil
}

// describe converts validator errors into plain field-prefixed messages.
func describe(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s cannot be empty", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, strings.ToLower(fe.Param()))
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, strings.ToLower(fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "e164":
		return fmt.Sprintf("%s must be an international phone number like +254700000000", field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
