package auth

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jrsteele09/go-members-server/users"
)

const bcryptMaxTag = "bcryptmax"

// SignupInput is the raw signup form
type SignupInput struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,bcryptmax"`
}

// LoginInput is the raw login form
type LoginInput struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// FieldError describes one rejected field
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message()
}

// Message is the user facing summary of all field errors
func (e *ValidationError) Message() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ValidationErr
}

// Has reports whether field failed validation
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validator checks signup and login payloads before anything touches a store.
type Validator struct {
	validate *validator.Validate
}

// NewValidator fails when a custom rule cannot be registered.
func NewValidator() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := registerRules(v, customRules); err != nil {
		return nil, err
	}
	return &Validator{validate: v}, nil
}

// customRules are the tags used by the input structs beyond validator's built-ins
var customRules = map[string]validator.Func{
	// bcrypt silently ignores everything past 72 bytes
	bcryptMaxTag: func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= users.MaxPasswordBytes
	},
}

func registerRules(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("[NewValidator] register %q: %w", tag, err)
		}
	}
	return nil
}

// ValidateSignup returns the normalised input, or a *ValidationError naming every bad field.
func (v *Validator) ValidateSignup(in SignupInput) (SignupInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := v.check(in); err != nil {
		return SignupInput{}, err
	}
	return in, nil
}

// ValidateLogin returns the normalised input, or a *ValidationError naming every bad field.
func (v *Validator) ValidateLogin(in LoginInput) (LoginInput, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := v.check(in); err != nil {
		return LoginInput{}, err
	}
	return in, nil
}

func (v *Validator) check(in any) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("[Validator] %w", err)
	}

	verr := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fieldMessage(fe.Field(), fe.Tag()),
		})
	}
	return verr
}

func fieldMessage(field, rule string) string {
	switch rule {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case bcryptMaxTag:
		return fmt.Sprintf("%s must be at most %d bytes", field, users.MaxPasswordBytes)
	}
	return field + " is invalid"
}
