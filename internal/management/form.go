package management

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form field names, as used in FormErrors and UpdateField.
const (
	FieldCompanyName      = "company_name"
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldSubscriptionPlan = "subscription_plan"
)

// FormFields lists the fields in display order.
var FormFields = []string{FieldCompanyName, FieldEmail, FieldPassword, FieldSubscriptionPlan}

const requiredMessage = "This field is required"

var (
	ErrUnknownField   = errors.New("management: unknown form field")
	ErrSubmitInFlight = errors.New("management: registration already in progress")
)

// FormState holds the new-company form values. SubscriptionPlan is a plan id.
type FormState struct {
	CompanyName      string `json:"company_name" validate:"required"`
	Email            string `json:"email" validate:"required"`
	Password         string `json:"password" validate:"required"`
	SubscriptionPlan string `json:"subscription_plan" validate:"required"`
}

// Get returns a field value by name.
func (s FormState) Get(name string) (string, bool) {
	switch name {
	case FieldCompanyName:
		return s.CompanyName, true
	case FieldEmail:
		return s.Email, true
	case FieldPassword:
		return s.Password, true
	case FieldSubscriptionPlan:
		return s.SubscriptionPlan, true
	}
	return "", false
}

func (s *FormState) set(name, value string) bool {
	switch name {
	case FieldCompanyName:
		s.CompanyName = value
	case FieldEmail:
		s.Email = value
	case FieldPassword:
		s.Password = value
	case FieldSubscriptionPlan:
		s.SubscriptionPlan = value
	default:
		return false
	}
	return true
}

// FormErrors maps field name to message, only for currently invalid fields.
type FormErrors map[string]string

// ValidationError is returned when a submit attempt fails the required check.
type ValidationError struct {
	Fields FormErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return "management: invalid form: " + strings.Join(names, ", ")
}

// FormStatus is the submit state machine position.
type FormStatus int

const (
	FormIdle FormStatus = iota
	FormEditing
	FormInvalid
	FormSubmitting
	FormSucceeded
	FormFailed
)

func (s FormStatus) String() string {
	switch s {
	case FormEditing:
		return "editing"
	case FormInvalid:
		return "invalid"
	case FormSubmitting:
		return "submitting"
	case FormSucceeded:
		return "succeeded"
	case FormFailed:
		return "failed"
	default:
		return "idle"
	}
}

// FormController owns the form values, per-field errors and submit status.
type FormController struct {
	values   FormState
	errors   FormErrors
	status   FormStatus
	validate *validator.Validate
}

func NewFormController() *FormController {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return &FormController{errors: FormErrors{}, validate: v}
}

func (f *FormController) Values() FormState  { return f.values }
func (f *FormController) Status() FormStatus { return f.status }

// Errors returns a copy of the current field errors.
func (f *FormController) Errors() FormErrors {
	out := make(FormErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Reset restores empty values and clears all errors.
func (f *FormController) Reset() {
	f.values = FormState{}
	f.errors = FormErrors{}
	f.status = FormIdle
}

// Update writes a field and clears its error without re-validating.
func (f *FormController) Update(name, value string) error {
	if !f.values.set(name, value) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	delete(f.errors, name)
	if f.status != FormSubmitting {
		f.status = FormEditing
	}
	return nil
}

// check runs the required-field rules and returns the failing fields.
func (f *FormController) check() FormErrors {
	out := FormErrors{}
	err := f.validate.Struct(f.values)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// not a rule failure; treat every empty field as missing
		for _, name := range FormFields {
			if v, _ := f.values.Get(name); v == "" {
				out[name] = requiredMessage
			}
		}
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = requiredMessage
	}
	return out
}

// BeginSubmit validates the form and, when valid, moves to Submitting and
// returns the values to send. It rejects re-entry while Submitting.
func (f *FormController) BeginSubmit() (FormState, error) {
	if f.status == FormSubmitting {
		return FormState{}, ErrSubmitInFlight
	}
	if errs := f.check(); len(errs) > 0 {
		f.errors = errs
		f.status = FormInvalid
		return FormState{}, &ValidationError{Fields: errs}
	}
	f.status = FormSubmitting
	return f.values, nil
}

// Succeed resets the form after a successful registration.
func (f *FormController) Succeed() {
	f.Reset()
	f.status = FormSucceeded
}

// Fail keeps values and errors so the operator can retry.
func (f *FormController) Fail() {
	if f.status == FormSubmitting {
		f.status = FormFailed
	}
}
