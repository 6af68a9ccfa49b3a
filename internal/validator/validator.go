package validator

import (
	"regexp"
	"strings"
	"sync"

	ierr "github.com/flexprice/paymenthub-go/internal/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once

	apiKeyPattern = regexp.MustCompile(`^[^:\s]+:[^:\s]+$`)
)

// Messages maps "<StructField>.<tag>" to the message reported when that
// rule fails. Unmapped failures fall back to the validator's own text.
type Messages map[string]string

func NewValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("notblank", notBlank)
		_ = validate.RegisterValidation("apikey", apiKey)
	})
	return validate
}

func GetValidator() *validator.Validate {
	return NewValidator()
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// apiKey accepts credentials of the form id:secret with no whitespace
// and exactly one separator.
func apiKey(fl validator.FieldLevel) bool {
	return apiKeyPattern.MatchString(fl.Field().String())
}

// ValidateRequest validates req and returns a configuration error whose
// message is the first failing rule's entry in messages.
func ValidateRequest(req interface{}, messages Messages) error {
	err := GetValidator().Struct(req)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !ierr.As(err, &validateErrs) || len(validateErrs) == 0 {
		return ierr.WithError(err).
			WithHint("Configuration validation failed").
			Mark(ierr.ErrConfiguration)
	}

	details := make(map[string]any, len(validateErrs))
	for _, fe := range validateErrs {
		details[fe.Field()] = fe.Error()
	}

	first := validateErrs[0]
	msg, ok := messages[first.StructField()+"."+first.Tag()]
	if !ok {
		msg = first.Error()
	}

	return ierr.WithError(err).
		WithMessage(msg).
		WithHint(msg).
		WithReportableDetails(details).
		Mark(ierr.ErrConfiguration)
}
