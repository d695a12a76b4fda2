package security

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RequestValidator checks request payloads against their struct tags.
type RequestValidator struct {
	logger   *zap.Logger
	validate *validator.Validate
}

// NewRequestValidator creates the request validator.
func NewRequestValidator(logger *zap.Logger) *RequestValidator {
	return &RequestValidator{
		logger:   logger.Named("validator"),
		validate: validator.New(),
	}
}

// Struct validates a tagged struct and reports the first failure.
func (v *RequestValidator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			v.logger.Debug("request validation failed",
				zap.String("field", fieldErrs[0].Field()),
				zap.String("rule", fieldErrs[0].Tag()),
			)
		}
	}
	return err
}
