package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags and collapses violations into one
// client-facing message.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(parts, ", "))
}
