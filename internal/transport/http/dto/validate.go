package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the struct tags of a decoded request and returns the
// first violation as a readable message.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if errors.As(err, &violations) && len(violations) > 0 {
		v := violations[0]
		return fmt.Errorf("field %q failed on %q", v.Field(), v.Tag())
	}
	return err
}
