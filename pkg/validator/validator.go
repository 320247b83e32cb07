package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var v *validator.Validate

func init() {
	v = validator.New()
}

// Validate checks struct tags of i using a shared validator instance.
func Validate(i interface{}) error {
	if i == nil {
		return fmt.Errorf("data to validate is nil")
	}

	return v.Struct(i)
}

// Var validates a single variable against the given tag expression.
func Var(field interface{}, tag string) error {
	return v.Var(field, tag)
}
