package colour

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrOutOfRange is returned when a numeric option lies outside its bounds.
var ErrOutOfRange = errors.New("out of range")

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator used for
// option structs.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		_ = v.RegisterValidation("hexcolour", func(fl validator.FieldLevel) bool {
			return IsHex(fl.Field().String())
		})

		validateInst = v
	})
	return validateInst
}

// Validator exposes the shared validator so other packages register
// their option structs against the same custom tags.
func Validator() *validator.Validate {
	return validatorInstance()
}

// ValidateStruct runs struct-tag validation and reports the first failing
// field as a ValidationError.
func ValidateStruct(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("failed to validate options: %w", err)
	}
	fe := verrs[0]
	kind := ErrOutOfRange
	switch fe.Tag() {
	case "hexcolour":
		kind = ErrBadFormat
	case "required":
		kind = ErrEmpty
	}
	return &ValidationError{
		Field: fe.Namespace(),
		Value: fmt.Sprint(fe.Value()),
		Kind:  kind,
		Err:   fmt.Errorf("failed %q constraint %s", fe.Tag(), fe.Param()),
	}
}
