package registry

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrDuplicateUser is returned when adding a user whose id is taken.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidAttribute is returned when a new user has a non-positive age,
	// or a weight or height that is non-positive or not finite.
	ErrInvalidAttribute = errors.New("age, weight, and height must be positive values")
	// ErrUserNotFound is returned by hard lookups of an unknown user id.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidWorkout is returned for a non-positive duration or negative calories.
	ErrInvalidWorkout = errors.New("workout duration must be positive and calories burned cannot be negative")
)

// newValidator reports field errors by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	return v
}

// check validates v and wraps any failure in sentinel, naming the offending fields.
func (r *Registry) check(v any, sentinel error) error {
	err := r.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("%w: invalid %s", sentinel, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
