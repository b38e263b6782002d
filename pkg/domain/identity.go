package domain

import (
	"errors"
	"fmt"
	"idresolve/pkg/serrors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Identity is the human identity the run tries to resolve. It is immutable
// for the duration of a run.
type Identity struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"min=3"`
}

var validate = newValidator() //nolint: gochecknoglobals

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validate checks the identity before any network activity happens. All
// failing fields are reported in a single ErrInvalidInput error.
func (i Identity) Validate() error {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return serrors.Wrap(serrors.ErrInvalidInput, err, "invalid input")
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}

	return serrors.With(serrors.ErrInvalidInput, "invalid input: %s", strings.Join(fields, ", "))
}

// CleanHandle strips the leading "@" marker search pages put in front of
// handles, along with surrounding whitespace.
func CleanHandle(handle string) string {
	return strings.TrimLeft(strings.TrimSpace(handle), "@")
}
