// Package validate holds the process-wide struct validator
package validate

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	perr "marquee/internal/platform/errors"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Get returns the singleton validator, initializing on first use
func Get() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
	})
	return v
}

// Struct validates s, mapping failures to a project validation error
func Struct(s any) error {
	if err := Get().Struct(s); err != nil {
		return perr.Wrap(err, perr.ErrorCodeValidation, "validation failed")
	}
	return nil
}
