package validator

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/medicore/hms-api/internal/model"
)

// RegisterCustomValidations installs the domain date/time formats into the
// binding engine so request structs can declare them as tags.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine")
	}
	if err := v.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("timeformat", func(fl validator.FieldLevel) bool {
		_, err := ParseTime(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD wire date.
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected %s", model.DateLayout)
	}
	return d, nil
}

// ParseTime parses an HH:MM wire time.
func ParseTime(t string) (time.Time, error) {
	parsed, err := time.Parse(model.TimeLayout, t)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format, expected %s", model.TimeLayout)
	}
	return parsed, nil
}

// IsPastDate reports whether date falls before today. The comparison is
// date-granular and calendar-based: a slot later today never counts as
// past, in any server time zone.
func IsPastDate(date string, now time.Time) (bool, error) {
	if _, err := ParseDate(date); err != nil {
		return false, err
	}
	return date < now.Format(model.DateLayout), nil
}
