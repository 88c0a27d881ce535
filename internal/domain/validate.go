package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRecord reports a raw record whose fields are out of range.
var ErrInvalidRecord = errors.New("invalid record")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRecord checks coordinate, confidence and location bounds. The error
// wraps ErrInvalidRecord and names every failing JSON field.
func ValidateRecord(rec RawRecord) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s=%s", jsonName(fe.Field()), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(fields, "; "))
}

func jsonName(field string) string {
	switch field {
	case "Latitude":
		return "latitude"
	case "Longitude":
		return "longitude"
	case "Confidence":
		return "confidence"
	case "Location":
		return "location"
	default:
		return field
	}
}
