package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/itinerary-planner/internal/model"
)

const maxQueryLen = 1000

var errInvalidItinerary = errors.New("invalid itinerary")

func validateQuery(raw string) (string, error) {
	q := strings.TrimSpace(raw)
	var ferrs []FieldError
	switch {
	case q == "":
		ferrs = append(ferrs, FieldError{Field: "query", Message: "must not be empty"})
	case utf8.RuneCountInString(q) > maxQueryLen:
		ferrs = append(ferrs, FieldError{Field: "query", Message: fmt.Sprintf("length must be at most %d", maxQueryLen)})
	}
	return q, newInvalidInput(ferrs)
}

// validateItinerary checks the model output against the struct tags on model.Itinerary
// and returns a one-line description of the first problem.
func validateItinerary(v *validator.Validate, it model.Itinerary) error {
	err := v.Struct(it)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed on %s", errInvalidItinerary, fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", errInvalidItinerary, err)
}
