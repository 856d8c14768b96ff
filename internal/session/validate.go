package session

import "strings"

// FieldError reports a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the structured result of a validation pass. A nil or
// empty slice means the input is valid.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

// ValidateRuckWeight checks the fixed load weight set at session creation.
func ValidateRuckWeight(kg float64) FieldErrors {
	var errs FieldErrors
	if kg < 0 || kg > 100 {
		errs = append(errs, FieldError{Field: "ruck_weight_kg", Message: "must be between 0 and 100"})
	}
	return errs
}

// ValidateCoordinates checks a location sample's position.
func ValidateCoordinates(lat, lng float64) FieldErrors {
	var errs FieldErrors
	if lat < -90 || lat > 90 {
		errs = append(errs, FieldError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if lng < -180 || lng > 180 {
		errs = append(errs, FieldError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	return errs
}

// ValidateRating checks a session review rating.
func ValidateRating(rating int) FieldErrors {
	var errs FieldErrors
	if rating < 1 || rating > 5 {
		errs = append(errs, FieldError{Field: "rating", Message: "must be between 1 and 5"})
	}
	return errs
}
