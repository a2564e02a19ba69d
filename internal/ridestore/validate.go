package ridestore

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"cycleledger.app/internal/models"
)

var validate = newValidator()

// priceFormat accepts the operator's formatted prices: an optional
// currency symbol followed by a decimal amount.
var priceFormat = regexp.MustCompile(`^\p{Sc}?\s*[0-9]+(\.[0-9]+)?$`)

func newValidator() *validator.Validate {
	v := validator.New()
	// Returning false rejects the field; the engine would only ignore a
	// malformed price later, but rejecting it at import points the user
	// at the bad paste immediately.
	_ = v.RegisterValidation("pricestring", func(fl validator.FieldLevel) bool {
		return priceFormat.MatchString(fl.Field().String())
	})
	return v
}

// ValidateRides checks an imported batch against the ride schema before
// it is merged into the store. The first invalid record fails the whole
// batch, reported by its index so the user can locate it in the pasted
// data.
func ValidateRides(rides []models.Ride) error {
	for i := range rides {
		if err := validate.Struct(&rides[i]); err != nil {
			return fmt.Errorf("ride %d: %v", i, err)
		}
		// Negative durations are deliberately not rejected here: the
		// source system occasionally emits them and the engine treats
		// the duration as unknown.
	}
	return nil
}
