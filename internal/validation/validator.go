package validation

import (
	"fmt"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/go-qr-orderform/internal/orders"
)

// New returns a configured validator with the dining_mode tag registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// report fields by their form names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// dining_mode accepts only the modes offered on the order form
	if err := v.RegisterValidation("dining_mode", diningMode); err != nil {
		panic(fmt.Sprintf("register dining_mode validation: %v", err))
	}

	return v
}

func diningMode(fl validatorv10.FieldLevel) bool {
	mode := fl.Field().String()
	for _, m := range orders.DiningModes {
		if mode == m {
			return true
		}
	}
	return false
}

// Check runs the submission rules and returns field -> message for each broken rule.
// An empty map means the submission is complete.
func Check(v *validatorv10.Validate, sub orders.Submission) map[string]string {
	rules := SubmissionRules{
		Name:   sub.Name,
		Number: sub.Number,
		Mode:   sub.Mode,
		Items:  orders.ParseItems(sub.Items),
	}
	if err := v.Struct(rules); err != nil {
		return validationErrorsToMap(err)
	}
	return map[string]string{}
}
