package validation

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	validatorv10 "github.com/go-playground/validator/v10"
)

// BindSubmission binds the request body into out, picking the binder from the
// content type: JSON bodies through json tags, urlencoded or multipart forms
// through form tags. On failure out keeps whatever was bound; the caller
// decides whether that matters.
func BindSubmission(c *gin.Context, out interface{}) error {
	return c.ShouldBindWith(out, binding.Default(c.Request.Method, c.ContentType()))
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.Field()] = message(fe)
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}

func message(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "needs at least " + fe.Param() + " entry"
	case "dining_mode":
		return "must be one of Dine-In, Walk-In, Delivery, In Car"
	}
	return fe.Error()
}
