package middleware

import (
	"errors"

	"hostel-http-service/internal/domain/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the domain validation tags to gin's binding engine:
// `role` accepts any known role label and `visit_status` any visit state.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	if err := v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, err := models.ParseRole(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("visit_status", func(fl validator.FieldLevel) bool {
		_, err := models.ParseVisitStatus(fl.Field().String())
		return err == nil
	})
}
