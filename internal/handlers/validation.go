package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator the custom rules used by the DTOs and makes
// validation errors report JSON (or query) field names.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
		_ = v.RegisterValidation("doc_series", func(fl validator.FieldLevel) bool {
			_, err := domain.NormalizeSeries(fl.Field().String())
			return err == nil
		})
	})
}
