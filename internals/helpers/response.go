package helper

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator dipakai bersama oleh semua DTO. Nama field diambil dari tag json.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidationErrors mengubah validator.ValidationErrors → map field → tag.
// ok=false kalau err bukan error validasi.
func ValidationErrors(err error) (map[string]string, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = fe.Tag()
	}
	return out, true
}

// ValidationError: balas 400 dengan detail field kalau ada, pesan dipakai apa adanya
func ValidationError(c *fiber.Ctx, message string, err error) error {
	fields, _ := ValidationErrors(err)
	return JsonValidationError(c, message, fields)
}
