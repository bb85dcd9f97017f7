package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

// ErrorHandler dipasang di fiber.Config. Semua error yang lolos dari handler
// (404 route, body terlalu besar, panic dari recover) dibalas dengan envelope
// yang sama seperti JsonAppError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusNotFound && fe.Message == fiber.ErrNotFound.Message {
			return JsonError(c, fe.Code, "Endpoint tidak ditemukan")
		}
		return JsonError(c, fe.Code, fe.Message)
	}
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return JsonAppError(c, err)
	}
	return JsonAppError(c, apperror.Wrap(apperror.KindInternal, err))
}
