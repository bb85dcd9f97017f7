package middlewares

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

const LocUploadFile = "upload_file"

// ImageUpload memeriksa file gambar opsional di field form. File yang lolos
// disimpan di Locals(LocUploadFile); controller yang mewajibkan file cek sendiri.
func ImageUpload(field string, maxBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ct := strings.ToLower(c.Get(fiber.HeaderContentType))
		if !strings.HasPrefix(ct, fiber.MIMEMultipartForm) {
			return c.Next()
		}

		fh, err := c.FormFile(field)
		if err != nil || fh == nil {
			return c.Next()
		}
		if maxBytes > 0 && fh.Size > maxBytes {
			return helper.JsonAppError(c, apperror.Newf(apperror.KindInvalidFile,
				"Ukuran file maksimal %s", humanSize(maxBytes)))
		}
		if !constants.IsImageUpload(fh.Filename, fh.Header.Get(fiber.HeaderContentType)) {
			return helper.JsonAppError(c, apperror.New(apperror.KindInvalidFile))
		}

		c.Locals(LocUploadFile, fh)
		return c.Next()
	}
}

// UploadedFile: file hasil ImageUpload, nil kalau tidak ada
func UploadedFile(c *fiber.Ctx) *multipart.FileHeader {
	fh, _ := c.Locals(LocUploadFile).(*multipart.FileHeader)
	return fh
}

func humanSize(n int64) string {
	const mb = 1024 * 1024
	if n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%dKB", n/1024)
}
