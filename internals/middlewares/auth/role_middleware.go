package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	helperAuth "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/auth"
)

// RoleMiddlewareWithCustomError validasi role + custom error message.
// Harus dipasang setelah AuthMiddleware.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(helperAuth.LocRole).(string)
		if !ok {
			return helper.JsonAppError(c, apperror.New(apperror.KindTokenMissing))
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customForbiddenMessage == "" {
			return helper.JsonAppError(c, apperror.New(apperror.KindForbidden))
		}
		return helper.JsonAppError(c, &apperror.Error{Kind: apperror.KindForbidden, Message: customForbiddenMessage})
	}
}

// Shortcut biar lebih clean pemakaian
func OnlyRoles(roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, "")
}
