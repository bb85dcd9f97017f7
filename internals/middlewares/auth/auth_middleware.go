// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	helperAuth "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/auth"
)

// TokenChecker dipenuhi oleh repository token_blacklist.
type TokenChecker interface {
	IsBlacklisted(ctx context.Context, rawToken string) (bool, error)
}

// AuthMiddleware: token dari header Authorization atau cookie "token",
// tolak kalau kosong, kedaluwarsa, tidak valid, atau sudah logout.
func AuthMiddleware(checker TokenChecker) fiber.Handler {
	log := configs.Component("auth")
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return helper.JsonAppError(c, apperror.New(apperror.KindTokenMissing))
		}

		claims, err := helperAuth.ParseToken(tokenString, configs.JWTSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return helper.JsonAppError(c, apperror.New(apperror.KindTokenExpired))
			}
			log.Debug().Err(err).Msg("token ditolak")
			return helper.JsonAppError(c, apperror.New(apperror.KindTokenInvalid))
		}

		if checker != nil {
			listed, err := checker.IsBlacklisted(c.UserContext(), tokenString)
			if err != nil {
				log.Error().Err(err).Msg("cek blacklist gagal")
				return helper.JsonAppError(c, apperror.Wrap(apperror.KindInternal, err))
			}
			if listed {
				return helper.JsonAppError(c, apperror.New(apperror.KindTokenInvalid))
			}
		}

		c.Locals(helperAuth.LocUserID, claims.ID)
		c.Locals(helperAuth.LocRole, claims.Role)
		c.Locals(helperAuth.LocUserName, claims.Username)
		c.Locals(helperAuth.LocClaims, claims)
		c.Locals(helperAuth.LocRawToken, tokenString)
		return c.Next()
	}
}

// extractToken menerima "Bearer Bearer x", "Bearer x", "x", lalu cookie.
func extractToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth != "" {
		fields := strings.Fields(auth)
		for len(fields) > 1 && strings.EqualFold(fields[0], "Bearer") {
			fields = fields[1:]
		}
		if len(fields) == 1 && !strings.EqualFold(fields[0], "Bearer") {
			return strings.Trim(fields[0], "\"'")
		}
		return ""
	}
	return strings.TrimSpace(c.Cookies(helperAuth.TokenCookie))
}
