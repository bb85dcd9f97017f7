package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/auth/dto"
	authRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/auth/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/auth/service"
	userRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/repository"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	helperAuth "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/auth"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{Service: NewAuthService(db)}
}

// NewAuthService dipakai juga oleh route lain sebagai TokenChecker middleware
func NewAuthService(db *gorm.DB) *service.AuthService {
	return service.NewAuthService(
		userRepo.NewUserRepository(db),
		authRepo.NewBlacklistRepository(db),
		configs.JWTSecret,
		configs.JWTTTL,
	)
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	u, err := ac.Service.Register(c.UserContext(), req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Pendaftaran berhasil", u)
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	res, exp, err := ac.Service.Login(c.UserContext(), req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     helperAuth.TokenCookie,
		Value:    res.Token,
		Expires:  exp,
		MaxAge:   int(time.Until(exp).Seconds()),
		HTTPOnly: true,
		Secure:   configs.AppEnv == "production",
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return helper.JsonOK(c, "Login berhasil", res)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helperAuth.GetRawToken(c)
	if err := ac.Service.Logout(c.UserContext(), raw); err != nil {
		return helper.JsonAppError(c, err)
	}
	c.ClearCookie(helperAuth.TokenCookie)
	return helper.JsonOK(c, "Logout berhasil", nil)
}
