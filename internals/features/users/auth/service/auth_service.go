package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/auth/dto"
	userDTO "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/dto"
	userModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/model"
	userService "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/service"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	helperAuth "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/auth"
)

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*userModel.UserModel, error)
	Create(ctx context.Context, u *userModel.UserModel) error
}

type BlacklistStore interface {
	Add(ctx context.Context, tokenHash string, expiredAt time.Time) error
	IsListed(ctx context.Context, tokenHash string, now time.Time) (bool, error)
}

type AuthService struct {
	Users     UserStore
	Blacklist BlacklistStore
	Secret    string
	TTL       time.Duration
	Now       func() time.Time
}

func NewAuthService(users UserStore, blacklist BlacklistStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		Users:     users,
		Blacklist: blacklist,
		Secret:    secret,
		TTL:       ttl,
		Now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*userDTO.UserResponse, error) {
	req.Normalize()
	if req.Username == "" || req.Email == "" || req.Password == "" || req.RepeatPassword == "" {
		return nil, apperror.Newf(apperror.KindValidation, "Semua field harus diisi")
	}
	if req.Password != req.RepeatPassword {
		return nil, apperror.Newf(apperror.KindValidation, "Password dan konfirmasi password tidak cocok")
	}
	if !userService.ValidEmail(req.Email) {
		return nil, apperror.Newf(apperror.KindValidation, "Format email tidak valid")
	}
	if len(req.Password) < userService.MinPasswordLength {
		return nil, apperror.Newf(apperror.KindValidation, "Password harus minimal 6 karakter")
	}
	role := req.Role
	if role == "" {
		role = constants.RoleTeacher
	}
	if !constants.IsValidRole(role) {
		return nil, apperror.Newf(apperror.KindValidation, "Role harus admin atau guru")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), userService.BcryptCost)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err)
	}
	u := &userModel.UserModel{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	out := userDTO.FromModel(*u)
	return &out, nil
}

// Login: user tidak ada dan password salah sengaja diberi error yang sama
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, time.Time, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, time.Time{}, apperror.Newf(apperror.KindValidation, "Username dan password harus diisi")
	}

	u, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		if apperror.Is(err, apperror.KindUserNotFound) {
			return nil, time.Time{}, apperror.New(apperror.KindInvalidCredentials)
		}
		return nil, time.Time{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return nil, time.Time{}, apperror.New(apperror.KindInvalidCredentials)
	}

	token, exp, err := helperAuth.SignToken(helperAuth.Claims{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}, s.Secret, s.Now(), s.TTL)
	if err != nil {
		return nil, time.Time{}, apperror.Wrap(apperror.KindInternal, err)
	}
	return &dto.LoginResponse{Token: token, User: userDTO.FromModel(*u)}, exp, nil
}

// Logout memblokir token sampai exp-nya. Token yang tidak bisa di-parse
// dianggap sudah tidak berlaku.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if strings.TrimSpace(rawToken) == "" {
		return apperror.New(apperror.KindTokenMissing)
	}
	claims, err := helperAuth.ParseToken(rawToken, s.Secret)
	if err != nil {
		return nil
	}
	exp := s.Now().Add(s.TTL)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return s.Blacklist.Add(ctx, helperAuth.HashToken(rawToken, s.Secret), exp)
}

func (s *AuthService) IsBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	return s.Blacklist.IsListed(ctx, helperAuth.HashToken(rawToken, s.Secret), s.Now())
}
