package helper

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Nama locals yang diisi AuthMiddleware
const (
	LocUserID   = "user_id"
	LocRole     = "userRole"
	LocUserName = "user_name"
	LocClaims   = "claims"
	LocRawToken = "raw_token"
)

const TokenCookie = "token"

// Claims: isi JWT yang diterbitkan saat login
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SignToken menerbitkan HS256 token yang berlaku ttl sejak now
func SignToken(c Claims, secret string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	exp := now.Add(ttl)
	c.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   c.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	return tok, exp, err
}

// ParseToken memverifikasi signature & exp. Error exp bisa dicek dengan
// errors.Is(err, jwt.ErrTokenExpired).
func ParseToken(raw, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// HashToken: HMAC(token) hex, yang disimpan di token_blacklist (bukan token mentah)
func HashToken(raw, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}

/* ======== Getter dari Locals ======== */

func GetClaims(c *fiber.Ctx) (*Claims, bool) {
	cl, ok := c.Locals(LocClaims).(*Claims)
	return cl, ok && cl != nil
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals(LocUserID).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Akses ditolak. Token tidak valid")
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Akses ditolak. Token tidak valid")
	}
	return id, nil
}

// GetUserIDPtr: nil kalau request tidak terautentikasi. Dipakai untuk kolom
// modified_by / generated_by.
func GetUserIDPtr(c *fiber.Ctx) *uuid.UUID {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return nil
	}
	return &id
}

func GetRole(c *fiber.Ctx) string {
	r, _ := c.Locals(LocRole).(string)
	return r
}

func GetRawToken(c *fiber.Ctx) string {
	r, _ := c.Locals(LocRawToken).(string)
	return r
}
