package user

import (
	"os"

	"github.com/bytedance/sonic"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/model"
	userService "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/service"
)

type UserSeed struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func SeedUsersFromJSON(db *gorm.DB, filePath string) error {
	configs.Component("seed-users").Info().Str("file", filePath).Msg("Membaca file user")

	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return err
	}
	return SeedUsers(db, inputs)
}

// AdminFromEnv: SEED_ADMIN_USERNAME/EMAIL/PASSWORD, ok=false kalau username kosong
func AdminFromEnv() (UserSeed, bool) {
	u := UserSeed{
		Username: configs.GetEnv("SEED_ADMIN_USERNAME"),
		Email:    configs.GetEnv("SEED_ADMIN_EMAIL"),
		Password: configs.GetEnv("SEED_ADMIN_PASSWORD"),
		Role:     constants.RoleAdmin,
	}
	return u, u.Username != "" && u.Password != ""
}

// SeedUsers membuat akun awal. User yang username-nya sudah ada dilewati.
func SeedUsers(db *gorm.DB, inputs []UserSeed) error {
	log := configs.Component("seed-users")
	for _, data := range inputs {
		var n int64
		if err := db.Model(&model.UserModel{}).Where("username = ?", data.Username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			log.Info().Str("username", data.Username).Msg("User sudah ada, dilewati")
			continue
		}

		role := data.Role
		if !constants.IsValidRole(role) {
			role = constants.RoleTeacher
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), userService.BcryptCost)
		if err != nil {
			return err
		}

		u := model.UserModel{Username: data.Username, Email: data.Email, Password: string(hash), Role: role}
		if err := db.Create(&u).Error; err != nil {
			log.Error().Err(err).Str("username", data.Username).Msg("Gagal insert user")
			continue
		}
		log.Info().Str("username", data.Username).Str("role", role).Msg("Berhasil insert user")
	}
	return nil
}
