package seeds

import (
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
	settings "github.com/naufaladysaputro/be-absensi-qrcode/internals/seeds/settings"
	users "github.com/naufaladysaputro/be-absensi-qrcode/internals/seeds/users/auth"
)

func RunAllSeeds(db *gorm.DB) {
	log := configs.Component("seeds")

	//* User: admin dari ENV kalau diset, selain itu dari JSON
	var err error
	if admin, ok := users.AdminFromEnv(); ok {
		err = users.SeedUsers(db, []users.UserSeed{admin})
	} else {
		err = users.SeedUsersFromJSON(db, "internals/seeds/users/auth/data_users.json")
	}
	if err != nil {
		log.Error().Err(err).Msg("Seed users gagal")
	}

	//* Pengaturan sekolah
	if err := settings.SeedSettingsFromJSON(db, "internals/seeds/settings/data_settings.json"); err != nil {
		log.Error().Err(err).Msg("Seed settings gagal")
	}
}
