package settings

import (
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/dbtime"
)

type SettingSeed struct {
	NamaSekolah string `json:"nama_sekolah"`
	TahunAjaran string `json:"tahun_ajaran"`
	JamMasuk    string `json:"jam_masuk"`
}

// SeedSettingsFromJSON hanya mengisi kalau tabel settings masih kosong.
func SeedSettingsFromJSON(db *gorm.DB, filePath string) error {
	log := configs.Component("seed-settings")

	var n int64
	if err := db.Model(&model.SettingModel{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Info().Msg("Pengaturan sudah ada, dilewati")
		return nil
	}

	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var data SettingSeed
	if err := sonic.Unmarshal(file, &data); err != nil {
		return err
	}
	jam, err := dbtime.ParsePtr(data.JamMasuk)
	if err != nil {
		return err
	}

	row := model.SettingModel{NamaSekolah: data.NamaSekolah, TahunAjaran: data.TahunAjaran, JamMasuk: jam}
	if err := db.Create(&row).Error; err != nil {
		return err
	}
	log.Info().Str("nama_sekolah", row.NamaSekolah).Msg("Berhasil insert pengaturan default")
	return nil
}
