package dto

import (
	"strings"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/model"
)

// SettingRequest dipakai create & update; pada update field kosong = tidak diubah
type SettingRequest struct {
	NamaSekolah string `json:"nama_sekolah" form:"nama_sekolah"`
	TahunAjaran string `json:"tahun_ajaran" form:"tahun_ajaran"`
	JamMasuk    string `json:"jam_masuk" form:"jam_masuk"`
}

func (r *SettingRequest) Normalize() {
	r.NamaSekolah = strings.TrimSpace(r.NamaSekolah)
	r.TahunAjaran = strings.TrimSpace(r.TahunAjaran)
	r.JamMasuk = strings.TrimSpace(r.JamMasuk)
}

func (r SettingRequest) IsEmpty() bool {
	return r.NamaSekolah == "" && r.TahunAjaran == "" && r.JamMasuk == ""
}

type SettingResponse = model.SettingModel
