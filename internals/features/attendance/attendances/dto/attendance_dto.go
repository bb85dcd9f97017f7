package dto

import (
	"strings"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/dbtime"
)

type ScanRequest struct {
	UniqueCode string `json:"unique_code" form:"unique_code"`
}

// UpdateRequest: koreksi manual; jam kosong disimpan sebagai NULL
type UpdateRequest struct {
	Kehadiran  string `json:"kehadiran"`
	JamMasuk   string `json:"jam_masuk"`
	JamPulang  string `json:"jam_pulang"`
	Keterangan string `json:"keterangan"`
}

func (r *UpdateRequest) Normalize() {
	r.Kehadiran = strings.TrimSpace(r.Kehadiran)
	r.JamMasuk = strings.TrimSpace(r.JamMasuk)
	r.JamPulang = strings.TrimSpace(r.JamPulang)
	r.Keterangan = strings.TrimSpace(r.Keterangan)
}

type AttendanceResponse struct {
	ID         uuid.UUID   `json:"id"`
	StudentsID uuid.UUID   `json:"students_id"`
	ClassesID  uuid.UUID   `json:"classes_id"`
	Tanggal    string      `json:"tanggal"`
	JamMasuk   *dbtime.Tod `json:"jam_masuk"`
	JamPulang  *dbtime.Tod `json:"jam_pulang"`
	Kehadiran  string      `json:"kehadiran"`
	Keterangan *string     `json:"keterangan"`
}

func FromModel(m model.AttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		ID:         m.ID,
		StudentsID: m.StudentsID,
		ClassesID:  m.ClassesID,
		Tanggal:    dbtime.FormatDate(m.Tanggal),
		JamMasuk:   m.JamMasuk,
		JamPulang:  m.JamPulang,
		Kehadiran:  m.Kehadiran,
		Keterangan: m.Keterangan,
	}
}

func FromModels(rows []model.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

type StudentBrief struct {
	ID        uuid.UUID `json:"id"`
	NIS       string    `json:"nis"`
	NamaSiswa string    `json:"nama_siswa"`
}

// ScanResult: Action "masuk" atau "pulang"
type ScanResult struct {
	Action     string             `json:"action"`
	Student    StudentBrief       `json:"student"`
	Attendance AttendanceResponse `json:"attendance"`
}

// DayStatus: absensi siswa di ClassDay; ID nil kalau belum ada catatan
type DayStatus struct {
	ID         *uuid.UUID  `json:"id,omitempty"`
	Tanggal    string      `json:"tanggal,omitempty"`
	JamMasuk   *dbtime.Tod `json:"jam_masuk"`
	JamPulang  *dbtime.Tod `json:"jam_pulang"`
	Kehadiran  string      `json:"kehadiran"`
	Keterangan *string     `json:"keterangan"`
}

type ClassDayStudent struct {
	ID           uuid.UUID `json:"id"`
	NIS          string    `json:"nis"`
	NamaSiswa    string    `json:"nama_siswa"`
	JenisKelamin string    `json:"jenis_kelamin"`
	Attendance   DayStatus `json:"attendance"`
}

type ClassDayResponse struct {
	Tanggal    string            `json:"tanggal"`
	ClassID    uuid.UUID         `json:"class_id"`
	Attendance []ClassDayStudent `json:"attendance"`
}
